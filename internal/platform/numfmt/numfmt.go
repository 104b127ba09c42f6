// Package numfmt renders dashboard figures with locale-aware digit grouping.
package numfmt

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Int renders n with thousands separators, e.g. 12345 -> "12,345".
func Int(n int) string {
	return printer.Sprintf("%d", n)
}

// Kg renders a mass with one decimal place and a unit suffix.
func Kg(v float64) string {
	return printer.Sprintf("%.1f kg", v)
}

// Percent renders v (0..100) with one decimal place.
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}
