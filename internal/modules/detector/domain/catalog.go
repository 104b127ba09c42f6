package domain

import "ecoscan/internal/platform/slug"

type Category string

const (
	CategoryPlastic Category = "Plastic"
	CategoryMetal   Category = "Metal"
	CategoryGlass   Category = "Glass"
	CategoryPaper   Category = "Paper"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryPlastic, CategoryMetal, CategoryGlass, CategoryPaper}

// Material is a detectable waste item and the CO2 saved by recycling it.
type Material struct {
	Name     string
	CO2Saved float64
	Category Category
}

func (m Material) Slug() string {
	return slug.Make(m.Name)
}

// Catalog is the fixed set of materials the detector can report.
var Catalog = []Material{
	{Name: "Plastic Bottle", CO2Saved: 2.5, Category: CategoryPlastic},
	{Name: "Aluminum Can", CO2Saved: 1.8, Category: CategoryMetal},
	{Name: "Glass Bottle", CO2Saved: 3.2, Category: CategoryGlass},
	{Name: "Paper", CO2Saved: 1.2, Category: CategoryPaper},
	{Name: "Cardboard Box", CO2Saved: 2.0, Category: CategoryPaper},
	{Name: "Metal Scrap", CO2Saved: 4.5, Category: CategoryMetal},
	{Name: "Plastic Bag", CO2Saved: 0.8, Category: CategoryPlastic},
	{Name: "Glass Jar", CO2Saved: 2.8, Category: CategoryGlass},
	{Name: "Newspaper", CO2Saved: 1.5, Category: CategoryPaper},
	{Name: "Steel Can", CO2Saved: 3.5, Category: CategoryMetal},
}

// Lookup finds a catalog material by display name or slug.
func Lookup(name string) (Material, bool) {
	for _, m := range Catalog {
		if slug.Equal(m.Name, name) {
			return m, true
		}
	}
	return Material{}, false
}

// ParseCategory accepts a category name in any case.
func ParseCategory(value string) (Category, bool) {
	for _, c := range Categories {
		if slug.Equal(string(c), value) {
			return c, true
		}
	}
	return "", false
}
