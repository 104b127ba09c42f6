package slug_test

import (
	"testing"

	"ecoscan/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Plastic Bottle":  "plastic-bottle",
		"  Steel   Can ":  "steel-can",
		"CO₂ Champion":    "co-champion",
		"---":             "",
		"Cardboard_Box!!": "cardboard-box",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("slug.Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()
	if !slug.Equal("Plastic Bottle", "plastic-bottle") {
		t.Fatalf("expected name and slug to match")
	}
	if slug.Equal("Glass Jar", "Glass Bottle") {
		t.Fatalf("different materials must not match")
	}
	if slug.Equal("", "") {
		t.Fatalf("empty inputs must not match")
	}
}
