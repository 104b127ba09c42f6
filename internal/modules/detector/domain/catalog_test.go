package domain_test

import (
	"strings"
	"testing"

	"ecoscan/internal/modules/detector/domain"
)

func TestCatalogShape(t *testing.T) {
	t.Parallel()
	if len(domain.Catalog) != 10 {
		t.Fatalf("expected 10 materials, got %d", len(domain.Catalog))
	}
	seen := map[string]bool{}
	for _, m := range domain.Catalog {
		if seen[m.Slug()] {
			t.Fatalf("duplicate slug %s", m.Slug())
		}
		seen[m.Slug()] = true
		if m.CO2Saved <= 0 {
			t.Fatalf("%s must save co2", m.Name)
		}
		if _, ok := domain.ParseCategory(string(m.Category)); !ok {
			t.Fatalf("%s has unknown category %s", m.Name, m.Category)
		}
	}
}

func TestLookupAcceptsNameOrSlug(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"Metal Scrap", "metal-scrap", "METAL_SCRAP"} {
		m, ok := domain.Lookup(in)
		if !ok || m.CO2Saved != 4.5 || m.Category != domain.CategoryMetal {
			t.Fatalf("lookup %q: got %+v ok=%v", in, m, ok)
		}
	}
	if _, ok := domain.Lookup("banana peel"); ok {
		t.Fatalf("expected unknown material")
	}
	if _, ok := domain.Lookup(""); ok {
		t.Fatalf("expected blank lookup to fail")
	}
}

func TestReadingValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Reading{Material: "Paper", Confidence: 0.8, CO2Saved: 1.2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid reading: %v", err)
	}
	bad := []domain.Reading{
		{Material: "Tyre", Confidence: 0.8, CO2Saved: 1},
		{Material: "Paper", Confidence: 1.5, CO2Saved: 1},
		{Material: "Paper", Confidence: 0.8, CO2Saved: -2},
		{Material: "Paper", Confidence: 0.8, CO2Saved: domain.MaxCO2Saved + 1},
	}
	for _, r := range bad {
		if err := r.Validate(); err == nil {
			t.Fatalf("expected %+v to be rejected", r)
		}
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	m := domain.Manifest{Name: "catalog", Version: "1.0.0", Binary: "/bin/x", SHA256: strings.Repeat("a", 64), Enabled: true}
	if err := m.Validate(); err != nil {
		t.Fatalf("expected valid manifest: %v", err)
	}
	m.SHA256 = strings.Repeat("A", 64)
	if err := m.Validate(); err == nil {
		t.Fatalf("expected uppercase checksum to be rejected")
	}
	if (domain.Manifest{}).Configured() {
		t.Fatalf("empty manifest must not be configured")
	}
}
