package usecase_test

import (
	"context"
	"errors"
	"testing"

	recyclingout "ecoscan/internal/modules/recycling/adapter/out"
	"ecoscan/internal/modules/recycling/dto"
	recyclingin "ecoscan/internal/modules/recycling/port/in"
	"ecoscan/internal/modules/recycling/service"
	"ecoscan/internal/modules/recycling/usecase"
	apperrors "ecoscan/internal/platform/errors"
)

func newUsecase(t *testing.T) recyclingin.Usecase {
	t.Helper()
	store, err := recyclingout.NewEmbeddedPointStore()
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return usecase.NewInteractor(service.NewRecyclingService(store))
}

func TestListFiltersByAnyMaterial(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	all, err := uc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("expected 8 points, got %d", len(all))
	}
	glass, err := uc.List(context.Background(), []string{"Glass"})
	if err != nil {
		t.Fatalf("list glass: %v", err)
	}
	// Central hub, Saburtalo, Batumi Port, Rustavi, Kutaisi
	if len(glass) != 5 {
		t.Fatalf("expected 5 glass points, got %d", len(glass))
	}
}

func TestGet(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	p, err := uc.Get(context.Background(), "5")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Batumi Port Eco Station" {
		t.Fatalf("unexpected point %+v", p)
	}
	if _, err := uc.Get(context.Background(), "42"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNearest(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	got, err := uc.Nearest(context.Background(), dto.NearestInput{Lat: 41.7151, Lng: 44.8271})
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if got.Point.ID != "1" || got.DistanceKm != 0 {
		t.Fatalf("expected central hub at distance 0, got %+v", got)
	}
	metal, err := uc.Nearest(context.Background(), dto.NearestInput{Lat: 41.6938, Lng: 44.7710, Materials: []string{"Metal"}})
	if err != nil {
		t.Fatalf("nearest metal: %v", err)
	}
	if metal.Point.ID == "2" {
		t.Fatalf("Vake does not accept metal")
	}
	if _, err := uc.Nearest(context.Background(), dto.NearestInput{Lat: 91}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Nearest(context.Background(), dto.NearestInput{Materials: []string{"Tyres"}}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unmatched filter, got %v", err)
	}
}
