package out

import (
	"context"
	"sync"

	detectorin "ecoscan/internal/modules/detector/port/in"
	rewardsout "ecoscan/internal/modules/rewards/port/out"
	"ecoscan/internal/platform/slug"
)

// CatalogCategoryResolver reads categories from the detector catalog, loaded
// once on first use.
type CatalogCategoryResolver struct {
	detector detectorin.Usecase

	once       sync.Once
	categories map[string]string
	err        error
}

var _ rewardsout.CategoryResolver = (*CatalogCategoryResolver)(nil)

func NewCatalogCategoryResolver(detector detectorin.Usecase) *CatalogCategoryResolver {
	return &CatalogCategoryResolver{detector: detector}
}

func (r *CatalogCategoryResolver) CategoryOf(ctx context.Context, material string) (string, bool, error) {
	r.once.Do(func() {
		catalog, err := r.detector.Catalog(ctx)
		if err != nil {
			r.err = err
			return
		}
		r.categories = make(map[string]string, len(catalog))
		for _, m := range catalog {
			r.categories[m.Slug] = m.Category
		}
	})
	if r.err != nil {
		return "", false, r.err
	}
	category, ok := r.categories[slug.Make(material)]
	return category, ok, nil
}
