package store

import (
	"context"
	"fmt"

	"storefront-service/internal/domain"
)

// Recommendation bucket sizes for the product detail view.
const (
	alsoLikeLimit = 4
	pairWithLimit = 3
)

// Recommender produces a bounded list of products related to the given
// product. Content generation is an external concern; the storefront
// only requires that the result excludes the anchor product.
type Recommender interface {
	Recommend(ctx context.Context, productID string, limit int) ([]domain.Product, error)
}

// CatalogRecommender is the default Recommender: newest active
// products from the catalog, anchor excluded. A real engine would rank
// by tags and user preferences; this keeps the detail view populated
// without one.
type CatalogRecommender struct {
	products ProductStorer
}

// NewCatalogRecommender returns a Recommender backed by the given
// catalog.
func NewCatalogRecommender(products ProductStorer) *CatalogRecommender {
	return &CatalogRecommender{products: products}
}

func (r *CatalogRecommender) Recommend(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		return []domain.Product{}, nil
	}
	// Over-fetch by one so the anchor can be dropped without a second
	// round trip.
	fetch := limit + 1
	candidates, err := r.products.ListProducts(ctx, ProductFilter{Limit: &fetch})
	if err != nil {
		return nil, fmt.Errorf("store: Recommend failed to list products: %w", err)
	}

	recommended := make([]domain.Product, 0, limit)
	for _, p := range candidates {
		if p.ID == productID {
			continue
		}
		recommended = append(recommended, p)
		if len(recommended) == limit {
			break
		}
	}
	return recommended, nil
}
