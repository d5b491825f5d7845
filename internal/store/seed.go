package store

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

// seedFixtures loads the demo catalog: four categories, four products,
// two banners and one upcoming collection. IDs are fixed so clients
// and tests can reference them. Product creation times are staggered
// so the default newest-first listing order is deterministic.
func (s *MemoryStore) seedFixtures() {
	now := time.Now().UTC()

	categories := []domain.Category{
		{ID: "cat1", Name: "Shirts", Slug: "shirts", Image: strPtr("https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=300"), Description: strPtr("Premium shirts collection"), IsActive: true, SortOrder: 1, CreatedAt: now},
		{ID: "cat2", Name: "Jeans", Slug: "jeans", Image: strPtr("https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=300"), Description: strPtr("Stylish jeans collection"), IsActive: true, SortOrder: 2, CreatedAt: now},
		{ID: "cat3", Name: "T-Shirts", Slug: "t-shirts", Image: strPtr("https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300"), Description: strPtr("Casual t-shirts collection"), IsActive: true, SortOrder: 3, CreatedAt: now},
		{ID: "cat4", Name: "Accessories", Slug: "accessories", Image: strPtr("https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300"), Description: strPtr("Fashion accessories"), IsActive: true, SortOrder: 4, CreatedAt: now},
	}

	products := []domain.Product{
		{
			ID:          "prod1",
			Name:        "Classic White Shirt",
			Slug:        "classic-white-shirt",
			Description: strPtr("Premium cotton white shirt perfect for any occasion"),
			Price:       decimal.RequireFromString("2499.00"),
			CompareAtPrice: decimalPtr("3499.00"),
			CategoryID:  strPtr("cat1"),
			Images: []string{
				"https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=600",
				"https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=600",
				"https://images.unsplash.com/photo-1554568218-0f1715e72254?w=600",
			},
			Sizes:            []string{"S", "M", "L", "XL", "XXL"},
			Colors:           []string{"White", "Light Blue", "Navy"},
			IsNew:            true,
			IsFeatured:       true,
			Stock:            50,
			Rating:           decimal.RequireFromString("4.50"),
			ReviewCount:      28,
			IsActive:         true,
			Tags:             []string{"formal", "cotton", "premium"},
			MaterialInfo:     strPtr("100% Premium Cotton"),
			CareInstructions: strPtr("Machine wash cold, hang dry"),
			CreatedAt:        now.Add(-3 * time.Minute),
			UpdatedAt:        now,
		},
		{
			ID:          "prod2",
			Name:        "Slim Fit Jeans",
			Slug:        "slim-fit-jeans",
			Description: strPtr("Comfortable slim fit jeans with stretch fabric"),
			Price:       decimal.RequireFromString("3999.00"),
			CompareAtPrice: decimalPtr("4999.00"),
			CategoryID:  strPtr("cat2"),
			Images: []string{
				"https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=600",
				"https://images.unsplash.com/photo-1542272604-787c3835535d?w=600",
				"https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=600",
			},
			Sizes:            []string{"28", "30", "32", "34", "36", "38"},
			Colors:           []string{"Dark Blue", "Black", "Light Blue"},
			IsTrending:       true,
			IsDeal:           true,
			Stock:            35,
			Rating:           decimal.RequireFromString("4.20"),
			ReviewCount:      45,
			IsActive:         true,
			Tags:             []string{"casual", "stretch", "slim-fit"},
			MaterialInfo:     strPtr("98% Cotton, 2% Elastane"),
			CareInstructions: strPtr("Machine wash cold, tumble dry low"),
			CreatedAt:        now.Add(-2 * time.Minute),
			UpdatedAt:        now,
		},
		{
			ID:          "prod3",
			Name:        "Graphic T-Shirt",
			Slug:        "graphic-t-shirt",
			Description: strPtr("Trendy graphic t-shirt with modern design"),
			Price:       decimal.RequireFromString("1299.00"),
			CompareAtPrice: decimalPtr("1599.00"),
			CategoryID:  strPtr("cat3"),
			Images: []string{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=600",
				"https://images.unsplash.com/photo-1583743814966-8936f37f4678?w=600",
				"https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=600",
			},
			Sizes:            []string{"S", "M", "L", "XL"},
			Colors:           []string{"Black", "White", "Navy", "Maroon"},
			IsNew:            true,
			IsTrending:       true,
			Stock:            75,
			Rating:           decimal.RequireFromString("4.80"),
			ReviewCount:      92,
			IsActive:         true,
			Tags:             []string{"casual", "graphic", "trendy"},
			MaterialInfo:     strPtr("100% Cotton"),
			CareInstructions: strPtr("Machine wash cold, inside out"),
			CreatedAt:        now.Add(-time.Minute),
			UpdatedAt:        now,
		},
		{
			ID:          "prod4",
			Name:        "Leather Watch",
			Slug:        "leather-watch",
			Description: strPtr("Elegant leather strap watch with chronograph"),
			Price:       decimal.RequireFromString("5999.00"),
			CompareAtPrice: decimalPtr("7999.00"),
			CategoryID:  strPtr("cat4"),
			Images: []string{
				"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=600",
				"https://images.unsplash.com/photo-1524592094714-0f0654e20314?w=600",
				"https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=600",
			},
			Sizes:            []string{"One Size"},
			Colors:           []string{"Brown", "Black", "Tan"},
			IsFeatured:       true,
			IsDeal:           true,
			Stock:            15,
			Rating:           decimal.RequireFromString("4.70"),
			ReviewCount:      23,
			IsActive:         true,
			Tags:             []string{"luxury", "leather", "chronograph"},
			MaterialInfo:     strPtr("Genuine Leather Strap, Stainless Steel Case"),
			CareInstructions: strPtr("Wipe with dry cloth, avoid water exposure"),
			CreatedAt:        now,
			UpdatedAt:        now,
		},
	}

	saleEnds := now.Add(30 * 24 * time.Hour)
	banners := []domain.Banner{
		{
			ID:         "banner1",
			Title:      "NEW COLLECTION",
			Subtitle:   strPtr("Elevate Your Style Game"),
			Image:      "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800",
			ButtonText: strPtr("Shop Now"),
			ButtonLink: strPtr("/products"),
			IsActive:   true,
			SortOrder:  1,
			StartDate:  &now,
			CreatedAt:  now,
		},
		{
			ID:         "banner2",
			Title:      "SUMMER SALE",
			Subtitle:   strPtr("Up to 50% Off"),
			Image:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=800",
			ButtonText: strPtr("Shop Sale"),
			ButtonLink: strPtr("/sale"),
			IsActive:   true,
			SortOrder:  2,
			StartDate:  &now,
			EndDate:    &saleEnds,
			CreatedAt:  now,
		},
	}

	launch := now.Add(7 * 24 * time.Hour)
	collections := []domain.Collection{
		{
			ID:          "col1",
			Name:        "Worth the Wait",
			Slug:        "worth-the-wait",
			Description: strPtr("Upcoming premium collection dropping soon"),
			Image:       strPtr("https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=600"),
			IsUpcoming:  true,
			LaunchDate:  &launch,
			IsActive:    true,
			CreatedAt:   now,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	for _, b := range banners {
		s.banners[b.ID] = b
	}
	for _, c := range collections {
		s.collections[c.ID] = c
	}
}

func strPtr(s string) *string {
	return &s
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
