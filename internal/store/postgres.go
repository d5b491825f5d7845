package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

// PostgresStore implements ProductStorer and CategoryStorer against
// PostgreSQL. Only the catalog lives here; carts, orders and the rest
// of the per-user state stay in the MemoryStore, which joins through
// this store when it is wired as the catalog backend.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = `id, name, slug, description, price, compare_at_price, category_id,
		images, sizes, colors, is_new, is_trending, is_featured, is_deal,
		stock, rating, review_count, is_active, tags, material_info, care_instructions,
		created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct reads one productColumns row. Array columns come back
// through pq.Array; nullable numerics through decimal.NullDecimal.
func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var compareAt decimal.NullDecimal
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &compareAt, &p.CategoryID,
		pq.Array(&p.Images), pq.Array(&p.Sizes), pq.Array(&p.Colors),
		&p.IsNew, &p.IsTrending, &p.IsFeatured, &p.IsDeal,
		&p.Stock, &p.Rating, &p.ReviewCount, &p.IsActive,
		pq.Array(&p.Tags), &p.MaterialInfo, &p.CareInstructions,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if compareAt.Valid {
		p.CompareAtPrice = &compareAt.Decimal
	}
	return &p, nil
}

func isUniqueViolation(err error, constraint, keyDetail string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return strings.Contains(pqErr.Constraint, constraint) || strings.Contains(pqErr.Detail, keyDetail)
	}
	return false
}

// --- CategoryStorer Implementation ---

func (s *PostgresStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO storefront.categories (name, slug, image, description, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, slug, image, description, is_active, sort_order, created_at;
	`
	row := s.db.QueryRowContext(ctx, query,
		category.Name, category.Slug, category.Image, category.Description,
		category.IsActive, category.SortOrder,
	)

	var created domain.Category
	err := row.Scan(
		&created.ID, &created.Name, &created.Slug, &created.Image,
		&created.Description, &created.IsActive, &created.SortOrder, &created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "categories_slug_key", "Key (slug)") {
			return nil, ErrCategorySlugExists
		}
		return nil, fmt.Errorf("store: CreateCategory failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.getCategoryBy(ctx, "id", id)
}

func (s *PostgresStore) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.getCategoryBy(ctx, "slug", slug)
}

func (s *PostgresStore) getCategoryBy(ctx context.Context, column, value string) (*domain.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, image, description, is_active, sort_order, created_at
		FROM storefront.categories
		WHERE %s = $1;
	`, column)
	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Image,
		&category.Description, &category.IsActive, &category.SortOrder, &category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: getCategoryBy %s failed to scan row: %w", column, err)
	}
	return &category, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, slug, image, description, is_active, sort_order, created_at
		FROM storefront.categories
		WHERE is_active = TRUE
		ORDER BY sort_order ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0, 16)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description, &c.IsActive, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

// --- ProductStorer Implementation ---

func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO storefront.products
			(name, slug, description, price, compare_at_price, category_id,
			images, sizes, colors, is_new, is_trending, is_featured, is_deal,
			stock, rating, review_count, is_active, tags, material_info, care_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + productColumns + `;`

	row := s.db.QueryRowContext(ctx, query,
		product.Name, product.Slug, product.Description, product.Price,
		nullDecimal(product.CompareAtPrice), product.CategoryID,
		pq.Array(product.Images), pq.Array(product.Sizes), pq.Array(product.Colors),
		product.IsNew, product.IsTrending, product.IsFeatured, product.IsDeal,
		product.Stock, product.Rating, product.ReviewCount, product.IsActive,
		pq.Array(product.Tags), product.MaterialInfo, product.CareInstructions,
	)

	created, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err, "products_slug_key", "Key (slug)") {
			return nil, ErrProductSlugExists
		}
		return nil, fmt.Errorf("store: CreateProduct failed to scan row: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.getProductBy(ctx, "id", id)
}

func (s *PostgresStore) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.getProductBy(ctx, "slug", slug)
}

func (s *PostgresStore) getProductBy(ctx context.Context, column, value string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM storefront.products WHERE %s = $1;`, productColumns, column)
	product, err := scanProduct(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: getProductBy %s failed to scan row: %w", column, err)
	}
	return product, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	if filter.Limit != nil && *filter.Limit <= 0 {
		return []domain.Product{}, nil
	}

	var queryArgs []interface{}
	whereClauses := []string{"is_active = TRUE"}
	argID := 1

	if filter.CategoryID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category_id = $%d", argID))
		queryArgs = append(queryArgs, filter.CategoryID)
		argID++
	}
	if filter.IsNew {
		whereClauses = append(whereClauses, "is_new = TRUE")
	}
	if filter.IsTrending {
		whereClauses = append(whereClauses, "is_trending = TRUE")
	}
	if filter.IsFeatured {
		whereClauses = append(whereClauses, "is_featured = TRUE")
	}
	if filter.IsDeal {
		whereClauses = append(whereClauses, "is_deal = TRUE")
	}
	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argID, argID+1))
		searchTerm := "%" + filter.Search + "%"
		queryArgs = append(queryArgs, searchTerm, searchTerm)
		argID += 2
	}

	query := fmt.Sprintf("SELECT %s FROM storefront.products WHERE %s ORDER BY created_at DESC",
		productColumns, strings.Join(whereClauses, " AND "))
	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		queryArgs = append(queryArgs, *filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		queryArgs = append(queryArgs, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 16)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error) {
	var setClauses []string
	var queryArgs []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		queryArgs = append(queryArgs, value)
		argID++
	}

	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Slug != nil {
		set("slug", *update.Slug)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Price != nil {
		set("price", *update.Price)
	}
	if update.CompareAtPrice != nil {
		set("compare_at_price", *update.CompareAtPrice)
	}
	if update.CategoryID != nil {
		set("category_id", *update.CategoryID)
	}
	if update.Images != nil {
		set("images", pq.Array(update.Images))
	}
	if update.Sizes != nil {
		set("sizes", pq.Array(update.Sizes))
	}
	if update.Colors != nil {
		set("colors", pq.Array(update.Colors))
	}
	if update.IsNew != nil {
		set("is_new", *update.IsNew)
	}
	if update.IsTrending != nil {
		set("is_trending", *update.IsTrending)
	}
	if update.IsFeatured != nil {
		set("is_featured", *update.IsFeatured)
	}
	if update.IsDeal != nil {
		set("is_deal", *update.IsDeal)
	}
	if update.Stock != nil {
		set("stock", *update.Stock)
	}
	if update.Rating != nil {
		set("rating", *update.Rating)
	}
	if update.ReviewCount != nil {
		set("review_count", *update.ReviewCount)
	}
	if update.IsActive != nil {
		set("is_active", *update.IsActive)
	}
	if update.Tags != nil {
		set("tags", pq.Array(update.Tags))
	}
	if update.MaterialInfo != nil {
		set("material_info", *update.MaterialInfo)
	}
	if update.CareInstructions != nil {
		set("care_instructions", *update.CareInstructions)
	}

	// A no-op update still returns the current row.
	if len(setClauses) == 0 {
		return s.GetProduct(ctx, id)
	}
	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf("UPDATE storefront.products SET %s WHERE id = $%d RETURNING %s;",
		strings.Join(setClauses, ", "), argID, productColumns)
	queryArgs = append(queryArgs, id)

	updated, err := scanProduct(s.db.QueryRowContext(ctx, query, queryArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if isUniqueViolation(err, "products_slug_key", "Key (slug)") {
			return nil, ErrProductSlugExists
		}
		return nil, fmt.Errorf("store: UpdateProduct failed to scan row: %w", err)
	}
	return updated, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		if err := s.db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
		log.Println("INFO: Database connection pool closed successfully.")
	}
	return nil
}
