package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
)

// postgresProductRepository is the durable alternative to the in-memory
// product store. Stores rows in the products table created by the goose
// migrations; the stock CHECK constraint backs up the service-level guard.
type postgresProductRepository struct {
	db *sql.DB
}

// NewPostgresProductRepository creates a ProductRepository backed by Postgres.
func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

// Create inserts a product. An id collision overwrites the previous row to
// match the in-memory store's last-write-wins contract.
func (r *postgresProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (id, name, category_id, price, stock, discount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, category_id = EXCLUDED.category_id,
		    price = EXCLUDED.price, stock = EXCLUDED.stock,
		    discount = EXCLUDED.discount, created_at = EXCLUDED.created_at
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.CategoryID,
		float64(product.Price),
		product.Stock,
		float64(product.Discount),
		product.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	snapshot := *product
	return &snapshot, nil
}

// Update replaces an existing product row.
func (r *postgresProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, price = $4, stock = $5, discount = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.CategoryID,
		float64(product.Price),
		product.Stock,
		float64(product.Discount),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, &domain.ProductNotFoundError{ProductID: product.ID}
	}

	snapshot := *product
	return &snapshot, nil
}

// Delete removes a product row by id.
func (r *postgresProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ProductNotFoundError{ProductID: id}
	}

	return nil
}

// FindByID retrieves a product by id.
func (r *postgresProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, category_id, price, stock, discount, created_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ProductNotFoundError{ProductID: id}
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindAll retrieves every stored product.
func (r *postgresProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, category_id, price, stock, discount, created_at
		FROM products
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// FindByCategory retrieves products in the given category.
func (r *postgresProductRepository) FindByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	query := `
		SELECT id, name, category_id, price, stock, discount, created_at
		FROM products
		WHERE category_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var price, discount float64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.CategoryID,
		&price,
		&product.Stock,
		&discount,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Price = domain.Price(price)
	product.Discount = domain.Discount(discount)
	return product, nil
}

func collectProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
