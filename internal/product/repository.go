package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	productID := uuid.New()
	createdAt := time.Now()

	query := `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, price, stock, created_at
	`

	var product ProductResponse
	err := r.db.QueryRowContext(ctx, query,
		productID,
		req.Name,
		req.Price,
		req.Stock,
		createdAt,
	).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context, limit, offset int) ([]ProductResponse, int, error) {
	var totalCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, totalCount, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	// A malformed id would fail the uuid-typed query with a syntax error
	// rather than sql.ErrNoRows, so reject it up front.
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("product not found")
	}

	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product ProductResponse
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	if updatedAt.Valid {
		product.UpdatedAt = &updatedAt.Time
	}

	return &product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("product not found")
	}

	var updates []string
	var args []interface{}
	argIndex := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *req.Name)
		argIndex++
	}
	if req.Price != nil {
		updates = append(updates, fmt.Sprintf("price = $%d", argIndex))
		args = append(args, *req.Price)
		argIndex++
	}
	if req.Stock != nil {
		updates = append(updates, fmt.Sprintf("stock = $%d", argIndex))
		args = append(args, *req.Stock)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $%d
		RETURNING id, name, price, stock, created_at, updated_at
	`, strings.Join(updates, ", "), argIndex)

	var product ProductResponse
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if updatedAt.Valid {
		product.UpdatedAt = &updatedAt.Time
	}

	return &product, nil
}

// RestockLowStock bumps every product below the threshold by the given
// increment in a single statement and returns the updated rows.
func (r *Repository) RestockLowStock(ctx context.Context, threshold, increment int) ([]ProductResponse, error) {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = $2
		WHERE stock < $3
		RETURNING id, name, price, stock, created_at, updated_at
	`

	rows, err := r.db.QueryContext(ctx, query, increment, time.Now(), threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to restock products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]ProductResponse, error) {
	var products []ProductResponse
	for rows.Next() {
		var product ProductResponse
		var updatedAt sql.NullTime

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		if updatedAt.Valid {
			product.UpdatedAt = &updatedAt.Time
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
