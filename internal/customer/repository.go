package customer

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

func (r *Repository) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customerID := uuid.New()
	createdAt := time.Now()

	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, phone, last_order_date, created_at
	`

	var customer CustomerResponse
	var phone sql.NullString
	var lastOrderDate sql.NullTime

	err := r.db.QueryRowContext(ctx, query,
		customerID,
		req.Name,
		req.Email,
		req.Phone,
		createdAt,
	).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&phone,
		&lastOrderDate,
		&customer.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	if phone.Valid {
		customer.Phone = phone.String
	}
	if lastOrderDate.Valid {
		customer.LastOrderDate = &lastOrderDate.Time
	}

	return &customer, nil
}

// BulkCreateCustomers inserts the batch inside a single transaction. Rows
// with a taken email, including duplicates earlier in the same batch, are
// reported as row errors and skipped; the surviving rows commit together.
// Any other storage failure rolls the whole batch back.
func (r *Repository) BulkCreateCustomers(ctx context.Context, reqs []CreateCustomerRequest) ([]CustomerResponse, []BulkRowError, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := []CustomerResponse{}
	var rowErrs []BulkRowError

	for idx, req := range reqs {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`,
			req.Email,
		).Scan(&exists)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check customer email: %w", err)
		}
		if exists {
			rowErrs = append(rowErrs, BulkRowError{
				Index:   idx,
				Message: fmt.Sprintf("email already exists - %s", req.Email),
			})
			continue
		}

		var customer CustomerResponse
		var phone sql.NullString
		err = tx.QueryRowContext(ctx, `
			INSERT INTO customers (id, name, email, phone, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, name, email, phone, created_at
		`, uuid.New(), req.Name, req.Email, req.Phone, time.Now()).Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&phone,
			&customer.CreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to insert customer %d: %w", idx, err)
		}

		if phone.Valid {
			customer.Phone = phone.String
		}
		created = append(created, customer)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, rowErrs, nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`

	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return exists, nil
}

func (r *Repository) ListCustomers(ctx context.Context, limit, offset int) ([]CustomerResponse, int, error) {
	var totalCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `
		SELECT id, name, email, phone, last_order_date, created_at, updated_at
		FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []CustomerResponse
	for rows.Next() {
		var customer CustomerResponse
		var phone sql.NullString
		var lastOrderDate sql.NullTime
		var updatedAt sql.NullTime

		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&phone,
			&lastOrderDate,
			&customer.CreatedAt,
			&updatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}

		if phone.Valid {
			customer.Phone = phone.String
		}
		if lastOrderDate.Valid {
			customer.LastOrderDate = &lastOrderDate.Time
		}
		if updatedAt.Valid {
			customer.UpdatedAt = &updatedAt.Time
		}

		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, totalCount, nil
}

func (r *Repository) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	// A malformed id would fail the uuid-typed query with a syntax error
	// rather than sql.ErrNoRows, so reject it up front.
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("customer not found")
	}

	query := `
		SELECT id, name, email, phone, last_order_date, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var customer CustomerResponse
	var phone sql.NullString
	var lastOrderDate sql.NullTime
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&phone,
		&lastOrderDate,
		&customer.CreatedAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	if phone.Valid {
		customer.Phone = phone.String
	}
	if lastOrderDate.Valid {
		customer.LastOrderDate = &lastOrderDate.Time
	}
	if updatedAt.Valid {
		customer.UpdatedAt = &updatedAt.Time
	}

	return &customer, nil
}

func (r *Repository) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("customer not found")
	}

	var updates []string
	var args []interface{}
	argIndex := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *req.Name)
		argIndex++
	}
	if req.Email != nil {
		updates = append(updates, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, *req.Email)
		argIndex++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, *req.Phone)
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
		UPDATE customers
		SET %s
		WHERE id = $%d
		RETURNING id, name, email, phone, last_order_date, created_at, updated_at
	`, strings.Join(updates, ", "), argIndex)

	var customer CustomerResponse
	var phone sql.NullString
	var lastOrderDate sql.NullTime
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&phone,
		&lastOrderDate,
		&customer.CreatedAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if phone.Valid {
		customer.Phone = phone.String
	}
	if lastOrderDate.Valid {
		customer.LastOrderDate = &lastOrderDate.Time
	}
	if updatedAt.Valid {
		customer.UpdatedAt = &updatedAt.Time
	}

	return &customer, nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("customer not found")
	}

	query := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("customer not found")
	}

	return nil
}

// CountInactive returns how many customers the purge would delete for the
// given cutoff: customers with no orders, or whose last order predates it.
func (r *Repository) CountInactive(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM customers c
		WHERE NOT EXISTS (SELECT 1 FROM orders o WHERE o.customer_id = c.id)
		   OR c.last_order_date < $1
	`

	err := r.db.QueryRowContext(ctx, query, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inactive customers: %w", err)
	}

	return count, nil
}

// DeleteInactive deletes all inactive customers in a single statement and
// returns the number of rows removed. The delete runs inside an explicit
// transaction; order rows are removed by the schema's ON DELETE CASCADE.
func (r *Repository) DeleteInactive(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A customer is inactive when it has no orders at all, or its most
	// recent order is strictly before the cutoff. Equal-to-cutoff is kept.
	query := `
		DELETE FROM customers c
		WHERE NOT EXISTS (SELECT 1 FROM orders o WHERE o.customer_id = c.id)
		   OR c.last_order_date < $1
	`

	result, err := tx.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive customers: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(rows), nil
}
