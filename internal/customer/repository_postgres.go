// AngelaMos | 2026
// repository_postgres.go

package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
)

const customerColumns = `id, name, status, points, last_purchase_date, email,
		       preferred_store, join_date, notifications, last_status_change`

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository stores customers in the customers table created by
// the goose migrations. Update serializes writers with a row lock.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1`

	var c Customer
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		ORDER BY id`

	var customers []Customer
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return customers, nil
}

func (r *postgresRepository) Update(
	ctx context.Context,
	id int,
	fn MutateFunc,
) (*Customer, error) {
	var updated Customer

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `SELECT ` + customerColumns + `
			FROM customers
			WHERE id = $1
			FOR UPDATE`

		var c Customer
		err := tx.GetContext(ctx, &c, query, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update customer: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock customer: %w", err)
		}

		if err := fn(&c); err != nil {
			return err
		}

		update := `
			UPDATE customers
			SET status = :status,
			    points = :points,
			    last_purchase_date = :last_purchase_date,
			    email = :email,
			    preferred_store = :preferred_store,
			    notifications = :notifications,
			    last_status_change = :last_status_change
			WHERE id = :id`

		if _, err := tx.NamedExecContext(ctx, update, &c); err != nil {
			return fmt.Errorf("update customer: %w", err)
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Seed inserts fixtures that are not stored yet. Existing rows win so a
// restart never rewinds persisted state.
func (r *postgresRepository) Seed(ctx context.Context, customers []Customer) error {
	if len(customers) == 0 {
		return nil
	}

	query := `
		INSERT INTO customers (id, name, status, points, last_purchase_date,
		                       email, preferred_store, join_date,
		                       notifications, last_status_change)
		VALUES (:id, :name, :status, :points, :last_purchase_date,
		        :email, :preferred_store, :join_date,
		        :notifications, :last_status_change)
		ON CONFLICT (id) DO NOTHING`

	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range customers {
			if _, err := tx.NamedExecContext(ctx, query, &customers[i]); err != nil {
				return fmt.Errorf("seed customer %d: %w", customers[i].ID, err)
			}
		}
		return nil
	})
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
