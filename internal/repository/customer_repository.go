package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roastery/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// GetByEmail retrieves a customer by email within the transaction. Email
// comparison is case-insensitive.
func (r *customerRepository) GetByEmail(ctx context.Context, tx pgx.Tx, email string) (*model.Customer, error) {
	query := `
		SELECT id, email, full_name, phone, created_at
		FROM customers
		WHERE lower(email) = lower($1)
	`

	var c model.Customer
	err := tx.QueryRow(ctx, query, email).Scan(&c.ID, &c.Email, &c.FullName, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query customer by email")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// Create inserts a new customer within the transaction.
func (r *customerRepository) Create(ctx context.Context, tx pgx.Tx, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, email, full_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query,
		customer.ID, strings.ToLower(customer.Email), customer.FullName,
		customer.Phone, customer.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", customer.ID.String()).
			Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customer.ID.String()).
		Msg("customer created successfully")

	return nil
}

// Subscribe adds an email to the newsletter. ON CONFLICT keeps the call
// idempotent; false means the email was already on the list.
func (r *customerRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	query := `
		INSERT INTO newsletter_subscribers (id, email, created_at)
		VALUES ($1, lower($2), $3)
		ON CONFLICT (email) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, uuid.New(), email, time.Now())
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to subscribe email")
		return false, fmt.Errorf("failed to subscribe email: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
