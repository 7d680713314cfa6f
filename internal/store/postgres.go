package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/campuskart/campuskart/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled
// PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateProduct inserts a new listing. The status is always
// 'available' at creation; caller-supplied status is ignored.
func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	args := pgx.NamedArgs{
		"title":        p.Title,
		"description":  p.Description,
		"price":        p.Price,
		"condition":    p.Condition,
		"image_url":    p.ImageURL,
		"seller_id":    p.SellerID,
		"seller_name":  p.SellerName,
		"seller_email": p.SellerEmail,
	}

	err := s.pool.QueryRow(ctx, queryCreateProduct, args).Scan(
		&p.ID, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by its ID.
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}
	err := scanProduct(s.pool.QueryRow(ctx, queryGetProduct, id), p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts queries products with optional filters, returning
// results and total count.
func (s *PostgresStore) ListProducts(
	ctx context.Context,
	opts *ProductQuery,
) ([]domain.Product, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating products: %w", err)
	}

	return products, total, nil
}

// MarkProductSold performs the guarded status transition. The UPDATE's
// WHERE clause holds every guard so two racing requests cannot both
// succeed; when it matches no row the current row is re-read once to
// name the failed guard.
func (s *PostgresStore) MarkProductSold(
	ctx context.Context,
	id, sellerID string,
) (*domain.Product, error) {
	p := &domain.Product{}
	err := scanProduct(s.pool.QueryRow(ctx, queryMarkProductSold, id, sellerID), p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("marking product sold: %w", err)
	}

	// No row matched: classify against current state.
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.OwnedBy(sellerID) {
		return nil, ErrNotSeller
	}
	if current.Status.Terminal() {
		return nil, ErrAlreadySold
	}
	return nil, fmt.Errorf("marking product sold: update matched no row")
}

// CreateMessage inserts a message into a product's conversation
// thread.
func (s *PostgresStore) CreateMessage(ctx context.Context, m *domain.Message) error {
	args := pgx.NamedArgs{
		"product_id":  m.ProductID,
		"sender_id":   m.SenderID,
		"receiver_id": m.ReceiverID,
		"body":        m.Body,
	}

	err := s.pool.QueryRow(ctx, queryCreateMessage, args).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}
	return nil
}

// ListMessagesByProduct returns a product's messages, oldest first.
func (s *PostgresStore) ListMessagesByProduct(
	ctx context.Context,
	productID string,
) ([]domain.Message, error) {
	rows, err := s.pool.Query(ctx, queryListMessagesByProduct, productID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.SenderID, &m.ReceiverID, &m.Body, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanProduct(row scannable, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Condition, &p.ImageURL,
		&p.SellerID, &p.SellerName, &p.SellerEmail, &p.Status, &p.CreatedAt,
	)
}
