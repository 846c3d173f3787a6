package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"booknook-backend/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Postgres implements ListingStore and OrderStore on top of Postgres.
type Postgres struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	author         TEXT NOT NULL,
	price          BIGINT NOT NULL,
	original_price DOUBLE PRECISION NOT NULL,
	condition      TEXT NOT NULL,
	category       TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	image_url      TEXT NOT NULL DEFAULT '',
	seller_email   TEXT NOT NULL,
	status         TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id         TEXT PRIMARY KEY,
	items      JSONB NOT NULL,
	total      BIGINT NOT NULL,
	status     TEXT NOT NULL,
	shipping   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`

// NewPostgres connects to Postgres and ensures the schema exists
func NewPostgres(databaseURL string) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Close closes the database connection
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Insert adds a listing
func (p *Postgres) Insert(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (id, title, author, price, original_price, condition,
			category, description, image_url, seller_email, status, created_at)
		VALUES (:id, :title, :author, :price, :original_price, :condition,
			:category, :description, :image_url, :seller_email, :status, :created_at)`

	_, err := p.db.NamedExecContext(ctx, query, listing)
	return err
}

// List returns all listings, most recent first
func (p *Postgres) List(ctx context.Context) ([]models.Listing, error) {
	listings := []models.Listing{}
	err := p.db.SelectContext(ctx, &listings,
		"SELECT * FROM listings ORDER BY created_at DESC")
	return listings, err
}

// Update applies a patch to the listing with the given id
func (p *Postgres) Update(ctx context.Context, id string, patch ListingPatch) (*models.Listing, error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var listing models.Listing
	err = tx.GetContext(ctx, &listing, "SELECT * FROM listings WHERE id = $1 FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		listing.Status = *patch.Status
	}
	if patch.Price != nil {
		listing.Price = *patch.Price
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE listings SET status = $1, price = $2 WHERE id = $3",
		listing.Status, listing.Price, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &listing, nil
}

type orderRow struct {
	ID        string    `db:"id"`
	Items     []byte    `db:"items"`
	Total     int64     `db:"total"`
	Status    string    `db:"status"`
	Shipping  []byte    `db:"shipping"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *orderRow) toOrder() (models.Order, error) {
	order := models.Order{
		ID:        r.ID,
		Total:     r.Total,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal(r.Items, &order.Items); err != nil {
		return order, fmt.Errorf("failed to decode order items: %w", err)
	}
	if err := json.Unmarshal(r.Shipping, &order.Shipping); err != nil {
		return order, fmt.Errorf("failed to decode order shipping: %w", err)
	}
	return order, nil
}

// InsertOrder adds an order
func (p *Postgres) InsertOrder(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("failed to encode order shipping: %w", err)
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO orders (id, items, total, status, shipping, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, items, order.Total, order.Status, shipping, order.CreatedAt)
	return err
}

// ListOrders returns all orders, most recent first
func (p *Postgres) ListOrders(ctx context.Context) ([]models.Order, error) {
	return p.selectOrders(ctx, "SELECT * FROM orders ORDER BY created_at DESC")
}

// ListOrdersByEmail returns orders whose shipping email matches case-insensitively
func (p *Postgres) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return p.selectOrders(ctx,
		"SELECT * FROM orders WHERE LOWER(shipping->>'email') = LOWER($1) ORDER BY created_at DESC",
		email)
}

func (p *Postgres) selectOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows := []orderRow{}
	if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for i := range rows {
		order, err := rows[i].toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// PostgresOrderStore adapts Postgres to the OrderStore interface; the
// listing methods already satisfy ListingStore on Postgres itself.
type PostgresOrderStore struct {
	pg *Postgres
}

// NewPostgresOrderStore wraps a Postgres connection as an OrderStore
func NewPostgresOrderStore(pg *Postgres) *PostgresOrderStore {
	return &PostgresOrderStore{pg: pg}
}

// Insert adds an order
func (s *PostgresOrderStore) Insert(ctx context.Context, order *models.Order) error {
	return s.pg.InsertOrder(ctx, order)
}

// List returns all orders, most recent first
func (s *PostgresOrderStore) List(ctx context.Context) ([]models.Order, error) {
	return s.pg.ListOrders(ctx)
}

// ListByEmail returns orders whose shipping email matches case-insensitively
func (s *PostgresOrderStore) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.pg.ListOrdersByEmail(ctx, email)
}
