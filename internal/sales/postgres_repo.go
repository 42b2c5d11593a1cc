package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bokhandeln/internal/inventory"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

// Sell decrements the item's amount and appends the sale record in a single
// transaction.
func (r *PostgresRepo) Sell(ctx context.Context, isbn string, price decimal.Decimal, seller string, at time.Time) (Sale, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return Sale{}, fmt.Errorf("begin sell tx: %w", err)
	}
	defer tx.Rollback(timeoutCtx)

	sale, err := sellOne(timeoutCtx, tx, isbn, price, seller, at)
	if err != nil {
		return Sale{}, err
	}
	if err := tx.Commit(timeoutCtx); err != nil {
		return Sale{}, fmt.Errorf("commit sell tx: %w", err)
	}
	return sale, nil
}

// SellBatch sells every ISBN in one transaction, each at its stored sell
// price. Any failure rolls the whole batch back; no item ends up sold while
// another is not.
func (r *PostgresRepo) SellBatch(ctx context.Context, isbns []string, seller string, at time.Time) ([]Sale, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return nil, fmt.Errorf("begin batch sell tx: %w", err)
	}
	defer tx.Rollback(timeoutCtx)

	out := make([]Sale, 0, len(isbns))
	for _, isbn := range isbns {
		var price decimal.Decimal
		err := tx.QueryRow(timeoutCtx,
			`SELECT sell_price FROM inventory WHERE isbn = $1`, isbn).Scan(&price)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("sell %s: %w", isbn, inventory.ErrNotFound)
			}
			return nil, fmt.Errorf("read sell price for %s: %w", isbn, err)
		}

		sale, err := sellOne(timeoutCtx, tx, isbn, price, seller, at)
		if err != nil {
			return nil, err
		}
		out = append(out, sale)
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return nil, fmt.Errorf("commit batch sell tx: %w", err)
	}
	return out, nil
}

func sellOne(ctx context.Context, tx pgx.Tx, isbn string, price decimal.Decimal, seller string, at time.Time) (Sale, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE inventory SET amount = amount - 1 WHERE isbn = $1 AND amount > 0`, isbn)
	if err != nil {
		return Sale{}, fmt.Errorf("decrement %s: %w", isbn, err)
	}
	if tag.RowsAffected() == 0 {
		var amount int
		err := tx.QueryRow(ctx,
			`SELECT amount FROM inventory WHERE isbn = $1`, isbn).Scan(&amount)
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, fmt.Errorf("sell %s: %w", isbn, inventory.ErrNotFound)
		}
		if err != nil {
			return Sale{}, fmt.Errorf("check stock for %s: %w", isbn, err)
		}
		return Sale{}, fmt.Errorf("sell %s: %w", isbn, inventory.ErrDepleted)
	}

	sale := Sale{
		ID:     uuid.NewString(),
		ISBN:   isbn,
		Date:   at,
		Price:  price,
		Seller: seller,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO sales (id, isbn, date, price, seller) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, sale.ISBN, sale.Date, sale.Price, sale.Seller,
	)
	if err != nil {
		return Sale{}, fmt.Errorf("append sale for %s: %w", isbn, err)
	}
	return sale, nil
}

// List returns the sales history, newest first.
func (r *PostgresRepo) List(ctx context.Context) ([]Sale, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx,
		`SELECT id, isbn, date, price, seller FROM sales ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ISBN, &s.Date, &s.Price, &s.Seller); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
