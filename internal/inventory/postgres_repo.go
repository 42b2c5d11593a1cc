package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Upsert inserts the item with amount = incrementBy, or overwrites the
// catalog fields of an existing row ("latest wins") and adds incrementBy to
// its amount. One statement, so restock is atomic.
func (r *PostgresRepo) Upsert(ctx context.Context, item *Item, incrementBy int) error {
	const sql = `
		INSERT INTO inventory (isbn, author, title, lang, year, buy_price, sell_price, shelf, cover, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (isbn) DO UPDATE SET
			author = EXCLUDED.author,
			title = EXCLUDED.title,
			lang = EXCLUDED.lang,
			year = EXCLUDED.year,
			buy_price = EXCLUDED.buy_price,
			sell_price = EXCLUDED.sell_price,
			shelf = EXCLUDED.shelf,
			cover = EXCLUDED.cover,
			amount = inventory.amount + $10`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, sql,
		item.ISBN, item.Author, item.Title, item.Language, item.Year,
		item.BuyPrice, item.SellPrice, item.Shelf, item.Cover, incrementBy,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", item.ISBN, err)
	}
	return nil
}

func (r *PostgresRepo) IncrementOne(ctx context.Context, isbn string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx,
		`UPDATE inventory SET amount = amount + 1 WHERE isbn = $1`, isbn)
	if err != nil {
		return fmt.Errorf("increment %s: %w", isbn, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementOne reduces the amount by one. The amount > 0 guard keeps the
// stored count from going negative; an unaffected row is either a missing
// item or depleted stock.
func (r *PostgresRepo) DecrementOne(ctx context.Context, isbn string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx,
		`UPDATE inventory SET amount = amount - 1 WHERE isbn = $1 AND amount > 0`, isbn)
	if err != nil {
		return fmt.Errorf("decrement %s: %w", isbn, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, isbn); err != nil {
			return err
		}
		return ErrDepleted
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, isbn string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx,
		`DELETE FROM inventory WHERE isbn = $1`, isbn)
	if err != nil {
		return fmt.Errorf("delete %s: %w", isbn, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, isbn string) (Item, error) {
	const query = `
		SELECT isbn, author, title, lang, year, buy_price, sell_price, shelf, cover, amount
		FROM inventory
		WHERE isbn = $1`

	var it Item
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, isbn).Scan(
		&it.ISBN, &it.Author, &it.Title, &it.Language, &it.Year,
		&it.BuyPrice, &it.SellPrice, &it.Shelf, &it.Cover, &it.Amount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("get %s: %w", isbn, err)
	}
	return it, nil
}

// List returns every item. No ordering is guaranteed; presentation sorts.
func (r *PostgresRepo) List(ctx context.Context) ([]Item, error) {
	const query = `
		SELECT isbn, author, title, lang, year, buy_price, sell_price, shelf, cover, amount
		FROM inventory`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ISBN, &it.Author, &it.Title, &it.Language, &it.Year,
			&it.BuyPrice, &it.SellPrice, &it.Shelf, &it.Cover, &it.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
