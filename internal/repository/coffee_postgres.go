package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/coffee-demo/internal/model"
	"github.com/deppfellow/coffee-demo/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// PostgresCoffeeRepository maps Coffee onto PostgreSQL through pgx.
type PostgresCoffeeRepository struct {
	db DBTX
}

// NewPostgresCoffeeRepository returns a mapper running on db (a pool, conn or transaction).
func NewPostgresCoffeeRepository(db DBTX) *PostgresCoffeeRepository {
	return &PostgresCoffeeRepository{db: db}
}

const pgInsertCoffee = `
INSERT INTO coffee (name, price, currency)
VALUES (@name, @price, @currency)
RETURNING id`

func (r *PostgresCoffeeRepository) Save(ctx context.Context, c *model.Coffee) (int64, error) {
	if err := checkSavable(c); err != nil {
		return 0, err
	}

	rows, err := r.db.Query(ctx, pgInsertCoffee, pgx.NamedArgs{
		"name":     c.Name,
		"price":    c.Price.AmountMinor(),
		"currency": c.Price.Currency().Code(),
	})
	if err != nil {
		return 0, sqlerr.HandleError(err, coffeeTable)
	}

	id, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, sqlerr.HandleError(err, coffeeTable)
	}

	c.ID = id
	return rows.CommandTag().RowsAffected(), nil
}

const pgSelectCoffee = `
SELECT id, name, price, currency
FROM coffee
WHERE id = @id`

func (r *PostgresCoffeeRepository) FindByID(ctx context.Context, id int64) (*model.Coffee, error) {
	rows, err := r.db.Query(ctx, pgSelectCoffee, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, sqlerr.HandleError(err, coffeeTable)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[coffeeRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.HandleError(err, coffeeTable)
	}

	return row.toModel()
}
