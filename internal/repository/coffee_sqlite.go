package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/deppfellow/coffee-demo/internal/model"
	"github.com/deppfellow/coffee-demo/internal/sqlerr"
)

// SQLiteCoffeeRepository maps Coffee onto SQLite through database/sql.
type SQLiteCoffeeRepository struct {
	db *sql.DB
}

// NewSQLiteCoffeeRepository returns a mapper running on db.
func NewSQLiteCoffeeRepository(db *sql.DB) *SQLiteCoffeeRepository {
	return &SQLiteCoffeeRepository{db: db}
}

const sqliteInsertCoffee = `INSERT INTO coffee (name, price, currency) VALUES (?, ?, ?)`

func (r *SQLiteCoffeeRepository) Save(ctx context.Context, c *model.Coffee) (int64, error) {
	if err := checkSavable(c); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sqliteInsertCoffee,
		c.Name, c.Price.AmountMinor(), c.Price.Currency().Code())
	if err != nil {
		return 0, sqlerr.HandleError(err, coffeeTable)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, sqlerr.HandleError(err, coffeeTable)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, sqlerr.HandleError(err, coffeeTable)
	}

	c.ID = id
	return affected, nil
}

const sqliteSelectCoffee = `SELECT id, name, price, currency FROM coffee WHERE id = ?`

func (r *SQLiteCoffeeRepository) FindByID(ctx context.Context, id int64) (*model.Coffee, error) {
	var row coffeeRow
	err := r.db.QueryRowContext(ctx, sqliteSelectCoffee, id).
		Scan(&row.ID, &row.Name, &row.Price, &row.Currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.HandleError(err, coffeeTable)
	}

	return row.toModel()
}
