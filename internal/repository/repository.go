// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer
package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/coffee-demo/internal/errs"
	"github.com/deppfellow/coffee-demo/internal/model"
	"github.com/deppfellow/coffee-demo/internal/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const coffeeTable = "coffee"

// CoffeeMapper persists and loads Coffee records.
type CoffeeMapper interface {
	// Save inserts c and returns the number of affected rows.
	// On success c.ID holds the generated identifier.
	Save(ctx context.Context, c *model.Coffee) (int64, error)

	// FindByID returns the Coffee with the given id, or nil, nil when absent.
	FindByID(ctx context.Context, id int64) (*model.Coffee, error)
}

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// coffeeRow is the storage shape of a Coffee.
type coffeeRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Price    int64  `db:"price"`
	Currency string `db:"currency"`
}

func (r coffeeRow) toModel() (*model.Coffee, error) {
	cu, err := money.CurrencyOf(r.Currency)
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("coffee %d: %w", r.ID, err))
	}

	return &model.Coffee{
		ID:    r.ID,
		Name:  r.Name,
		Price: money.OfMinor(cu, r.Price),
	}, nil
}

// checkSavable rejects nil and already persisted coffees before any SQL runs.
func checkSavable(c *model.Coffee) error {
	if c == nil {
		return errs.NewInvalidError("coffee is required", nil, nil, nil)
	}
	if c.IsPersisted() {
		code := "COFFEE_ALREADY_PERSISTED"
		return errs.NewConflictError(fmt.Sprintf("coffee %d is already persisted", c.ID), &code, nil)
	}
	if c.Price.IsZero() {
		field := []errs.FieldError{{Field: "price", Error: "is required"}}
		return errs.NewInvalidError("Validation failed", nil, field, nil)
	}
	return nil
}
