// Package model holds the domain records persisted by the repositories.
package model

import (
	"github.com/deppfellow/coffee-demo/internal/money"
	"github.com/deppfellow/coffee-demo/internal/validation"
	"github.com/rs/zerolog"
)

// Coffee is a menu item with a price.
//
// ID is zero until the first successful save and is assigned by the store.
type Coffee struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name" validate:"required,max=255"`
	Price money.Money `json:"price" validate:"-"`
}

// NewCoffee builds an unsaved Coffee.
func NewCoffee(name string, price money.Money) *Coffee {
	return &Coffee{Name: name, Price: price}
}

// IsPersisted reports whether the store has assigned an ID.
func (c *Coffee) IsPersisted() bool {
	return c.ID != 0
}

// Validate implements validation.Validatable.
func (c *Coffee) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	var problems validation.CustomValidationErrors
	switch {
	case c.Price.IsZero():
		problems = append(problems, validation.CustomValidationError{Field: "price", Message: "is required"})
	case c.Price.IsNegative():
		problems = append(problems, validation.CustomValidationError{Field: "price", Message: "must not be negative"})
	}
	if len(problems) > 0 {
		return problems
	}
	return nil
}

// MarshalZerologObject lets a Coffee be logged with zerolog's Object().
func (c *Coffee) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("id", c.ID).
		Str("name", c.Name).
		Object("price", c.Price)
}
