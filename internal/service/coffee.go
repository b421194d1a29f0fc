package service

import (
	"context"

	"github.com/deppfellow/coffee-demo/internal/errs"
	"github.com/deppfellow/coffee-demo/internal/model"
	"github.com/deppfellow/coffee-demo/internal/repository"
	"github.com/deppfellow/coffee-demo/internal/validation"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

var coffeeInvalidCode = "COFFEE_INVALID"

// CoffeeService validates and logs around a CoffeeMapper.
// It satisfies repository.CoffeeMapper itself.
type CoffeeService struct {
	mapper repository.CoffeeMapper
	logger *zerolog.Logger
}

var _ repository.CoffeeMapper = (*CoffeeService)(nil)

// NewCoffeeService wraps mapper with validation and logging.
func NewCoffeeService(mapper repository.CoffeeMapper, logger *zerolog.Logger) *CoffeeService {
	l := logger.With().Str("component", "coffee_service").Logger()
	return &CoffeeService{mapper: mapper, logger: &l}
}

// Save validates c and persists it. Invalid coffees never reach the store.
func (s *CoffeeService) Save(ctx context.Context, c *model.Coffee) (int64, error) {
	defer newrelic.FromContext(ctx).StartSegment("Coffee/Save").End()

	if c == nil {
		return 0, errs.NewInvalidError("coffee is required", &coffeeInvalidCode, nil, nil)
	}
	if err := validation.Validate(c, &coffeeInvalidCode); err != nil {
		s.logger.Warn().Err(err).Object("coffee", c).Msg("rejected invalid coffee")
		return 0, err
	}

	count, err := s.mapper.Save(ctx, c)
	if err != nil {
		s.logger.Error().Err(err).Object("coffee", c).Msg("failed to save coffee")
		return 0, err
	}

	s.logger.Debug().Int64("affected", count).Object("coffee", c).Msg("saved coffee")
	return count, nil
}

// FindByID returns the coffee with id, or nil, nil when there is none.
// Ids the store never assigns (zero or negative) short-circuit to nil, nil.
func (s *CoffeeService) FindByID(ctx context.Context, id int64) (*model.Coffee, error) {
	defer newrelic.FromContext(ctx).StartSegment("Coffee/FindByID").End()

	if id <= 0 {
		s.logger.Debug().Int64("id", id).Msg("coffee not found")
		return nil, nil
	}

	c, err := s.mapper.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to find coffee")
		return nil, err
	}

	if c == nil {
		s.logger.Debug().Int64("id", id).Msg("coffee not found")
		return nil, nil
	}

	s.logger.Debug().Object("coffee", c).Msg("found coffee")
	return c, nil
}
