// Package runner holds the startup procedure: save two coffees, then look
// the second one up again.
package runner

import (
	"context"
	"fmt"

	"github.com/deppfellow/coffee-demo/internal/model"
	"github.com/deppfellow/coffee-demo/internal/money"
	"github.com/deppfellow/coffee-demo/internal/repository"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// MenuItem is a coffee the runner creates.
type MenuItem struct {
	Name     string
	Price    float64
	Currency string
}

// DefaultMenu is saved in order. The last item is looked up after saving.
var DefaultMenu = []MenuItem{
	{Name: "espresso", Price: 100, Currency: "TWD"},
	{Name: "latte", Price: 125, Currency: "TWD"},
}

// Result reports what a run did.
type Result struct {
	RunID    string
	Saved    []*model.Coffee
	Affected []int64
	Found    *model.Coffee
}

// Runner drives a CoffeeMapper through the startup sequence.
type Runner struct {
	mapper repository.CoffeeMapper
	logger *zerolog.Logger
	nrApp  *newrelic.Application
	menu   []MenuItem
}

// New builds a Runner over mapper. nrApp may be nil.
func New(mapper repository.CoffeeMapper, logger *zerolog.Logger, nrApp *newrelic.Application) *Runner {
	return &Runner{
		mapper: mapper,
		logger: logger,
		nrApp:  nrApp,
		menu:   DefaultMenu,
	}
}

// Run saves every menu item in order, then finds the last one by id.
//
// There is no branching and no recovery: the first error is returned as is.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if len(r.menu) == 0 {
		return nil, fmt.Errorf("runner: empty menu")
	}

	runID := uuid.NewString()
	logger := r.logger.With().Str("run_id", runID).Logger()

	var txn *newrelic.Transaction
	if r.nrApp != nil {
		txn = r.nrApp.StartTransaction("coffee-demo/run")
		txn.AddAttribute("run_id", runID)
		defer txn.End()
		ctx = newrelic.NewContext(ctx, txn)
	}

	res := &Result{RunID: runID}

	for _, item := range r.menu {
		c, err := newCoffee(item)
		if err != nil {
			return res, r.fail(txn, logger, err)
		}

		count, err := r.mapper.Save(ctx, c)
		if err != nil {
			return res, r.fail(txn, logger, err)
		}

		res.Saved = append(res.Saved, c)
		res.Affected = append(res.Affected, count)
		logger.Info().Int64("affected", count).Object("coffee", c).Msg("saved coffee")
	}

	last := res.Saved[len(res.Saved)-1]
	found, err := r.mapper.FindByID(ctx, last.ID)
	if err != nil {
		return res, r.fail(txn, logger, err)
	}

	res.Found = found
	if found == nil {
		logger.Warn().Int64("id", last.ID).Msg("coffee not found")
	} else {
		logger.Info().Object("coffee", found).Msg("found coffee")
	}

	return res, nil
}

func (r *Runner) fail(txn *newrelic.Transaction, logger zerolog.Logger, err error) error {
	logger.Error().Err(err).Msg("run failed")
	if txn != nil {
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	return err
}

func newCoffee(item MenuItem) (*model.Coffee, error) {
	cu, err := money.CurrencyOf(item.Currency)
	if err != nil {
		return nil, err
	}
	price, err := money.OfMajor(cu, item.Price)
	if err != nil {
		return nil, err
	}
	return model.NewCoffee(item.Name, price), nil
}
