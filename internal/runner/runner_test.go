package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/coffee-demo/internal/model"
	"github.com/deppfellow/coffee-demo/internal/money"
	"github.com/deppfellow/coffee-demo/internal/repository"
	"github.com/deppfellow/coffee-demo/internal/service"
	"github.com/deppfellow/coffee-demo/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SQLite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	mapper := service.NewCoffeeService(repository.NewSQLiteCoffeeRepository(testutil.NewSQLiteDatabase(t).SQL), &log)

	res, err := New(mapper, &log, nil).Run(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)

	assert.Equal(t, []int64{1, 1}, res.Affected)
	require.Len(t, res.Saved, 2)
	assert.Equal(t, int64(1), res.Saved[0].ID)
	assert.Equal(t, int64(2), res.Saved[1].ID)

	twd := money.MustCurrencyOf("TWD")
	want := &model.Coffee{ID: 2, Name: "latte", Price: money.OfMinor(twd, 12500)}
	if diff := cmp.Diff(want, res.Found); diff != "" {
		t.Errorf("found coffee mismatch (-want +got):\n%s", diff)
	}

	out := buf.String()
	assert.Contains(t, out, `"run_id":"`+res.RunID+`"`)
	assert.Contains(t, out, `"message":"saved coffee"`)
	assert.Contains(t, out, `"message":"found coffee"`)
	assert.Contains(t, out, `"amount":"125.00"`)
}

// stubMapper fails on the nth call to Save (1-based). Zero never fails.
type stubMapper struct {
	failOn int
	err    error
	saves  int
	finds  []int64
	stored map[int64]*model.Coffee
}

func (m *stubMapper) Save(_ context.Context, c *model.Coffee) (int64, error) {
	m.saves++
	if m.saves == m.failOn {
		return 0, m.err
	}
	c.ID = int64(100 + m.saves)
	if m.stored == nil {
		m.stored = map[int64]*model.Coffee{}
	}
	m.stored[c.ID] = c
	return 1, nil
}

func (m *stubMapper) FindByID(_ context.Context, id int64) (*model.Coffee, error) {
	m.finds = append(m.finds, id)
	return m.stored[id], nil
}

func TestRun_LooksUpLastSavedID(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	mapper := &stubMapper{}

	res, err := New(mapper, &log, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{102}, mapper.finds)
	assert.Same(t, res.Saved[1], res.Found)
}

func TestRun_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	log := zerolog.Nop()
	mapper := &stubMapper{failOn: 1, err: boom}

	res, err := New(mapper, &log, nil).Run(context.Background())
	assert.Same(t, boom, err, "error is propagated unchanged")
	assert.Equal(t, 1, mapper.saves)
	assert.Empty(t, mapper.finds)
	assert.Empty(t, res.Saved)
}

func TestRun_BadMenu(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	r := New(&stubMapper{}, &log, nil)

	r.menu = nil
	_, err := r.Run(context.Background())
	assert.Error(t, err)

	r.menu = []MenuItem{{Name: "mystery", Price: 1, Currency: "??"}}
	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, money.ErrUnknownCurrency)
}
