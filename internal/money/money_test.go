package money

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		want    string
		places  int
		wantErr bool
	}{
		{name: "upper", code: "TWD", want: "TWD", places: 2},
		{name: "lower and padded", code: " usd ", want: "USD", places: 2},
		{name: "zero decimal currency", code: "JPY", want: "JPY", places: 0},
		{name: "unknown", code: "ZZZ", wantErr: true},
		{name: "too long", code: "TWDX", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cu, err := CurrencyOf(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownCurrency))
				assert.True(t, cu.IsZero())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cu.Code())
			assert.Equal(t, tt.places, cu.DecimalPlaces())
		})
	}
}

func TestOfMajor_ScalesToCurrency(t *testing.T) {
	t.Parallel()

	twd := MustCurrencyOf("TWD")

	m, err := OfMajor(twd, 100.0)
	require.NoError(t, err)

	assert.Equal(t, "TWD 100.00", m.String())
	assert.Equal(t, int64(10000), m.AmountMinor())
	assert.Equal(t, "TWD", m.Currency().Code())
	assert.False(t, m.IsNegative())
}

func TestOf_RejectsExcessScale(t *testing.T) {
	t.Parallel()

	_, err := Of(MustCurrencyOf("TWD"), decimal.RequireFromString("1.005"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScale)

	_, err = Of(MustCurrencyOf("JPY"), decimal.RequireFromString("10.5"))
	assert.ErrorIs(t, err, ErrScale)
}

func TestOf_RejectsMissingCurrency(t *testing.T) {
	t.Parallel()

	_, err := Of(CurrencyUnit{}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestOf_RejectsOverflow(t *testing.T) {
	t.Parallel()

	_, err := Of(MustCurrencyOf("USD"), decimal.RequireFromString("999999999999999999999"))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestOfMinor_RoundTrip(t *testing.T) {
	t.Parallel()

	twd := MustCurrencyOf("TWD")
	fromMajor, err := OfMajor(twd, 125)
	require.NoError(t, err)

	fromMinor := OfMinor(twd, fromMajor.AmountMinor())

	assert.True(t, fromMajor.Equal(fromMinor))
	assert.Equal(t, "TWD 125.00", fromMinor.String())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a, _ := OfMajor(MustCurrencyOf("TWD"), 100)
	b, _ := Of(MustCurrencyOf("TWD"), decimal.RequireFromString("100.00"))
	c, _ := OfMajor(MustCurrencyOf("USD"), 100)
	d, _ := OfMajor(MustCurrencyOf("TWD"), 101)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "different currency")
	assert.False(t, a.Equal(d), "different amount")
}

func TestIsNegative(t *testing.T) {
	t.Parallel()

	m := OfMinor(MustCurrencyOf("TWD"), -1)
	assert.True(t, m.IsNegative())
	assert.Equal(t, "TWD -0.01", m.String())
}

func TestMustCurrencyOf_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustCurrencyOf("???") })
}

func TestMoney_JSON(t *testing.T) {
	t.Parallel()

	twd := MustCurrencyOf("TWD")
	m, err := OfMajor(twd, 125)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"TWD","amount":"125.00"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(back), "got %s", back)

	data, err = json.Marshal(Money{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestMoney_UnmarshalJSONRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		wantErr error
	}{
		"unknown currency": {in: `{"currency":"ZZZ","amount":"1.00"}`, wantErr: ErrUnknownCurrency},
		"excess scale":     {in: `{"currency":"JPY","amount":"1.5"}`, wantErr: ErrScale},
		"bad amount":       {in: `{"currency":"TWD","amount":"lots"}`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var m Money
			err := json.Unmarshal([]byte(tt.in), &m)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
