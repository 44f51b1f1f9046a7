package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tiendix/retail-api/internal/domain/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound_MitadHaciaArriba(t *testing.T) {
	casos := []struct{ in, want string }{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"10.995", "11.00"},
		{"0.125", "0.13"},
		{"3.333333", "3.33"},
		{"70.80", "70.80"},
	}
	for _, c := range casos {
		got := money.Round(dec(c.in))
		assert.True(t, got.Equal(dec(c.want)), "Round(%s) = %s, esperado %s", c.in, got, c.want)
	}
}

func TestApplyRate_ImpuestoSobreSubtotal(t *testing.T) {
	// IGV 18% sobre 60.00 = 10.80.
	assert.True(t, money.ApplyRate(dec("60.00"), dec("0.18")).Equal(dec("10.80")))
	// Redondeo en el borde: 33.33 * 0.18 = 5.9994 → 6.00.
	assert.True(t, money.ApplyRate(dec("33.33"), dec("0.18")).Equal(dec("6.00")))
	assert.True(t, money.ApplyRate(dec("100.00"), decimal.Zero).Equal(dec("0.00")))
}

func TestApplyPercent_DescuentoDeLiquidacion(t *testing.T) {
	assert.True(t, money.ApplyPercent(dec("20.00"), dec("50")).Equal(dec("10.00")))
	assert.True(t, money.ApplyPercent(dec("19.99"), dec("10")).Equal(dec("2.00")), "1.999 redondea a 2.00")
	assert.True(t, money.ApplyPercent(dec("20.00"), dec("100")).Equal(dec("20.00")))
}
