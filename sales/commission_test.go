package sales

import (
	"math"
	"testing"

	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateForChannel(t *testing.T) {
	calc := NewCalculator(testSalesConfig())

	assert.Equal(t, 0.15, calc.RateForChannel(models.CHANNEL_INSTAGRAM))
	assert.Equal(t, 0.10, calc.RateForChannel(models.CHANNEL_WEBSITE))
	assert.Equal(t, 0.10, calc.RateForChannel(models.CHANNEL_SMS))
	assert.Equal(t, 0.10, calc.RateForChannel(models.CHANNEL_OTHER), "unknown channels fall back to the default rate")
}

func TestComputeCommission(t *testing.T) {
	calc := NewCalculator(testSalesConfig())

	got, err := calc.ComputeCommission(100, 0.10)
	require.NoError(t, err)
	assert.Equal(t, 10.00, got)

	got, err = calc.ComputeCommission(150, 0.10)
	require.NoError(t, err)
	assert.Equal(t, 15.00, got)

	// rounds to cents
	got, err = calc.ComputeCommission(19.99, 0.15)
	require.NoError(t, err)
	assert.Equal(t, 3.00, got)

	got, err = calc.ComputeCommission(33.33, 0.10)
	require.NoError(t, err)
	assert.Equal(t, 3.33, got)

	// zero amount and zero rate are valid
	got, err = calc.ComputeCommission(0, 0.10)
	require.NoError(t, err)
	assert.Equal(t, 0.00, got)

	got, err = calc.ComputeCommission(100, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.00, got)
}

func TestComputeCommissionRejectsBadInput(t *testing.T) {
	calc := NewCalculator(testSalesConfig())

	_, err := calc.ComputeCommission(-10, 0.10)
	assert.True(t, IsValidation(err), "negative amount must be a validation error")

	_, err = calc.ComputeCommission(math.NaN(), 0.10)
	assert.True(t, IsValidation(err))

	_, err = calc.ComputeCommission(math.Inf(1), 0.10)
	assert.True(t, IsValidation(err))

	_, err = calc.ComputeCommission(100, 1.5)
	assert.True(t, IsValidation(err), "rate above 1 must be a validation error")

	_, err = calc.ComputeCommission(100, -0.1)
	assert.True(t, IsValidation(err))
}

func TestRoundCentsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.13, RoundCents(1.125))
	assert.Equal(t, 2.68, RoundCents(2.675000001))
	assert.Equal(t, 10.00, RoundCents(10.0000000001))
}
