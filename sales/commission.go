package sales

import (
	"math"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"
)

// Calculator maps channels to commission rates and computes commission
// amounts. The rate table is fixed at construction; a sale's rate is taken
// from the table once, at creation, and never silently changes after.
type Calculator struct {
	rates       map[string]float64
	defaultRate float64
}

func NewCalculator(cfg config.SalesConfiguration) *Calculator {
	return &Calculator{
		rates: map[string]float64{
			models.CHANNEL_INSTAGRAM: cfg.InstagramRate,
			models.CHANNEL_WEBSITE:   cfg.WebsiteRate,
			models.CHANNEL_SMS:       cfg.SmsRate,
		},
		defaultRate: cfg.DefaultRate,
	}
}

func (c *Calculator) RateForChannel(channel string) float64 {
	if r, ok := c.rates[channel]; ok {
		return r
	}
	return c.defaultRate
}

// ComputeCommission returns saleAmount*rate rounded to cents, half away
// from zero. Negative or non-finite amounts and rates outside [0,1] are
// validation errors.
func (c *Calculator) ComputeCommission(saleAmount, rate float64) (float64, error) {
	if math.IsNaN(saleAmount) || math.IsInf(saleAmount, 0) {
		return 0, validationf("sale amount must be a finite number")
	}
	if saleAmount < 0 {
		return 0, validationf("sale amount cannot be negative")
	}
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return 0, validationf("commission rate must be between 0 and 1")
	}
	return RoundCents(saleAmount * rate), nil
}

// RoundCents rounds to 2 decimal places, half away from zero.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
