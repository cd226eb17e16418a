package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar format used in the dataset and in every JSON
// payload.
const DateLayout = "2006-01-02"

// PriceRecord is one row of the index: a single country on a single date.
// Numeric columns are nullable because the published file has gaps.
type PriceRecord struct {
	EntityCode   string
	EntityName   string
	Date         time.Time
	CurrencyCode string
	LocalPrice   decimal.NullDecimal
	ExchangeRate decimal.NullDecimal
	GDPLocal     decimal.NullDecimal
	GDPDollar    decimal.NullDecimal

	// DollarPrice is derived from LocalPrice and ExchangeRate on load and is
	// never read from the file.
	DollarPrice decimal.NullDecimal
}

// ComputeDollarPrice returns LocalPrice / ExchangeRate, or an invalid value
// when either operand is missing or the rate is zero.
func (r PriceRecord) ComputeDollarPrice() decimal.NullDecimal {
	if !r.LocalPrice.Valid || !r.ExchangeRate.Valid || r.ExchangeRate.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.LocalPrice.Decimal.Div(r.ExchangeRate.Decimal))
}

// DeriveDollarPrices fills DollarPrice for every record in place.
func DeriveDollarPrices(records []PriceRecord) {
	for i := range records {
		records[i].DollarPrice = records[i].ComputeDollarPrice()
	}
}

func (r PriceRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// Float converts a nullable decimal to the JSON shape used by the dashboard:
// nil for absent values.
func Float(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
