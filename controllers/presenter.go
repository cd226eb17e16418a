package controllers

import (
	"time"

	"github.com/ahmedsamir45/big-mac-index/models"
	"github.com/ahmedsamir45/big-mac-index/query"
)

func presentDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(models.DateLayout))
	}
	return out
}

func presentMapData(snapshot []models.PriceRecord, dates []time.Time) models.MapDataResponse {
	points := make([]models.MapPoint, 0, len(snapshot))
	for _, r := range snapshot {
		points = append(points, models.MapPoint{
			ID:         r.EntityCode,
			Name:       r.EntityName,
			Value:      r.DollarPrice.Decimal.InexactFloat64(),
			Currency:   r.CurrencyCode,
			LocalPrice: models.Float(r.LocalPrice),
		})
	}
	return models.MapDataResponse{
		MapData: points,
		Dates:   presentDates(dates),
	}
}

func presentCountry(series []models.PriceRecord) []models.CountryPoint {
	out := make([]models.CountryPoint, 0, len(series))
	for _, r := range series {
		out = append(out, models.CountryPoint{
			Name:         r.EntityName,
			Date:         r.DateString(),
			IsoA3:        r.EntityCode,
			CurrencyCode: r.CurrencyCode,
			LocalPrice:   models.Float(r.LocalPrice),
			DollarPrice:  models.Float(r.DollarPrice),
			DollarEx:     models.Float(r.ExchangeRate),
		})
	}
	return out
}

func presentBarChart(ranked []models.PriceRecord) models.BarChart {
	bar := models.BarChart{
		Countries:  make([]string, 0, len(ranked)),
		Prices:     make([]float64, 0, len(ranked)),
		Currencies: make([]string, 0, len(ranked)),
	}
	for _, r := range ranked {
		bar.Countries = append(bar.Countries, r.EntityName)
		bar.Prices = append(bar.Prices, r.DollarPrice.Decimal.InexactFloat64())
		bar.Currencies = append(bar.Currencies, r.CurrencyCode)
	}
	return bar
}

func presentTimeSeries(series []query.EntitySeries) map[string]models.TimeSeries {
	out := make(map[string]models.TimeSeries, len(series))
	for _, s := range series {
		ts := models.TimeSeries{
			Name:   s.Name,
			Dates:  make([]string, 0, len(s.Records)),
			Prices: make([]*float64, 0, len(s.Records)),
		}
		for _, r := range s.Records {
			ts.Dates = append(ts.Dates, r.DateString())
			ts.Prices = append(ts.Prices, models.Float(r.DollarPrice))
		}
		out[s.Code] = ts
	}
	return out
}

func presentScatter(points []models.PriceRecord) []models.ScatterPoint {
	out := make([]models.ScatterPoint, 0, len(points))
	for _, r := range points {
		out = append(out, models.ScatterPoint{
			Country: r.EntityName,
			IsoA3:   r.EntityCode,
			GDP:     r.GDPDollar.Decimal.InexactFloat64(),
			Price:   r.DollarPrice.Decimal.InexactFloat64(),
		})
	}
	return out
}
