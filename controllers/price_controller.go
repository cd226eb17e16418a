package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ahmedsamir45/big-mac-index/dataset"
	"github.com/ahmedsamir45/big-mac-index/models"
	"github.com/ahmedsamir45/big-mac-index/query"
)

// ChartSettings controls the aggregations behind /chart_data.
type ChartSettings struct {
	TopN    int
	Tracked []string
}

// ChartOptions is set from config at startup.
var ChartOptions = ChartSettings{
	TopN:    query.DefaultTopN,
	Tracked: query.DefaultTrackedEntities,
}

func loadTable() ([]models.PriceRecord, error) {
	if dataset.Default == nil {
		return nil, fmt.Errorf("%w: no dataset configured", dataset.ErrDataUnavailable)
	}
	return dataset.Default.Load()
}

func fail(c *fiber.Ctx, msg string, err error) error {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Path()),
		zap.Bool("data_unavailable", errors.Is(err, dataset.ErrDataUnavailable)),
		zap.Bool("invalid_query", errors.Is(err, query.ErrInvalidQuery)),
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		fields = append(fields, zap.String("request_id", rid))
	}
	zap.L().Error(msg, fields...)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// GetMapData returns one point per country for the selected date (latest by
// default) plus every date the date picker can offer.
func GetMapData(c *fiber.Ctx) error {
	records, err := loadTable()
	if err != nil {
		return fail(c, "error getting map data", err)
	}

	date, ok, err := query.ParseDate(c.Query("date"))
	if err != nil {
		return fail(c, "error getting map data", err)
	}

	dates := query.Dates(records)
	if !ok {
		if len(dates) == 0 {
			return c.JSON(presentMapData(nil, dates))
		}
		date = dates[len(dates)-1]
	}

	snapshot := query.Snapshot(records, date)
	zap.L().Debug("map data",
		zap.String("date", date.Format(models.DateLayout)),
		zap.Int("countries", len(snapshot)))

	return c.JSON(presentMapData(snapshot, dates))
}

// GetCountryDetail returns a country's full history, oldest first. Unknown
// codes give an empty list.
func GetCountryDetail(c *fiber.Ctx) error {
	code := c.Params("code")

	records, err := loadTable()
	if err != nil {
		return fail(c, "error getting country data", err)
	}

	series := query.Series(records, code)
	if len(series) == 0 {
		zap.L().Info("no data for country", zap.String("code", code))
	}

	return c.JSON(presentCountry(series))
}

// GetChartData feeds the charts page: the most expensive countries on the
// latest date, the tracked countries over time, and GDP against price.
func GetChartData(c *fiber.Ctx) error {
	records, err := loadTable()
	if err != nil {
		return fail(c, "error getting chart data", err)
	}

	resp := models.ChartDataResponse{
		BarChart:    presentBarChart(query.TopN(records, ChartOptions.TopN)),
		TimeSeries:  presentTimeSeries(query.Comparison(records, ChartOptions.Tracked)),
		ScatterData: presentScatter(query.Scatter(records)),
	}
	if latest, ok := query.LatestDate(records); ok {
		s := latest.Format(models.DateLayout)
		resp.LatestDate = &s
	}

	return c.JSON(resp)
}
