// Package query filters and aggregates the price table for the dashboard's
// map, country detail and chart views. Every function is pure: inputs are
// never modified.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ahmedsamir45/big-mac-index/models"
)

// ErrInvalidQuery marks request parameters that cannot be interpreted.
var ErrInvalidQuery = errors.New("invalid query")

// DefaultTopN is the length of the price ranking on the charts page.
const DefaultTopN = 15

// DefaultTrackedEntities are compared on the charts page time series.
var DefaultTrackedEntities = []string{"USA", "GBR", "CHN", "JPN", "DEU"}

// ParseDate parses a YYYY-MM-DD request value. An empty value returns the
// zero time and ok=false, meaning "use the latest date".
func ParseDate(raw string) (date time.Time, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, nil
	}
	date, err = time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidQuery, raw)
	}
	return date, true, nil
}

// Dates returns the distinct dates in the table, ascending.
func Dates(records []models.PriceRecord) []time.Time {
	seen := make(map[time.Time]struct{})
	out := make([]time.Time, 0)
	for _, r := range records {
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		out = append(out, r.Date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// LatestDate returns the maximum date in the table.
func LatestDate(records []models.PriceRecord) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range records {
		if !found || r.Date.After(latest) {
			latest = r.Date
			found = true
		}
	}
	return latest, found
}

// Snapshot returns the records on date that have an entity code and a
// dollar price, in table order.
func Snapshot(records []models.PriceRecord, date time.Time) []models.PriceRecord {
	out := make([]models.PriceRecord, 0)
	for _, r := range records {
		if !r.Date.Equal(date) || r.EntityCode == "" || !r.DollarPrice.Valid {
			continue
		}
		out = append(out, r)
	}
	return out
}

// LatestSnapshot is Snapshot at LatestDate. An empty table gives an empty
// snapshot.
func LatestSnapshot(records []models.PriceRecord) []models.PriceRecord {
	latest, ok := LatestDate(records)
	if !ok {
		return make([]models.PriceRecord, 0)
	}
	return Snapshot(records, latest)
}

// Series returns every record for code ordered by date. Records without a
// dollar price are kept so the series stays aligned with its dates.
func Series(records []models.PriceRecord, code string) []models.PriceRecord {
	out := make([]models.PriceRecord, 0)
	if code == "" {
		return out
	}
	for _, r := range records {
		if r.EntityCode == code {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TopN ranks the latest snapshot by dollar price, highest first. Ties keep
// table order.
func TopN(records []models.PriceRecord, n int) []models.PriceRecord {
	ranked := LatestSnapshot(records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DollarPrice.Decimal.GreaterThan(ranked[j].DollarPrice.Decimal)
	})
	if n < 0 {
		n = 0
	}
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// EntitySeries is one entity's full history for the comparison chart.
type EntitySeries struct {
	Code    string
	Name    string
	Records []models.PriceRecord
}

// Comparison returns the series of each code, in the order given. Codes with
// no records are skipped.
func Comparison(records []models.PriceRecord, codes []string) []EntitySeries {
	out := make([]EntitySeries, 0, len(codes))
	for _, code := range codes {
		series := Series(records, code)
		if len(series) == 0 {
			continue
		}
		out = append(out, EntitySeries{
			Code:    code,
			Name:    series[0].EntityName,
			Records: series,
		})
	}
	return out
}

// Scatter returns the latest-date records that carry an entity code, a dollar
// price and a dollar GDP figure.
func Scatter(records []models.PriceRecord) []models.PriceRecord {
	out := make([]models.PriceRecord, 0)
	for _, r := range LatestSnapshot(records) {
		if r.GDPDollar.Valid {
			out = append(out, r)
		}
	}
	return out
}
