package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ahmedsamir45/big-mac-index/models"
)

// ErrDataUnavailable is returned when the dataset file is missing, unreadable
// or structurally broken.
var ErrDataUnavailable = errors.New("data unavailable")

// Source produces a fresh table of price records.
type Source interface {
	Load() ([]models.PriceRecord, error)
}

// Default is the process-wide source handlers read from. main sets it from
// config before the server starts.
var Default Source

// Column names in the published CSV.
const (
	colCode      = "iso_a3"
	colName      = "name"
	colDate      = "date"
	colCurrency  = "currency_code"
	colLocal     = "local_price"
	colRate      = "dollar_ex"
	colGDPLocal  = "GDP_local"
	colGDPDollar = "GDP_dollar"
)

var requiredColumns = []string{colCode, colName, colDate, colCurrency, colLocal, colRate}

// FileSource reads the CSV at Path. With CacheByModTime the parsed table is
// kept until the file's modification time or size changes.
type FileSource struct {
	Path           string
	CacheByModTime bool

	mu      sync.RWMutex
	modTime time.Time
	size    int64
	cached  []models.PriceRecord
}

func NewFileSource(path string, cacheByModTime bool) *FileSource {
	return &FileSource{Path: path, CacheByModTime: cacheByModTime}
}

func (s *FileSource) Load() ([]models.PriceRecord, error) {
	if !s.CacheByModTime {
		return ReadFile(s.Path)
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	s.mu.RLock()
	if s.cached != nil && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		out := copyRecords(s.cached)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	records, err := ReadFile(s.Path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = records
	s.modTime = info.ModTime()
	s.size = info.Size()
	s.mu.Unlock()

	zap.L().Debug("dataset cache refreshed", zap.String("path", s.Path), zap.Int("rows", len(records)))

	return copyRecords(records), nil
}

func copyRecords(records []models.PriceRecord) []models.PriceRecord {
	out := make([]models.PriceRecord, len(records))
	copy(out, records)
	return out
}

// ReadFile opens path and parses it with Parse.
func ReadFile(path string) ([]models.PriceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a CSV table with a header row, maps it onto PriceRecord and
// derives the dollar price. Missing required columns, unparseable dates and
// repeated (iso_a3, date) pairs fail the whole load; bad numeric cells are
// treated as absent values.
func Parse(r io.Reader) ([]models.PriceRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrDataUnavailable)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrDataUnavailable, err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrDataUnavailable, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]models.PriceRecord, 0)
	seen := make(map[string]struct{})
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataUnavailable, line, err)
		}

		rawDate := cell(row, colDate)
		date, err := time.Parse(models.DateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad date %q", ErrDataUnavailable, line, rawDate)
		}

		code := cell(row, colCode)
		if code != "" {
			key := code + "|" + rawDate
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: line %d: duplicate %s on %s", ErrDataUnavailable, line, code, rawDate)
			}
			seen[key] = struct{}{}
		}

		records = append(records, models.PriceRecord{
			EntityCode:   code,
			EntityName:   cell(row, colName),
			Date:         date,
			CurrencyCode: cell(row, colCurrency),
			LocalPrice:   parseDecimal(cell(row, colLocal)),
			ExchangeRate: parseDecimal(cell(row, colRate)),
			GDPLocal:     parseDecimal(cell(row, colGDPLocal)),
			GDPDollar:    parseDecimal(cell(row, colGDPDollar)),
		})
	}

	models.DeriveDollarPrices(records)

	return records, nil
}

func parseDecimal(raw string) decimal.NullDecimal {
	switch strings.ToLower(raw) {
	case "", "nan", "na", "null", "none":
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
