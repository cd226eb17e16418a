package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const sampleCSV = `name,iso_a3,currency_code,local_price,dollar_ex,dollar_price,GDP_dollar,GDP_local,date
Argentina,ARG,ARS,2.5,1,2.5,,,2000-04-01
United States,USA,USD,2.51,1,2.51,36000,36000,2000-04-01
Britain,GBR,GBP,5.00,0.5,99,41000,20500,2021-01-01
Nowhere,XXX,XXX,3.0,0,,,,2021-01-01
Lost,,LST,NaN,2,,,,2021-01-01
`

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "big_mac.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}

	gbr := records[2]
	if gbr.EntityCode != "GBR" || gbr.EntityName != "Britain" || gbr.CurrencyCode != "GBP" {
		t.Fatalf("unexpected record %#v", gbr)
	}
	if !gbr.Date.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", gbr.Date)
	}
	// the file's dollar_price column is ignored in favour of the derived value
	if !gbr.DollarPrice.Valid || !gbr.DollarPrice.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("dollar price = %#v, want 10", gbr.DollarPrice)
	}
	if !gbr.GDPDollar.Valid || gbr.GDPDollar.Decimal.IntPart() != 41000 {
		t.Fatalf("gdp dollar = %#v", gbr.GDPDollar)
	}

	if records[0].GDPDollar.Valid {
		t.Fatalf("empty GDP cell should be absent")
	}
	if records[3].DollarPrice.Valid {
		t.Fatalf("zero exchange rate should leave dollar price absent")
	}
	lost := records[4]
	if lost.EntityCode != "" || lost.LocalPrice.Valid || lost.DollarPrice.Valid {
		t.Fatalf("unexpected record %#v", lost)
	}
}

func TestParseMissingColumn(t *testing.T) {
	body := "name,iso_a3,currency_code,local_price,date\nUS,USA,USD,1,2020-01-01\n"
	_, err := Parse(strings.NewReader(body))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
	if !strings.Contains(err.Error(), "dollar_ex") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestParseBadDate(t *testing.T) {
	body := "name,iso_a3,currency_code,local_price,dollar_ex,date\nUS,USA,USD,1,1,yesterday\n"
	if _, err := Parse(strings.NewReader(body)); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	records, err := Parse(strings.NewReader("name,iso_a3,currency_code,local_price,dollar_ex,date\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("got %#v, want an empty non-nil table", records)
	}
}

func TestParseDuplicateEntityDate(t *testing.T) {
	body := `name,iso_a3,currency_code,local_price,dollar_ex,date
United States,USA,USD,5.66,1,2021-01-01
Britain,GBR,GBP,3.29,0.73,2021-01-01
United States,USA,USD,5.71,1,2021-01-01
`
	_, err := Parse(strings.NewReader(body))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
	if !strings.Contains(err.Error(), "line 4") || !strings.Contains(err.Error(), "USA") {
		t.Fatalf("error should point at the repeated row: %v", err)
	}
}

func TestParseSameEntityOtherDates(t *testing.T) {
	body := `name,iso_a3,currency_code,local_price,dollar_ex,date
United States,USA,USD,2.51,1,2000-04-01
United States,USA,USD,5.66,1,2021-01-01
Euro area,,EUR,4.25,0.82,2021-01-01
Euro area,,EUR,4.25,0.82,2021-01-01
`
	records, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestFileSourceReloadsEveryCall(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	src := NewFileSource(path, false)

	first, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("got %d records, want 5", len(first))
	}

	if err := os.WriteFile(path, []byte(strings.Join(strings.Split(sampleCSV, "\n")[:3], "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	second, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("got %d records after rewrite, want 2", len(second))
	}
}

func TestFileSourceCacheByModTime(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	src := NewFileSource(path, true)

	first, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first[0].EntityName = "mutated"

	again, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if again[0].EntityName != "Argentina" {
		t.Fatalf("cached table leaked a caller mutation: %q", again[0].EntityName)
	}

	shorter := strings.Join(strings.Split(sampleCSV, "\n")[:2], "\n") + "\n"
	if err := os.WriteFile(path, []byte(shorter), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	refreshed, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(refreshed) != 1 {
		t.Fatalf("got %d records after change, want 1", len(refreshed))
	}
}

func TestFileSourceCachesEmptyTable(t *testing.T) {
	path := writeCSV(t, "name,iso_a3,currency_code,local_price,dollar_ex,date\n")
	src := NewFileSource(path, true)

	records, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("got %#v, want an empty non-nil table", records)
	}

	src.mu.RLock()
	cached := src.cached
	src.mu.RUnlock()
	if cached == nil {
		t.Fatalf("empty table was not cached; every call would re-read the file")
	}
}

func TestFileSourceCacheMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "gone.csv"), true)
	if _, err := src.Load(); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}
