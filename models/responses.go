package models

// Response shapes for the dashboard's JSON endpoints. Pointer floats encode
// absent values as null.

// MapPoint is one country on the world map for the selected date.
type MapPoint struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Value      float64  `json:"value"`
	Currency   string   `json:"currency"`
	LocalPrice *float64 `json:"local_price"`
}

// MapDataResponse is the /data payload: map points plus every date on offer.
type MapDataResponse struct {
	MapData []MapPoint `json:"map_data"`
	Dates   []string   `json:"dates"`
}

// CountryPoint is one dated entry in a country's history.
type CountryPoint struct {
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	IsoA3        string   `json:"iso_a3"`
	CurrencyCode string   `json:"currency_code"`
	LocalPrice   *float64 `json:"local_price"`
	DollarPrice  *float64 `json:"dollar_price"`
	DollarEx     *float64 `json:"dollar_ex"`
}

// BarChart holds the top-ranked countries as parallel lists.
type BarChart struct {
	Countries  []string  `json:"countries"`
	Prices     []float64 `json:"prices"`
	Currencies []string  `json:"currencies"`
}

// TimeSeries is one tracked country's prices aligned with its dates.
type TimeSeries struct {
	Name   string     `json:"name"`
	Dates  []string   `json:"dates"`
	Prices []*float64 `json:"prices"`
}

// ScatterPoint pairs a country's dollar GDP with its dollar price.
type ScatterPoint struct {
	Country string  `json:"country"`
	IsoA3   string  `json:"iso_a3"`
	GDP     float64 `json:"gdp"`
	Price   float64 `json:"price"`
}

// ChartDataResponse is the /chart_data payload. LatestDate is null for an
// empty dataset.
type ChartDataResponse struct {
	BarChart    BarChart              `json:"bar_chart"`
	TimeSeries  map[string]TimeSeries `json:"time_series"`
	ScatterData []ScatterPoint        `json:"scatter_data"`
	LatestDate  *string               `json:"latest_date"`
}
