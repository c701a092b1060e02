package model

// YearCount is a row of the yearly summary table.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// MonthYearCount is a row of the monthly summary table.
type MonthYearCount struct {
	Month int   `json:"month"`
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// HourYearCount is a row of the hourly summary table.
type HourYearCount struct {
	Hour  int   `json:"hour"`
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// SeasonYearCount is a row of the seasonal summary table.
type SeasonYearCount struct {
	Season string `json:"season"`
	Year   int    `json:"year"`
	Count  int64  `json:"count"`
}
