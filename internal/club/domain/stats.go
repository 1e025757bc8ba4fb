package domain

import "github.com/shopspring/decimal"

// DailySale is the dispensed amount for one weekday bucket.
type DailySale struct {
	Day   string          `json:"day"`
	Sales decimal.Decimal `json:"sales"`
}

type StockCategory struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// StockGroup is one group of the group/category stock breakdown.
type StockGroup struct {
	Name     string          `json:"name"`
	Children []StockCategory `json:"children"`
}
