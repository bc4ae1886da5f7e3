package entity

import "time"

// LineItem is one normalized financial-statement observation: a single line
// of one statement for one symbol and reporting period. The same shape backs
// the balance_sheet, financials, earnings and cash_flow tables, so the
// repository selects the table explicitly instead of relying
// on a fixed TableName.
type LineItem struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Symbol      string    `json:"symbol" gorm:"column:symbol"`
	LineItem    string    `json:"line_item" gorm:"column:line_item"`
	Value       *float64  `json:"value" gorm:"column:value"`
	PeriodStart time.Time `json:"period_start" gorm:"column:period_start;type:date"`
	PeriodEnd   time.Time `json:"period_end" gorm:"column:period_end;type:date"`
	CreatedAt   time.Time `json:"created_at"`
}
