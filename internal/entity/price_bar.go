package entity

import "time"

// PriceBar is one daily OHLCV row of the price history table.
type PriceBar struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Symbol    string    `json:"symbol"`
	Date      time.Time `json:"date" gorm:"type:date"`
	Open      *float64  `json:"open"`
	High      *float64  `json:"high"`
	Low       *float64  `json:"low"`
	Close     *float64  `json:"close"`
	Volume    *int64    `json:"volume"`
	Dividends *float64  `json:"dividends"`
	Splits    *float64  `json:"splits" gorm:"column:stock_splits"`
	CreatedAt time.Time `json:"created_at"`
}

func (PriceBar) TableName() string {
	return "price_history"
}
