package entity

import "time"

// Ticker is one tracked symbol of the universe.
type Ticker struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Symbol      string    `json:"symbol" gorm:"uniqueIndex"`
	CompanyName string    `json:"company_name"`
	Series      string    `json:"series"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Ticker) TableName() string {
	return "tickers"
}
