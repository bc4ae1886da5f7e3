package entity

import "time"

// Recommendation is an analyst recommendation summary for one symbol over
// one aggregation window.
type Recommendation struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Symbol      string    `json:"symbol"`
	PeriodStart time.Time `json:"period_start" gorm:"type:date"`
	PeriodEnd   time.Time `json:"period_end" gorm:"type:date"`
	StrongBuy   int       `json:"strong_buy"`
	Buy         int       `json:"buy"`
	Hold        int       `json:"hold"`
	Sell        int       `json:"sell"`
	StrongSell  int       `json:"strong_sell"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
