package entity

import "time"

// SustainabilityScore is a point-in-time ESG snapshot for a symbol.
type SustainabilityScore struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Symbol           string    `json:"symbol"`
	AsOf             time.Time `json:"as_of" gorm:"column:as_of"`
	TotalEsg         *float64  `json:"total_esg" gorm:"column:total_esg"`
	EnvironmentScore *float64  `json:"environment_score"`
	SocialScore      *float64  `json:"social_score"`
	GovernanceScore  *float64  `json:"governance_score"`
	CreatedAt        time.Time `json:"created_at"`
}

func (SustainabilityScore) TableName() string {
	return "sustainability"
}
