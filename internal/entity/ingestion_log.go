package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

type IngestionStatus string

const (
	IngestionStatusSuccess IngestionStatus = "SUCCESS"
	IngestionStatusPartial IngestionStatus = "PARTIAL"
	IngestionStatusFailed  IngestionStatus = "FAILED"
)

// DataIngestionLog records the outcome of one ingestion or computation run
// for a symbol and data type.
type DataIngestionLog struct {
	ID                int64           `json:"id" gorm:"primaryKey"`
	Symbol            string          `json:"symbol"`
	DataType          string          `json:"data_type"`
	RecordsProcessed  int             `json:"records_processed"`
	RecordsSuccessful int             `json:"records_successful"`
	RecordsFailed     int             `json:"records_failed"`
	Status            IngestionStatus `json:"status"`
	ErrorMessage      sql.NullString  `json:"error_message"`
	Details           datatypes.JSON  `json:"details" gorm:"type:jsonb"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (DataIngestionLog) TableName() string {
	return "data_ingestion_log"
}
