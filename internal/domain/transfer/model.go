package transfer

import (
	"time"

	"gorm.io/datatypes"
)

// ImportRecord is the audit row written for every import attempt that got
// as far as decoding the upload.
type ImportRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Filename  string         `json:"filename" gorm:"type:varchar(255);not null"`
	Format    string         `json:"format" gorm:"type:varchar(16);not null"`
	Imported  int            `json:"imported" gorm:"not null;default:0"`
	Skipped   int            `json:"skipped" gorm:"not null;default:0"`
	Total     int            `json:"total" gorm:"not null;default:0"`
	Details   datatypes.JSON `json:"details,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
}

func (ImportRecord) TableName() string {
	return "import_records"
}

// Result is the outcome of one import.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// SkipDetail explains why one decoded entry was not stored.
type SkipDetail struct {
	Index     int    `json:"index"`
	EventName string `json:"event_name,omitempty"`
	Reason    string `json:"reason"`
}
