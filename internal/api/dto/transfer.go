package dto

import "time"

// ExportQuery holds the optional range and format of GET /api/export.
type ExportQuery struct {
	StartDate string `form:"startDate" validate:"omitempty,calendar_date"`
	EndDate   string `form:"endDate" validate:"omitempty,calendar_date"`
	Format    string `form:"format" validate:"omitempty,oneof=json md markdown ics ical"`
}

// ImportListQuery pages GET /api/imports.
type ImportListQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

type ImportRecordResponse struct {
	ID        uint      `json:"id"`
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
