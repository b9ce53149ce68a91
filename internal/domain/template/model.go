package template

import (
	"strings"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
)

// EventTemplate is a previously used event name offered as a suggestion.
// Templates are created on first use and never updated or deleted.
type EventTemplate struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}

func (EventTemplate) TableName() string {
	return "event_templates"
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.NewValidation("name", "template name is required")
	}
	return name, nil
}
