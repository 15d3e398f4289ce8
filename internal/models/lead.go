package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective customer's contact details captured through the
// chat widget's form.
type Lead struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Phone         string    `db:"phone"`
	Consent       bool      `db:"consent"`
	SourceMessage string    `db:"source_message"`
	CreatedAt     time.Time `db:"created_at"`
}
