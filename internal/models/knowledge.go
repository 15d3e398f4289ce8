package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeEntry is one FAQ record of the chat assistant: trigger
// keywords, a canned answer and display metadata passed through to the
// widget. Entries are loaded once at startup and never mutated; Position
// fixes the tie-break order when two entries score equally.
type KnowledgeEntry struct {
	ID                  uuid.UUID `db:"id"`
	Position            int       `db:"position"`
	Keywords            []string  `db:"keywords"`
	Answer              string    `db:"answer"`
	FollowUp            string    `db:"follow_up"`
	Emotion             string    `db:"emotion"`
	Costume             string    `db:"costume"`
	ScrollTarget        string    `db:"scroll_target"`
	SuggestConfigurator bool      `db:"suggest_configurator"`
	ShowLeadPrompt      bool      `db:"show_lead_prompt"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}
