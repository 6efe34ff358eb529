package models

import "time"

// CommandRecord is the persisted trace of one interpreted command: what the
// user typed, what it resolved to, and whether it passed validation. Records
// are written by the API pipeline and read back by the history endpoints.
type CommandRecord struct {
	ID        string     `json:"id"         validate:"required"`
	SessionID string     `json:"session_id"`
	RawText   string     `json:"raw_text"   validate:"required"`
	Kind      ActionKind `json:"kind"       validate:"required"`
	Valid     bool       `json:"valid"`
	Reason    string     `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
