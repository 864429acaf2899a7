package session

import "time"

const (
	EventSessionStarted  = "SessionStarted"
	EventLanguageChanged = "LanguageChanged"
	EventPanelToggled    = "PanelToggled"
)

type SessionStarted struct {
	Language  string    `json:"language"`
	StartedAt time.Time `json:"started_at"`
}

type LanguageChanged struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChatReset bool      `json:"chat_reset"`
	ChangedAt time.Time `json:"changed_at"`
}

type PanelToggled struct {
	Panel     string    `json:"panel"`
	Open      bool      `json:"open"`
	ToggledAt time.Time `json:"toggled_at"`
}
