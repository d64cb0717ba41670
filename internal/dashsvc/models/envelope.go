package models

import (
	"encoding/json"
	"time"
)

// Envelope is the latest-data bundle bound to a card: the raw payload as the
// producer pushed it, the reporting period it describes and when it arrived.
// An envelope is always replaced wholesale, never merged field by field.
type Envelope struct {
	CardID      string          `json:"card_id"`
	Payload     json.RawMessage `json:"payload"`
	PeriodLabel string          `json:"period_label"`
	IngestedAt  time.Time       `json:"ingested_at"`
}

// Clone returns a deep copy so callers can hold an envelope across a
// concurrent overwrite without observing the swap.
func (e *Envelope) Clone() *Envelope {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Payload != nil {
		cp.Payload = make(json.RawMessage, len(e.Payload))
		copy(cp.Payload, e.Payload)
	}
	return &cp
}
