package comm

import (
	"encoding/json"
	"time"
)

// Topic the dashboard service publishes on and the stream service consumes.
const TopicCardUpdated = "card.updated"

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch", "card-updated"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// CardUpdate announces that a card received a fresh envelope. Clients use it
// to refetch the resolved card rather than carrying the payload over the wire.
type CardUpdate struct {
	CardID      string    `json:"card_id"`
	ChartType   string    `json:"chart_type"`
	Source      string    `json:"source"`
	PeriodLabel string    `json:"period_label"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// WatchRequest narrows a websocket client's feed to one source attribution.
// An empty source watches everything.
type WatchRequest struct {
	Source string `json:"source"`
}
