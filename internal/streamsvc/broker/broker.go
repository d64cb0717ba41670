package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/dash-services/internal/comm"
)

// Broker consumes card-update events from the dashboard service and fans
// them out to the websocket clients watching the card's source.
type Broker struct {
	Conn          *nats.Conn
	GetConnection func(string) (*websocket.Conn, bool)
	GetWatchers   func(string) []string
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool), fncGetWatchers func(string) []string) *Broker {
	return &Broker{
		Conn:          conn,
		GetConnection: fncGetConnection,
		GetWatchers:   fncGetWatchers,
	}
}

func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handleMessages receives card-update events from the dash service.
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "card-updated":
		b.broadcastUpdate(message)
	default:
		log.Error("Unknown message")
		return
	}
}

func (b *Broker) broadcastUpdate(m *comm.WSMessage) {
	var ev comm.CardUpdate
	if err := json.Unmarshal(m.Data, &ev); err != nil {
		log.Errorf("Error decoding card update: %s", err)
		return
	}

	for _, socketId := range b.GetWatchers(ev.Source) {
		if conn, ok := b.GetConnection(socketId); ok {
			if err := conn.WriteJSON(m); err != nil {
				log.Println(err)
			}
		}
	}
}
