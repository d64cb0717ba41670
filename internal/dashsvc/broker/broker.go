package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/dash-services/internal/comm"
)

// Broker pushes card-update notifications onto NATS so the stream service
// can fan them out to connected dashboards.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) PublishCardUpdated(ev comm.CardUpdate) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := comm.WSMessage{
		Type: "card-updated",
		Data: data,
	}

	bytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := b.Conn.Publish(comm.TopicCardUpdated, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", comm.TopicCardUpdated, err)
		return err
	}

	return nil
}
