package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/dash-services/internal/comm"
)

// Ws tracks the connected dashboard clients and what each one is watching.
// A client with no watch entry receives every card update.
type Ws struct {
	connMap  sync.Map // socketId -> *websocket.Conn
	watchMap sync.Map // socketId -> source attribution filter
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles a message from a web client.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "watch":
		s.handleWatch(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) handleWatch(socketId string, msg *comm.WSMessage) {
	var req comm.WatchRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		log.Errorf("Error: malformed watch payload %s", err)
		return
	}

	if req.Source == "" {
		s.watchMap.Delete(socketId)
		log.Infof("socket %s watching all sources", socketId)
		return
	}

	s.watchMap.Store(socketId, req.Source)
	log.Infof("socket %s watching source %q", socketId, req.Source)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

// GetWatchers returns the sockets that should receive an update for the given
// source: everyone without a filter plus those filtered to that source.
func (s *Ws) GetWatchers(source string) []string {
	var sockets []string

	s.connMap.Range(func(key, value interface{}) bool {
		socketId := key.(string)
		if filter, ok := s.watchMap.Load(socketId); ok && filter.(string) != source {
			return true // continue iterating
		}
		sockets = append(sockets, socketId)
		return true
	})

	return sockets
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.watchMap.Delete(socketId)
}
