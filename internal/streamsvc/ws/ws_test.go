package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseboard/dash-services/internal/comm"
)

func watch(s *Ws, socketId, source string) {
	data, _ := json.Marshal(comm.WatchRequest{Source: source})
	s.SocketMessage(socketId, &comm.WSMessage{Type: "watch", Data: data})
}

func TestGetWatchersFiltersBySource(t *testing.T) {
	s := NewWs()
	s.StoreConnection("all", nil)
	s.StoreConnection("kanban-only", nil)
	s.StoreConnection("research-only", nil)

	watch(s, "kanban-only", "Product Kanban")
	watch(s, "research-only", "Research Desk")

	got := s.GetWatchers("Product Kanban")
	assert.ElementsMatch(t, []string{"all", "kanban-only"}, got)

	got = s.GetWatchers("Research Desk")
	assert.ElementsMatch(t, []string{"all", "research-only"}, got)
}

func TestWatchEmptySourceResetsFilter(t *testing.T) {
	s := NewWs()
	s.StoreConnection("c1", nil)

	watch(s, "c1", "Product Kanban")
	assert.Empty(t, s.GetWatchers("Research Desk"))

	watch(s, "c1", "")
	assert.Equal(t, []string{"c1"}, s.GetWatchers("Research Desk"))
}

func TestHandleDisconnect(t *testing.T) {
	s := NewWs()
	s.StoreConnection("c1", nil)
	watch(s, "c1", "Product Kanban")

	s.HandleDisconnect("c1")

	_, ok := s.GetConnection("c1")
	assert.False(t, ok)
	assert.Empty(t, s.GetWatchers("Product Kanban"))
}
