package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var ErrClientClosed = errors.New("client is closed")

// ClientInterface is implemented by Client and by test doubles
type ClientInterface interface {
	ID() string
	WorkspaceID() int32
	Send(data []byte) error
	Close() error
}

// Hub tracks connected clients per workspace. It is safe for concurrent use.
type Hub struct {
	workspaces map[int32]map[string]ClientInterface
	mu         sync.RWMutex
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		workspaces: make(map[int32]map[string]ClientInterface),
		logger:     logger.With().Str("component", "ws_hub").Logger(),
	}
}

func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	workspaceID := client.WorkspaceID()
	if h.workspaces[workspaceID] == nil {
		h.workspaces[workspaceID] = make(map[string]ClientInterface)
	}
	h.workspaces[workspaceID][client.ID()] = client

	h.logger.Debug().
		Int32("workspace_id", workspaceID).
		Str("client_id", client.ID()).
		Msg("client registered")
}

func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	workspaceID := client.WorkspaceID()
	clients, ok := h.workspaces[workspaceID]
	if !ok {
		return
	}
	if _, exists := clients[client.ID()]; !exists {
		return
	}

	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.workspaces, workspaceID)
	}

	h.logger.Debug().
		Int32("workspace_id", workspaceID).
		Str("client_id", client.ID()).
		Msg("client unregistered")
}

// Publish implements EventPublisher
func (h *Hub) Publish(workspaceID int32, event Event) {
	h.Broadcast(workspaceID, event)
}

// Broadcast sends an event to every client of a workspace without blocking on slow clients
func (h *Hub) Broadcast(workspaceID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		h.logger.Error().
			Err(err).
			Int32("workspace_id", workspaceID).
			Str("event_type", event.Type).
			Msg("failed to serialize event")
		return
	}

	clients := h.snapshot(workspaceID)
	if len(clients) == 0 {
		return
	}

	for _, client := range clients {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				h.logger.Warn().
					Err(err).
					Int32("workspace_id", workspaceID).
					Str("client_id", c.ID()).
					Msg("failed to send to client")
			}
		}(client)
	}

	h.logger.Debug().
		Int32("workspace_id", workspaceID).
		Str("event_type", event.Type).
		Int("client_count", len(clients)).
		Msg("broadcast event")
}

func (h *Hub) snapshot(workspaceID int32) []ClientInterface {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.workspaces[workspaceID]
	out := make([]ClientInterface, 0, len(clients))
	for _, c := range clients {
		out = append(out, c)
	}
	return out
}

// CloseAll disconnects every client; used on shutdown
func (h *Hub) CloseAll() {
	h.mu.Lock()
	all := make([]ClientInterface, 0)
	for _, clients := range h.workspaces {
		for _, c := range clients {
			all = append(all, c)
		}
	}
	h.workspaces = make(map[int32]map[string]ClientInterface)
	h.mu.Unlock()

	for _, c := range all {
		_ = c.Close()
	}
	h.logger.Info().Int("client_count", len(all)).Msg("closed all clients")
}

func (h *Hub) ClientCount(workspaceID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.workspaces[workspaceID])
}

func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.workspaces {
		total += len(clients)
	}
	return total
}
