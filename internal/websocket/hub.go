package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"qa-assistant-be/internal/pkg/logger"
)

// clusterChannel carries cross-instance pushes so a user connected to
// another replica still receives inbox notifications.
const clusterChannel = "cluster_events"

// Hub tracks live websocket connections per user. A user can hold several
// connections at once (multiple tabs or devices).
type Hub struct {
	clients    map[string][]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	rdb *redis.Client
	log logger.ILogger

	// instanceID lets the cluster subscriber skip messages this instance
	// published itself, which it already delivered locally.
	instanceID string
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		log:        log,
		instanceID: uuid.NewString(),
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.log.Info("hub", "client registered", map[string]interface{}{"userId": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser delivers payload to every local connection of the user and
// relays it to the other instances.
func (h *Hub) SendToUser(userID string, payload []byte) {
	h.deliverLocal(userID, payload)

	if h.rdb != nil {
		relay, err := json.Marshal(clusterMessage{Origin: h.instanceID, TargetUserID: userID, Message: payload})
		if err != nil {
			return
		}
		h.rdb.Publish(context.Background(), clusterChannel, relay)
	}
}

func (h *Hub) deliverLocal(userID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			// slow consumer, drop the connection
			h.log.Warn("hub", "send buffer full, dropping client", map[string]interface{}{"userId": userID})
			close(client.Send)
			h.unregister <- client
		}
	}
}

type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"targetUserId"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.log.Warn("hub", "malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.TargetUserID, payload.Message)
	}
}
