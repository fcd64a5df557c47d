package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/channel/internal/otel"
	"github.com/shafe/handcraft/channel/pkg/response"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/log"
)

// EventsChannel is the redis pub/sub channel the hub fans events out on.
const EventsChannel = "handcraft:channel:events"

const writeWait = 10 * time.Second

// Hub relays channel events to live websocket subscribers. Events are
// published through redis pub/sub so every service replica fans out to
// its own connections.
type Hub struct {
	cache    *redis.Client
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(cache *redis.Client) *Hub {
	return &Hub{
		cache:    cache,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		conns:    map[*websocket.Conn]struct{}{},
	}
}

// Publish pushes an event to every replica's subscribers.
func (h *Hub) Publish(c context.Context, event response.Event) error {
	c, span := otel.Tracer.Start(c, "Hub Publish")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Hub Publish").
		Str(log.KeyPostID, event.PostID.String()).
		Logger()

	payload, err := json.Marshal(event)
	if err != nil {
		err = fmt.Errorf("failed marshaling event with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err := h.cache.Publish(c, EventsChannel, payload).Err(); err != nil {
		err = fmt.Errorf("failed publishing event with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

// Run subscribes to the events channel and broadcasts until the
// context is cancelled.
func (h *Hub) Run(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Hub Run").
		Logger()

	sub := h.cache.Subscribe(c, EventsChannel)
	defer func() {
		if err := sub.Close(); err != nil {
			logger.Error().Err(err).Msg("failed closing subscription")
		}
	}()

	messages := sub.Channel()
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopping event fan out")
			h.closeAll()
			return
		case message, ok := <-messages:
			if !ok {
				logger.Info().Msg("subscription channel closed")
				h.closeAll()
				return
			}
			h.broadcast(c, []byte(message.Payload))
		}
	}
}

// Subscribe upgrades the request to a websocket and streams events to
// it until the peer disconnects.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "Hub Subscribe")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Hub Subscribe").
		Logger()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		err = fmt.Errorf("failed upgrading connection with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	logger.Info().Msg("subscriber connected")

	// Reads are discarded; the read loop only notices the peer going
	// away so the connection can be dropped from the fan out set.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Info().Msg("subscriber disconnected")
				return
			}
		}
	}()
}

func (h *Hub) broadcast(c context.Context, payload []byte) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Hub broadcast").
		Logger()

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logger.Error().Err(err).Msg("failed setting write deadline")
			delete(h.conns, conn)
			conn.Close()
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Error().Err(err).Msg("failed writing to subscriber")
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
	h.mu.Unlock()
}
