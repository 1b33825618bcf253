package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/blwclub/membership-portal/internal/config"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/metrics"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

type feedClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// FeedHandler pushes application events to connected admin consoles so
// lists and stat cards refresh without polling.
type FeedHandler struct {
	upgrader     websocket.Upgrader
	clients      map[*feedClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *feedClient
	unregister   chan *feedClient
	done         chan struct{}
}

func NewFeedHandler(conf *config.APIConfig) *FeedHandler {
	return &FeedHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(conf.CORSDomains(), origin)
			},
		},
		clients:    make(map[*feedClient]struct{}),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is done.
func (h *FeedHandler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.clientsMutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
				metrics.FeedDisconnected()
			}
			h.clientsMutex.Unlock()
			return
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
			metrics.FeedConnected()
		case client := <-h.unregister:
			h.drop(client)
		case message := <-h.broadcast:
			h.clientsMutex.RLock()
			var slow []*feedClient
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					slow = append(slow, client)
				}
			}
			h.clientsMutex.RUnlock()

			for _, client := range slow {
				h.drop(client)
			}
		}
	}
}

// Publish never blocks the caller; events are dropped when the hub is
// backed up.
func (h *FeedHandler) Publish(event domain.ApplicationEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to encode application event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- message:
	default:
		zap.L().Warn("admin feed is full, dropping event",
			zap.String("type", string(event.Type)),
			zap.String("applicationID", event.ApplicationID))
	}
}

// Clients is the number of connected consoles.
func (h *FeedHandler) Clients() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	return len(h.clients)
}

// HandleWebSocket godoc
// @Summary      Live application feed
// @Description  Streams submitted, approved, rejected and payment events to the admin console. Browsers pass the token as access_token.
// @Tags         admin
// @Produce      json
// @Success      101  {string}  string "Switching Protocols to WebSocket"
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /admin/feed [get]
// @Security BearerAuth
func (h *FeedHandler) HandleWebSocket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		ctx.AbortWithStatusJSON(respErr.HTTPStatusCode, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Uint("userID", user.ID), zap.Error(err))
		return
	}

	client := &feedClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: user.ID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (h *FeedHandler) drop(client *feedClient) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		metrics.FeedDisconnected()
	}
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for close and pong frames. Consoles never send.
func (c *feedClient) readPump(h *FeedHandler) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("admin feed closed unexpectedly", zap.Uint("userID", c.userID), zap.Error(err))
			}
			return
		}
	}
}
