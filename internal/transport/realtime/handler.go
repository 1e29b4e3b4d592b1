// Package realtime pushes notifications to connected clients over WebSocket.
package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/korima-app/korima-backend/internal/adapter/pubsub"
)

const (
	defaultWriteWait  = 10 * time.Second
	defaultPongWait   = 60 * time.Second
	maxClientFrameLen = 512
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

type feed interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (pubsub.Subscription, error)
}

// Frame is what clients receive. Event is "ready" once the subscription is
// live, then "notification" with Data holding the notification.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler serves GET /ws/notifications.
type Handler struct {
	log      *slog.Logger
	tokens   tokenValidator
	feed     feed
	upgrader websocket.Upgrader

	writeWait    time.Duration
	pongWait     time.Duration
	pingInterval time.Duration
}

// NewHandler creates a Handler. allowedOrigins follows the CORS setting;
// "*" or an empty list accepts any origin.
func NewHandler(logger *slog.Logger, tokens tokenValidator, feed feed, allowedOrigins []string) *Handler {
	h := &Handler{
		log:       logger.With("handler", "realtime"),
		tokens:    tokens,
		feed:      feed,
		writeWait: defaultWriteWait,
	}
	h.setPongWait(defaultPongWait)
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// unauthorized answers before the upgrade in the same shape as REST errors.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  "unauthorized",
		"error": "missing or invalid access token",
	})
}

func (h *Handler) setPongWait(d time.Duration) {
	h.pongWait = d
	h.pingInterval = d * 9 / 10
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := accessToken(r)
	if token == "" {
		unauthorized(w)
		return
	}
	userID, _, err := h.tokens.ValidateToken(r.Context(), token)
	if err != nil {
		unauthorized(w)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.DebugContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub, err := h.feed.Subscribe(ctx, userID)
	if err != nil {
		h.log.ErrorContext(ctx, "subscribe notifications",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		h.closeWith(conn, websocket.CloseInternalServerErr, "subscription failed")
		return
	}
	defer sub.Close()

	go h.readPump(conn, cancel)

	if err := h.writeFrame(conn, Frame{Event: "ready"}); err != nil {
		return
	}
	h.log.DebugContext(ctx, "websocket connected", slog.String("user_id", userID.String()))

	h.writePump(ctx, conn, sub)
}

// readPump drains client frames so pong and close control frames are
// processed. It cancels ctx when the peer goes away.
func (h *Handler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxClientFrameLen)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writePump(ctx context.Context, conn *websocket.Conn, sub pubsub.Subscription) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-sub.Messages():
			if !ok {
				h.closeWith(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
			if err := h.writeFrame(conn, Frame{Event: "notification", Data: payload}); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}

func (h *Handler) closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.writeWait))
}

// accessToken reads the bearer header, falling back to the token query
// parameter since browsers cannot set headers on WebSocket requests.
func accessToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[o] = struct{}{}
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
