// Package httpapi exposes the HTTP side of the server: the identity-created
// webhook, a health check and the realtime change feed.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/identity"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Provisioner creates the root profile for an identity event.
type Provisioner interface {
	Provision(ctx context.Context, ev identity.Event) (identity.Outcome, error)
}

// Feed serves an upgraded websocket connection for userID until it closes.
type Feed interface {
	Serve(ctx context.Context, conn *websocket.Conn, userID string)
}

type Handler struct {
	hook     Provisioner
	feed     Feed
	logger   logging.Logger
	upgrader websocket.Upgrader
}

func NewHandler(p Provisioner, f Feed, l logging.Logger) *Handler {
	return &Handler{
		hook:   p,
		feed:   f,
		logger: l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// NewRouter wires the routes. webhookKey guards the identity hook and
// secret verifies realtime subscribers.
func NewRouter(h *Handler, webhookKey string, secret []byte) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/healthz", h.Health)

	hooks := r.Group("/hooks")
	hooks.Use(APIKeyAuth(webhookKey))
	{
		hooks.POST("/identity-created", h.IdentityCreated)
	}

	r.GET("/ws", BearerAuth(secret), h.Realtime)

	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// IdentityCreated provisions the reported identity before answering. Any
// store failure answers 503 so the provider redelivers; provisioning is
// create-if-absent, which makes redelivery safe.
func (h *Handler) IdentityCreated(c *gin.Context) {
	var ev identity.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if ev.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	out, err := h.hook.Provision(c.Request.Context(), ev)
	switch {
	case errors.Is(err, common.ErrorInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "provisioning failed, retry later"})
	case out == identity.OutcomeCreated:
		c.JSON(http.StatusCreated, gin.H{"status": string(out)})
	default:
		c.JSON(http.StatusOK, gin.H{"status": string(out)})
	}
}

func (h *Handler) Realtime(c *gin.Context) {
	userID := c.GetString(ctxKeyUserID)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}

	h.feed.Serve(c.Request.Context(), conn, userID)
}
