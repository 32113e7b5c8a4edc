package handler

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/halvard/teamstore/internal/api/response"
	"github.com/halvard/teamstore/internal/core"
	"github.com/halvard/teamstore/internal/push"
)

var topicPattern = regexp.MustCompile(`^(user|team):\d+$`)

type Notification struct {
	svc    *core.NotificationService
	push   *push.Redis
	logger zerolog.Logger
}

func NewNotification(svc *core.NotificationService, push *push.Redis, logger zerolog.Logger) *Notification {
	return &Notification{svc: svc, push: push, logger: logger}
}

func (h *Notification) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	userRaw := r.URL.Query().Get("user_id")
	teamRaw := r.URL.Query().Get("team_id")
	switch {
	case userRaw != "" && teamRaw == "":
		userID, err := strconv.ParseInt(userRaw, 10, 64)
		if err != nil || userID <= 0 {
			response.WriteError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		notifications, err := h.svc.ListForUser(r.Context(), userID, limit)
		if err != nil {
			response.WriteServiceError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, notifications)
	case teamRaw != "" && userRaw == "":
		teamID, err := strconv.ParseInt(teamRaw, 10, 64)
		if err != nil || teamID <= 0 {
			response.WriteError(w, http.StatusBadRequest, "invalid team_id")
			return
		}
		notifications, err := h.svc.ListForTeam(r.Context(), teamID, limit)
		if err != nil {
			response.WriteServiceError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, notifications)
	default:
		response.WriteError(w, http.StatusBadRequest, "exactly one of user_id or team_id is required")
	}
}

// Stream upgrades to a websocket and relays pub/sub messages for one topic.
// Messages published while the client is disconnected are not replayed; the
// persisted notification list is the catch-up mechanism.
func (h *Notification) Stream(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if !topicPattern.MatchString(topic) {
		response.WriteError(w, http.StatusBadRequest, "topic must be user:<id> or team:<id>")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	// CloseRead discards incoming frames and cancels the context when the
	// client goes away.
	ctx := conn.CloseRead(r.Context())

	sub := h.push.Subscribe(ctx, topic)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "subscription closed")
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, []byte(msg.Payload)); err != nil {
				h.logger.Debug().Err(err).Str("topic", topic).Msg("websocket write failed")
				return
			}
		}
	}
}
