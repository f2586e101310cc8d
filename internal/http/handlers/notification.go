package handlers

import (
	"net/http"
	"strconv"

	"talenthub/internal/app"
	"talenthub/internal/common"
	"talenthub/internal/http/response"
)

type NotificationHandler struct {
	notifications *app.NotificationService
	authz         *app.Authorizer
}

func NewNotificationHandler(notifications *app.NotificationService, authz *app.Authorizer) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, authz: authz}
}

type markReadRequest struct {
	IDs []string `json:"ids"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))
	items, err := h.notifications.List(r.Context(), actor, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	unread, err := h.notifications.UnreadCount(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req markReadRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	ids := make([]common.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid request", map[string]string{"ids": "invalid uuid: " + raw}))
			return
		}
		ids = append(ids, id)
	}
	if err := h.notifications.MarkRead(r.Context(), actor, ids); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
