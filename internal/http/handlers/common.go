package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"talenthub/internal/app"
	"talenthub/internal/common"
	"talenthub/internal/http/middleware"
)

func decodeJSON(r *http.Request, dst any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewError(common.CodeValidation, "request body is required", nil)
		}
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath returns the path segment at the given index as a UUID;
// index counts non-empty segments from the left, so /jobs/{id}/close
// has the ID at index 1.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 0 || index >= len(segments) {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	id, err := common.ParseUUID(segments[index])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func actorFromRequest(r *http.Request, authz *app.Authorizer) (app.Actor, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return app.Actor{}, errUnauthorized()
	}
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok || role == "" {
		return app.Actor{}, common.NewError(common.CodeForbidden, "role not assigned", nil)
	}
	return authz.ResolveActor(r.Context(), userID, role)
}
