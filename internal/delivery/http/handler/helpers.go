package handler

import (
	"net/http"

	"hospital-management-server/internal/delivery/http/middleware"
	"hospital-management-server/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// actorFromContext pulls the authenticated caller's ID and role out of the
// request context.
func actorFromContext(r *http.Request) (uuid.UUID, int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, 0, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, 0, false
	}
	return userID, roleID, true
}

// pathID parses a UUID path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name, errMessage string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, errMessage, nil)
		return uuid.Nil, false
	}
	return id, true
}
