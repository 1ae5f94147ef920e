package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
)

// parseID parses raw as a positive int64 identifier. Anything else is
// domain.ErrInvalidID.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	if err := domain.ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// getPathID extracts a positive integer identifier from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	return parseID(chi.URLParam(r, paramName))
}

// getQueryID extracts an optional positive integer identifier from the query
// string. ok is false when the parameter is absent.
func getQueryID(r *http.Request, paramName string) (id int64, ok bool, err error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return 0, false, nil
	}
	id, err = parseID(raw)
	if err != nil {
		return 0, true, err
	}
	return id, true, nil
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware, writing a 401 response when it is missing.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}
	return user, true
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 422 problem response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
