// Package api implements the HTTP surface of the auth server: the /auth token
// endpoints, the guarded /api routes, and the middleware that protects them.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/ratelimit"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

type API struct {
	service  *service.Service
	verifier *tokens.Verifier
	limiter  ratelimit.Limiter
}

func New(
	svc *service.Service,
	verifier *tokens.Verifier,
	limiter ratelimit.Limiter,
) *API {
	return &API{
		service:  svc,
		verifier: verifier,
		limiter:  limiter,
	}
}

// ErrorResponse is the uniform error body: a machine-readable code from the
// error taxonomy plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logApiErr(r, "bad json request")
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return false
	}
	return true
}

func returnJson(data any, w http.ResponseWriter) {
	writeJson(w, http.StatusOK, data)
}

func writeJson(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJson(w, status, &ErrorResponse{Error: code, Message: message})
}

// writeServiceError translates service sentinels into the HTTP taxonomy.
// Internal failures are logged once here and surfaced without details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid username or password")
	case errors.Is(err, service.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Refresh token expired")
	case errors.Is(err, service.ErrTokenNotFound),
		errors.Is(err, service.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid refresh token")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "Duplicate unique field")
	default:
		logApiErr(r, err.Error())
		writeError(w, http.StatusInternalServerError, "internal_server_error", "Something went wrong")
	}
}

func logApiErr(r *http.Request, msg string) {
	log.Printf("%s %s: %s\n", r.Method, r.RequestURI, msg)
}
