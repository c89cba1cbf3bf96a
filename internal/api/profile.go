package api

import (
	"errors"
	"net/http"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
)

type ProfileResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (a *API) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}

		identity, err := a.service.Profile(claims.Subject)
		if err != nil {
			if errors.Is(err, service.ErrAccountNotFound) {
				writeError(w, http.StatusNotFound, "not_found", "User not found")
				return
			}
			writeServiceError(w, r, err)
			return
		}

		// roles come from the verified token, the same claims a downstream
		// service would act on
		returnJson(&ProfileResponse{
			ID:       identity.ID,
			Username: identity.Username,
			Roles:    claims.Roles,
		}, w)
	}
}
