package api

import (
	"net/http"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *API) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogoutRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}
		if req.RefreshToken == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "Refresh token required")
			return
		}

		if err := a.service.Logout(req.RefreshToken); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
