package api

import (
	"net/http"
)

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *API) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}
		if req.RefreshToken == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Refresh token required")
			return
		}

		creds, err := a.service.Refresh(req.RefreshToken)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		returnJson(&TokenResponse{
			TokenType:    creds.TokenType,
			AccessToken:  creds.AccessToken,
			ExpiresIn:    creds.ExpiresIn,
			RefreshToken: creds.RefreshToken,
		}, w)
	}
}
