package api

import (
	"net/http"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is shared by login and refresh. RefreshToken is omitted on
// refresh responses unless rotation is enabled.
type TokenResponse struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "Missing fields")
			return
		}

		creds, err := a.service.Login(req.Username, req.Password)
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
