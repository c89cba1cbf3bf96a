package api

import (
	"net/http"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

type VerifyResponse struct {
	Valid  bool           `json:"valid"`
	Claims *tokens.Claims `json:"claims,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

// VerifyToken lets other services check an access token without holding the
// verification key themselves. Verification failures are a 200 with
// valid=false: the endpoint answered the question it was asked.
func (a *API) VerifyToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			writeJson(w, http.StatusBadRequest, &VerifyResponse{
				Valid:  false,
				Reason: "Token is missing",
			})
			return
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			returnJson(&VerifyResponse{Valid: false, Reason: err.Error()}, w)
			return
		}

		returnJson(&VerifyResponse{Valid: true, Claims: claims}, w)
	}
}
