package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", a.Health()).Methods(http.MethodGet)

	auth := r.PathPrefix("/auth").Subrouter()
	auth.Handle("/login", a.ThrottleLogin(a.Login())).Methods(http.MethodPost)
	auth.Handle("/refresh", a.Refresh()).Methods(http.MethodPost)
	auth.Handle("/logout", a.Logout()).Methods(http.MethodPost)

	open := r.PathPrefix("/api").Subrouter()
	open.Handle("/verify-token", a.VerifyToken()).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(a.Authenticate)
	protected.Handle("/profile", a.Profile()).Methods(http.MethodGet)

	return r
}

func (a *API) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
