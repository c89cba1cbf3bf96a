package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/api"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/testutil"
)

func loginAs(
	t *testing.T,
	env *testutil.TestEnv,
	username string,
	password string,
) api.TokenResponse {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	var response api.TokenResponse
	result := testutil.PostJSON(env.Router, "/auth/login", body, &response)
	testutil.ExpectStatus(t, http.StatusOK, result)
	return response
}

func TestRefresh_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	// setup env
	env.RegisterTestUser(t, "alice", "password123")
	creds := loginAs(t, env, "alice", "password123")

	body := `{"refresh_token":"` + creds.RefreshToken + `"}`
	var response api.TokenResponse
	result := testutil.PostJSON(env.Router, "/auth/refresh", body, &response)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if response.AccessToken == "" {
		t.Error("missing access token")
	}
	if response.ExpiresIn != 900 {
		t.Errorf("expected expires_in 900, got %d", response.ExpiresIn)
	}
	// without rotation the presented token stays valid and no new one is issued
	if response.RefreshToken != "" {
		t.Errorf("unexpected refresh token in response: %q", response.RefreshToken)
	}

	result = testutil.PostJSON(env.Router, "/auth/refresh", body, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)
}

func TestRefresh_WithRotation(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t, service.WithRefreshRotation())

	// setup env
	env.RegisterTestUser(t, "alice", "password123")
	creds := loginAs(t, env, "alice", "password123")

	body := `{"refresh_token":"` + creds.RefreshToken + `"}`
	var response api.TokenResponse
	result := testutil.PostJSON(env.Router, "/auth/refresh", body, &response)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if response.RefreshToken == "" || response.RefreshToken == creds.RefreshToken {
		t.Fatal("rotation should return a distinct replacement token")
	}

	// the old token was revoked by the rotation
	result = testutil.PostJSON(env.Router, "/auth/refresh", body, nil)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
}

func TestRefresh_UnknownToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	body := `{"refresh_token":"never-issued"}`
	var response api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/auth/refresh", body, &response)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
	if response.Message != "Invalid refresh token" {
		t.Errorf("unexpected message: %q", response.Message)
	}
}

func TestRefresh_ExpiredToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	// setup env
	ownerID := env.RegisterTestUser(t, "alice", "password123")
	token := env.StoreTestRefreshToken(t, ownerID, time.Now().Add(-time.Hour))

	// the first presentation reports the expiry and purges the row
	body := `{"refresh_token":"` + token + `"}`
	var response api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/auth/refresh", body, &response)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
	if response.Message != "Refresh token expired" {
		t.Errorf("unexpected message: %q", response.Message)
	}

	// after the purge the token is simply unknown
	response = api.ErrorResponse{}
	result = testutil.PostJSON(env.Router, "/auth/refresh", body, &response)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
	if response.Message != "Invalid refresh token" {
		t.Errorf("unexpected message: %q", response.Message)
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/auth/refresh", `{}`, nil)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
}
