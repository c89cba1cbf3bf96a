package api

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

// ThrottleLogin applies the login attempt limiter before the handler runs.
// Every attempt counts against the window, successful or not; denials carry
// the standard rate limit headers so clients can back off correctly.
func (a *API) ThrottleLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := a.limiter.Check(clientKey(r))
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))
			writeError(w, http.StatusTooManyRequests, "too_many_requests",
				"Too many login attempts. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey derives the throttle key from the client's network address.
// Keying by address rather than account means clients behind a shared NAT
// share a budget, but credential stuffing spread across many usernames from
// one host still gets throttled.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
