package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// HTTPResult captures HTTP response details for test assertions
type HTTPResult struct {
	Code    int
	Error   error
	Headers http.Header
	Body    []byte
}

// Header represents an HTTP header key-value pair
type Header struct {
	Key   string
	Value string
}

// ContentTypeJSON returns a header for JSON content type
func ContentTypeJSON() Header {
	return Header{
		Key:   "Content-Type",
		Value: "application/json",
	}
}

// BearerAuth returns an Authorization header for the given access token
func BearerAuth(token string) Header {
	return Header{
		Key:   "Authorization",
		Value: "Bearer " + token,
	}
}

// ExpectStatus validates the HTTP status code and fails the test if it doesn't match
func ExpectStatus(
	t *testing.T,
	expected int,
	result HTTPResult,
) {
	t.Helper()
	if result.Error != nil {
		t.Fatalf("request error: %v", result.Error)
	}
	if result.Code != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, result.Code, string(result.Body))
	}
}

// Get performs a GET request and optionally decodes the JSON response
func Get(
	router http.Handler,
	url string,
	response any,
	headers ...Header,
) HTTPResult {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	return execute(router, req, response, headers)
}

// PostJSON performs a POST with a JSON body and optionally decodes the JSON response
func PostJSON(
	router http.Handler,
	url string,
	body string,
	response any,
	headers ...Header,
) HTTPResult {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	headers = append(headers, ContentTypeJSON())
	return execute(router, req, response, headers)
}

func execute(
	router http.Handler,
	req *http.Request,
	response any,
	headers []Header,
) HTTPResult {
	res := httptest.NewRecorder()
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}
	router.ServeHTTP(res, req)

	if response != nil && res.Body.Len() > 0 {
		if err := json.Unmarshal(res.Body.Bytes(), response); err != nil {
			return HTTPResult{
				Code:    res.Code,
				Error:   fmt.Errorf("failed to decode JSON: %v\n%s", err, res.Body.String()),
				Headers: res.Header(),
				Body:    res.Body.Bytes(),
			}
		}
	}

	return HTTPResult{Code: res.Code, Headers: res.Header(), Body: res.Body.Bytes()}
}
