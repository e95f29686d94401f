package acapi

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		connectivity bool
		auth         bool
		request      bool
		retryable    bool
	}{
		{"connectivity", NewConnectivityError("request failed", errors.New("refused")), true, false, false, true},
		{"http status", NewHTTPError(apiURLDevInfoListAll, 502), true, false, false, true},
		{"not logged in", NewNotLoggedInError(apiURLDevInfoListAll), true, false, false, true},
		{"parse", NewParseError(apiURLLogin, errors.New("bad json")), true, false, false, true},
		{"auth", NewAuthError(10001, `{"code":10001}`), false, true, false, false},
		{"request", NewRequestError(apiURLAddDevMode, 500, ""), false, false, true, true},
		{"plain error", errors.New("something else"), false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConnectivityError(tt.err); got != tt.connectivity {
				t.Errorf("IsConnectivityError = %v, want %v", got, tt.connectivity)
			}
			if got := IsAuthError(tt.err); got != tt.auth {
				t.Errorf("IsAuthError = %v, want %v", got, tt.auth)
			}
			if got := IsRequestError(tt.err); got != tt.request {
				t.Errorf("IsRequestError = %v, want %v", got, tt.request)
			}
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewConnectivityError("request to /api/user/appUserLogin failed", cause)

	msg := err.Error()
	if !strings.Contains(msg, "Connectivity Error") {
		t.Errorf("message %q missing type name", msg)
	}
	if !strings.Contains(msg, "connection refused") {
		t.Errorf("message %q missing cause", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"54929097239553773072", "54929097239553773072"},
		{json.Number("54929097239553773072"), "54929097239553773072"},
		{json.Number("31594853"), "31594853"},
		{42, "42"},
		{int64(42), "42"},
		{float64(42), "42"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := NormalizeID(tt.in); got != tt.want {
			t.Errorf("NormalizeID(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
