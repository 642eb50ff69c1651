package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"
)

// Kind categorizes a remote-service failure. The orchestrator escalates
// KindAuth to abort a run; everything else is per-file.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindRateLimit
	KindBadRequest
	KindServer
	KindNetwork
	KindSafety
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate-limit"
	case KindBadRequest:
		return "bad-request"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindSafety:
		return "safety"
	case KindEmpty:
		return "empty"
	}
	return "unknown"
}

// APIError is a classified remote-service failure.
type APIError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Classify maps an error from the genai client to an APIError with a
// distinct user-facing message per category.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var api *APIError
	if errors.As(err, &api) {
		return api
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 401 || gerr.Code == 403:
			return &APIError{Kind: KindAuth, Message: "API key invalid or unauthorized (403)", Err: err}
		case gerr.Code == 429:
			return &APIError{Kind: KindRateLimit, Message: "rate limit exceeded (429), please wait and try again", Err: err}
		case gerr.Code == 400:
			return &APIError{Kind: KindBadRequest, Message: fmt.Sprintf("bad request (400): %s", gerr.Message), Err: err}
		case gerr.Code >= 500:
			return &APIError{Kind: KindServer, Message: fmt.Sprintf("Gemini API server error (%d), please try again", gerr.Code), Err: err}
		}
	}

	var nerr net.Error
	var uerr *url.Error
	if errors.As(err, &nerr) || errors.As(err, &uerr) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindNetwork, Message: "network error: " + err.Error(), Err: err}
	}

	// The genai client sometimes surfaces status text rather than a
	// structured googleapi error.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "permission") || strings.Contains(msg, "403"):
		return &APIError{Kind: KindAuth, Message: "API key invalid or unauthorized (403)", Err: err}
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return &APIError{Kind: KindRateLimit, Message: "rate limit exceeded (429), please wait and try again", Err: err}
	}

	return &APIError{Kind: KindUnknown, Message: err.Error(), Err: err}
}

// IsAuth reports whether err is an authorization/credential failure. These
// recur for every subsequent file, so the import run aborts on them.
func IsAuth(err error) bool {
	var api *APIError
	return errors.As(err, &api) && api.Kind == KindAuth
}

// ValidateKeyFormat performs the cheap offline checks on a Gemini API key.
func ValidateKeyFormat(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if !strings.HasPrefix(key, "AIzaSy") {
		return errors.New("invalid API key format: Gemini API keys start with 'AIzaSy'")
	}
	if len(key) < 30 {
		return errors.New("API key appears too short, please verify your key")
	}
	return nil
}
