package instagram

import (
	"fmt"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

// APIError is a non-2xx (or status "fail") response from the platform.
type APIError struct {
	StatusCode int
	Message    string
	ErrorType  string
	TwoFactor  bool
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if e.ErrorType != "" {
		return fmt.Sprintf("instagram status %d (%s): %s", e.StatusCode, e.ErrorType, msg)
	}
	return fmt.Sprintf("instagram status %d: %s", e.StatusCode, msg)
}

// Unwrap maps well-known platform failures onto the model sentinels so
// callers can classify with errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Message == "challenge_required" || e.ErrorType == "challenge_required" || e.ErrorType == "checkpoint_challenge_required":
		return models.ErrChallengeRequired
	case e.TwoFactor:
		return models.ErrTwoFactorRequired
	case e.ErrorType == "bad_password":
		return models.ErrBadPassword
	case e.Message == "login_required" || e.ErrorType == "login_required":
		return models.ErrLoginRequired
	}
	return nil
}

type apiErrorBody struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	ErrorType         string `json:"error_type"`
	TwoFactorRequired bool   `json:"two_factor_required"`
}
