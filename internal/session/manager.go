package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
	"github.com/pauljones0/thehub-deal-poster/internal/status"
	"github.com/pauljones0/thehub-deal-poster/internal/validator"
)

// Origin records how the current session was obtained.
type Origin string

const (
	OriginCached Origin = "cached"
	OriginFresh  Origin = "fresh"
)

// FailureKind classifies why a cached session could not be reused.
type FailureKind string

const (
	FailureLoginRequired     FailureKind = "login_required"
	FailureChallengeRequired FailureKind = "challenge_required"
	FailureStateInvalid      FailureKind = "state_invalid"
	FailureTransport         FailureKind = "transport"
	FailureUnexpected        FailureKind = "unexpected"
)

// ChallengeRequiredError means the platform demands out-of-band verification
// before a fresh login can succeed.
type ChallengeRequiredError struct {
	Err error
}

func (e *ChallengeRequiredError) Error() string {
	return fmt.Sprintf("challenge required, log in via a browser first: %v", e.Err)
}

func (e *ChallengeRequiredError) Unwrap() error { return e.Err }

// LoginFailedError wraps any other fresh-login failure.
type LoginFailedError struct {
	Err error
}

func (e *LoginFailedError) Error() string {
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *LoginFailedError) Unwrap() error { return e.Err }

// IsFatal reports whether err means no session can be established in this
// run.
func IsFatal(err error) bool {
	var challenge *ChallengeRequiredError
	var failed *LoginFailedError
	return errors.Is(err, models.ErrCredentialsMissing) || errors.As(err, &challenge) || errors.As(err, &failed)
}

// Manager establishes one authenticated session per process: cached state
// first, fresh login second.
type Manager struct {
	credentialsPath string
	store           StateStore
	newClient       ClientFactory
	validate        *validator.Validator
	out             *status.Printer

	client Client
	origin Origin
}

func NewManager(credentialsPath string, store StateStore, newClient ClientFactory, out *status.Printer) *Manager {
	if out == nil {
		out = status.Discard()
	}
	return &Manager{
		credentialsPath: credentialsPath,
		store:           store,
		newClient:       newClient,
		validate:        validator.New(),
		out:             out,
	}
}

// Origin reports how the held session was obtained; empty before GetSession succeeds.
func (m *Manager) Origin() Origin { return m.origin }

// GetSession returns the process-wide authenticated client, creating it on
// first use.
func (m *Manager) GetSession(ctx context.Context) (Client, error) {
	if m.client != nil {
		return m.client, nil
	}

	creds, err := LoadCredentials(m.credentialsPath, m.validate)
	if err != nil {
		m.out.Fail("Login failed: %v", err)
		return nil, err
	}

	client, err := m.tryCached(ctx, creds)
	if err == nil && client != nil {
		m.out.OK("Logged in with existing session")
		slog.Info("Reused cached session", "username", creds.Username)
		m.client, m.origin = client, OriginCached
		return client, nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		kind := Classify(err)
		slog.Warn("Cached session rejected, logging in again", "kind", kind, "error", err)
		m.out.Warn("Session invalid, re-logging: %v", err)
	}

	client, err = m.freshLogin(ctx, creds)
	if err != nil {
		return nil, err
	}
	m.out.OK("Fresh login successful")
	m.client, m.origin = client, OriginFresh
	return client, nil
}

// tryCached returns nil, nil when no state has been saved.
func (m *Manager) tryCached(ctx context.Context, creds models.Credentials) (Client, error) {
	state, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSessionStateInvalid, err)
	}
	if state == nil {
		slog.Debug("No saved session state")
		return nil, nil
	}

	client, err := m.newClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if err := client.RestoreState(state); err != nil {
		return nil, err
	}
	if err := client.Login(ctx, creds.Username, creds.Password); err != nil {
		return nil, err
	}
	if err := client.TimelineFeed(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func (m *Manager) freshLogin(ctx context.Context, creds models.Credentials) (Client, error) {
	client, err := m.newClient()
	if err != nil {
		return nil, &LoginFailedError{Err: fmt.Errorf("failed to create client: %w", err)}
	}

	if err := client.Login(ctx, creds.Username, creds.Password); err != nil {
		if errors.Is(err, models.ErrChallengeRequired) {
			m.out.Fail("Challenge required - need manual verification")
			m.out.Detail("Try logging in via browser first")
			return nil, &ChallengeRequiredError{Err: err}
		}
		m.out.Fail("Login failed: %v", err)
		return nil, &LoginFailedError{Err: err}
	}

	state, err := client.DumpState()
	if err == nil {
		err = m.store.Save(ctx, state)
	}
	if err != nil {
		slog.Warn("Failed to persist session state", "error", err)
		m.out.Warn("Could not save session: %v", err)
	}
	return client, nil
}

// Classify maps a cached-session failure onto a closed set of kinds; anything
// unrecognised is FailureUnexpected.
func Classify(err error) FailureKind {
	var netErr net.Error
	switch {
	case errors.Is(err, models.ErrChallengeRequired):
		return FailureChallengeRequired
	case errors.Is(err, models.ErrLoginRequired),
		errors.Is(err, models.ErrBadPassword),
		errors.Is(err, models.ErrTwoFactorRequired):
		return FailureLoginRequired
	case errors.Is(err, models.ErrSessionStateInvalid):
		return FailureStateInvalid
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		return FailureTransport
	default:
		return FailureUnexpected
	}
}
