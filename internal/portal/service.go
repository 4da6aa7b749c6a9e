// Package portal orchestrates upstream fetches, the response cache, and the
// comparison engine for a pair of HubSpot portals tied to a session.
package portal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/johnwards/portaldiff/internal/domain"
	"github.com/johnwards/portaldiff/internal/hubspot"
	"github.com/johnwards/portaldiff/internal/store"
)

// Service exposes every comparison operation the HTTP surface offers. All
// methods resolve the session first, so expired sessions surface as
// store.ErrSessionNotFound.
type Service struct {
	store   *store.Store
	factory func(token string) *hubspot.Client
	baseURL string
	timeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithBaseURL points every portal client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = baseURL
	}
}

// WithRequestTimeout bounds each upstream request made by portal clients.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithClientFactory replaces how per-portal API clients are built. Tests use
// this to point each token at its own fake upstream.
func WithClientFactory(f func(token string) *hubspot.Client) Option {
	return func(s *Service) {
		s.factory = f
	}
}

// NewService builds a Service over the given store.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{store: st}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) client(token string) *hubspot.Client {
	if s.factory != nil {
		return s.factory(token)
	}
	var opts []hubspot.Option
	if s.baseURL != "" {
		opts = append(opts, hubspot.WithBaseURL(s.baseURL))
	}
	if s.timeout > 0 {
		opts = append(opts, hubspot.WithTimeout(s.timeout))
	}
	return hubspot.New(token, opts...)
}

// TokenError reports which portal's token failed validation.
type TokenError struct {
	Portal string // "A" or "B"
	Name   string
	Err    error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("portal %s token validation failed: %v", e.Portal, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// ValidateTokens checks both portals' tokens against the API and creates a
// session on success. Invalid tokens surface as *TokenError.
func (s *Service) ValidateTokens(ctx context.Context, portalAName, portalAToken, portalBName, portalBToken string) (*domain.Session, error) {
	clientA := s.client(portalAToken)
	clientB := s.client(portalBToken)

	var (
		wg         sync.WaitGroup
		errA, errB error
	)
	wg.Add(2)
	go func() { defer wg.Done(); errA = clientA.ValidateToken(ctx) }()
	go func() { defer wg.Done(); errB = clientB.ValidateToken(ctx) }()
	wg.Wait()

	if errA != nil {
		return nil, &TokenError{Portal: "A", Name: portalAName, Err: errA}
	}
	if errB != nil {
		return nil, &TokenError{Portal: "B", Name: portalBName, Err: errB}
	}

	sess, err := s.store.Sessions.Create(ctx, portalAName, portalAToken, portalBName, portalBToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	slog.Info("session created", "sessionId", sess.ID, "portalA", portalAName, "portalB", portalBName)
	return sess, nil
}

// Session loads a live session, touching it.
func (s *Service) Session(ctx context.Context, id string) (*domain.Session, error) {
	return s.store.Sessions.Get(ctx, id)
}

// both runs the same shape of fetch against the two portals concurrently and
// fails on the first error.
func both[T any](ctx context.Context, fetchA, fetchB func(context.Context) (T, error)) (T, T, error) {
	var (
		a, b       T
		errA, errB error
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() { defer wg.Done(); a, errA = fetchA(ctx) }()
	go func() { defer wg.Done(); b, errB = fetchB(ctx) }()
	wg.Wait()

	if errA != nil {
		return a, b, fmt.Errorf("portal a: %w", errA)
	}
	if errB != nil {
		return a, b, fmt.Errorf("portal b: %w", errB)
	}
	return a, b, nil
}
