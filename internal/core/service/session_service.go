package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mergington/roster-console/internal/core/domain"
	"github.com/mergington/roster-console/internal/core/ports"
)

// SessionService owns the in-memory session context: it resolves the
// current identity from the stored credential and performs login/logout.
// The identity is always a function of the last-resolved credential
// validity; it is dropped whenever the credential goes away.
type SessionService struct {
	api    ports.RosterAPI
	tokens ports.TokenStore
	log    zerolog.Logger

	current *domain.Identity
}

func NewSessionService(api ports.RosterAPI, tokens ports.TokenStore, log zerolog.Logger) *SessionService {
	return &SessionService{api: api, tokens: tokens, log: log}
}

// Current returns the identity resolved for this session, or nil when
// logged out.
func (s *SessionService) Current() *domain.Identity {
	return s.current
}

// Resolve recomputes the identity from the stored credential. With no
// credential it short-circuits to logged out without any network call.
// A server rejection discards the credential (expired sessions are a
// normal path, not an error to surface); a transport failure leaves the
// credential in place so a flaky network never logs the user out.
func (s *SessionService) Resolve(ctx context.Context) *domain.Identity {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("token store unreadable")
		s.current = nil
		return nil
	}
	if token == "" {
		s.current = nil
		return nil
	}

	identity, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			if clearErr := s.tokens.Clear(ctx); clearErr != nil {
				s.log.Warn().Err(clearErr).Msg("failed to clear rejected credential")
			}
			s.log.Debug().Msg("stored session rejected by server")
		} else {
			s.log.Warn().Err(err).Msg("identity resolution failed, keeping credential")
		}
		s.current = nil
		return nil
	}

	s.current = identity
	return identity
}

// Login authenticates with the backend. On success the returned token
// becomes the stored credential and the identity becomes current. On
// failure nothing changes: the store keeps whatever it held before.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	result, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Set(ctx, result.Token); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist credential, session will not survive restart")
	}

	identity := result.Identity
	s.current = &identity
	s.log.Info().Str("username", identity.Username).Str("role", identity.Role).Msg("logged in")
	return &identity, nil
}

// Logout posts the logout best-effort and always clears the local
// session. A network failure is swallowed: logout must proceed locally
// regardless of what the server saw.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout request failed, clearing session anyway")
	}
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear credential")
	}
	s.current = nil
}
