package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mergington/roster-console/internal/core/domain"
	"github.com/mergington/roster-console/internal/core/ports"
	"github.com/mergington/roster-console/internal/metrics"
)

const (
	genericDetail      = "An error occurred"
	signupFallback     = "Failed to sign up. Please try again."
	unregisterFallback = "Failed to unregister. Please try again."
)

// MutationService submits signup/unregister requests and translates each
// outcome into a user-facing message. It performs no permission check of
// its own: the UI hides the controls when the capability is absent, and
// the server stays the authority either way. A successful mutation
// triggers exactly one roster refresh; failures trigger none.
type MutationService struct {
	api       ports.RosterAPI
	notifier  ports.Notifier
	refresher ports.Refresher
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewMutationService(api ports.RosterAPI, refresher ports.Refresher, notifier ports.Notifier, log zerolog.Logger) *MutationService {
	return &MutationService{
		api:       api,
		notifier:  notifier,
		refresher: refresher,
		validate:  validator.New(),
		log:       log,
	}
}

type mutationInput struct {
	Email    string `validate:"required,email"`
	Activity string `validate:"required"`
}

// Signup registers email for the named activity.
func (s *MutationService) Signup(ctx context.Context, email, activity string) {
	if !s.checkInput(email, activity) {
		metrics.MutationsTotal.WithLabelValues("signup", "rejected").Inc()
		return
	}
	message, err := s.api.Signup(ctx, activity, email)
	s.finish(ctx, "signup", message, err, signupFallback)
}

// Unregister removes email from the named activity.
func (s *MutationService) Unregister(ctx context.Context, email, activity string) {
	if !s.checkInput(email, activity) {
		metrics.MutationsTotal.WithLabelValues("unregister", "rejected").Inc()
		return
	}
	message, err := s.api.Unregister(ctx, activity, email)
	s.finish(ctx, "unregister", message, err, unregisterFallback)
}

// checkInput validates locally before spending a network call. Invalid
// input surfaces like any other rejection and triggers no refresh.
func (s *MutationService) checkInput(email, activity string) bool {
	err := s.validate.Struct(mutationInput{Email: email, Activity: activity})
	if err == nil {
		return true
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		switch ve[0].Field() {
		case "Email":
			s.notifier.Error("A valid email address is required")
		default:
			s.notifier.Error("An activity is required")
		}
	} else {
		s.notifier.Error(genericDetail)
	}
	return false
}

// finish owns the failure-to-message translation for one action: server
// detail verbatim when present, per-action fallback on transport
// failure. Only a success refreshes the roster.
func (s *MutationService) finish(ctx context.Context, action, message string, err error, fallback string) {
	if err == nil {
		metrics.MutationsTotal.WithLabelValues(action, "ok").Inc()
		s.notifier.Success(message)
		s.refresher.Refresh(ctx)
		return
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		metrics.MutationsTotal.WithLabelValues(action, "rejected").Inc()
		detail := apiErr.Detail
		if detail == "" {
			detail = genericDetail
		}
		s.notifier.Error(detail)
		return
	}

	metrics.MutationsTotal.WithLabelValues(action, "failed").Inc()
	s.log.Warn().Err(err).Str("action", action).Msg("mutation transport failure")
	s.notifier.Error(fallback)
}
