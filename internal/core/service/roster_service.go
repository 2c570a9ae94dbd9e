package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mergington/roster-console/internal/core/domain"
	"github.com/mergington/roster-console/internal/core/ports"
	"github.com/mergington/roster-console/internal/metrics"
)

const loadFailureNotice = "Failed to load activities. Please try again later."

// RosterService fetches activity records and renders the derived view.
// Nothing is cached across cycles: every refresh re-fetches and rebuilds
// the whole view against the capability in effect at that moment, so
// mutation affordances always track the latest known authorization state.
type RosterService struct {
	api       ports.RosterAPI
	session   ports.Session
	presenter ports.Presenter
	log       zerolog.Logger

	options []string
}

func NewRosterService(api ports.RosterAPI, session ports.Session, presenter ports.Presenter, log zerolog.Logger) *RosterService {
	return &RosterService{api: api, session: session, presenter: presenter, log: log}
}

// Refresh fetches all activities and re-renders. On success the activity
// option set is repopulated in response order; on failure a single
// failure notice replaces the listing and the previous option set is left
// as it was.
func (s *RosterService) Refresh(ctx context.Context) {
	activities, err := s.api.Activities(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("activities fetch failed")
		metrics.RefreshesTotal.WithLabelValues("failed").Inc()
		s.presenter.ShowLoadFailure(loadFailureNotice)
		return
	}

	canMutate := domain.CanMutate(s.session.Current())
	views := make([]domain.ActivityView, 0, len(activities))
	names := make([]string, 0, len(activities))
	for _, a := range activities {
		views = append(views, domain.NewActivityView(a, canMutate))
		names = append(names, a.Name)
	}

	s.options = names
	metrics.RefreshesTotal.WithLabelValues("ok").Inc()
	s.presenter.ShowActivities(views)
}

// Options returns the activity names offered for selection, in the order
// of the last successful fetch.
func (s *RosterService) Options() []string {
	return s.options
}

// HasOption reports whether name was present in the last successful
// fetch.
func (s *RosterService) HasOption(name string) bool {
	for _, n := range s.options {
		if n == name {
			return true
		}
	}
	return false
}
