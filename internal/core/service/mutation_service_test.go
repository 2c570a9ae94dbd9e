package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mergington/roster-console/internal/core/domain"
)

type stubNotifier struct {
	successes []string
	errors    []string
	infos     []string
}

func (n *stubNotifier) Success(text string) { n.successes = append(n.successes, text) }
func (n *stubNotifier) Error(text string)   { n.errors = append(n.errors, text) }
func (n *stubNotifier) Info(text string)    { n.infos = append(n.infos, text) }

type countingRefresher struct {
	calls int
}

func (r *countingRefresher) Refresh(context.Context) { r.calls++ }

func TestSignup_SuccessRefreshesOnce(t *testing.T) {
	api := &stubAPI{
		signupFn: func(_ context.Context, activity, email string) (string, error) {
			if activity != "Chess Club" || email != "new@x.com" {
				t.Fatalf("unexpected args %q %q", activity, email)
			}
			return "Signed up new@x.com for Chess Club", nil
		},
	}
	notifier := &stubNotifier{}
	refresher := &countingRefresher{}
	svc := NewMutationService(api, refresher, notifier, zerolog.Nop())

	svc.Signup(context.Background(), "new@x.com", "Chess Club")

	if refresher.calls != 1 {
		t.Fatalf("expected exactly one refresh, got %d", refresher.calls)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Signed up new@x.com for Chess Club" {
		t.Fatalf("unexpected success messages %v", notifier.successes)
	}
}

func TestSignup_ServerRejectionShowsDetailNoRefresh(t *testing.T) {
	api := &stubAPI{
		signupFn: func(context.Context, string, string) (string, error) {
			return "", &domain.APIError{Status: 400, Detail: "Student is already signed up"}
		},
	}
	notifier := &stubNotifier{}
	refresher := &countingRefresher{}
	svc := NewMutationService(api, refresher, notifier, zerolog.Nop())

	svc.Signup(context.Background(), "a@x.com", "Chess Club")

	if refresher.calls != 0 {
		t.Fatalf("failed signup must not refresh, got %d", refresher.calls)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Student is already signed up" {
		t.Fatalf("unexpected error messages %v", notifier.errors)
	}
}

func TestSignup_MissingDetailFallsBackToGeneric(t *testing.T) {
	api := &stubAPI{
		signupFn: func(context.Context, string, string) (string, error) {
			return "", &domain.APIError{Status: 502}
		},
	}
	notifier := &stubNotifier{}
	svc := NewMutationService(api, &countingRefresher{}, notifier, zerolog.Nop())

	svc.Signup(context.Background(), "a@x.com", "Chess Club")

	if len(notifier.errors) != 1 || notifier.errors[0] != "An error occurred" {
		t.Fatalf("unexpected error messages %v", notifier.errors)
	}
}

func TestSignup_TransportFailureShowsActionFallback(t *testing.T) {
	api := &stubAPI{
		signupFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("connection reset")
		},
	}
	notifier := &stubNotifier{}
	refresher := &countingRefresher{}
	svc := NewMutationService(api, refresher, notifier, zerolog.Nop())

	svc.Signup(context.Background(), "a@x.com", "Chess Club")

	if refresher.calls != 0 {
		t.Fatalf("transport failure must not refresh")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Failed to sign up. Please try again." {
		t.Fatalf("unexpected error messages %v", notifier.errors)
	}
}

func TestSignup_InvalidEmailSkipsNetwork(t *testing.T) {
	api := &stubAPI{}
	notifier := &stubNotifier{}
	svc := NewMutationService(api, &countingRefresher{}, notifier, zerolog.Nop())

	svc.Signup(context.Background(), "not-an-email", "Chess Club")

	if api.signupCalls != 0 {
		t.Fatalf("invalid input must not reach the server")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "A valid email address is required" {
		t.Fatalf("unexpected error messages %v", notifier.errors)
	}
}

func TestUnregister_SuccessShowsMessageAndRefreshes(t *testing.T) {
	api := &stubAPI{
		unregisterFn: func(_ context.Context, activity, email string) (string, error) {
			return "Removed", nil
		},
	}
	notifier := &stubNotifier{}
	refresher := &countingRefresher{}
	svc := NewMutationService(api, refresher, notifier, zerolog.Nop())

	svc.Unregister(context.Background(), "a@x.com", "Chess Club")

	if len(notifier.successes) != 1 || notifier.successes[0] != "Removed" {
		t.Fatalf("unexpected success messages %v", notifier.successes)
	}
	if refresher.calls != 1 {
		t.Fatalf("expected one refresh after unregister, got %d", refresher.calls)
	}
}

func TestUnregister_TransportFailureFallback(t *testing.T) {
	api := &stubAPI{
		unregisterFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("timeout")
		},
	}
	notifier := &stubNotifier{}
	svc := NewMutationService(api, &countingRefresher{}, notifier, zerolog.Nop())

	svc.Unregister(context.Background(), "a@x.com", "Chess Club")

	if len(notifier.errors) != 1 || notifier.errors[0] != "Failed to unregister. Please try again." {
		t.Fatalf("unexpected error messages %v", notifier.errors)
	}
}
