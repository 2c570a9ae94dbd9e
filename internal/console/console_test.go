package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mergington/roster-console/internal/core/domain"
	"github.com/mergington/roster-console/internal/core/ports"
	"github.com/mergington/roster-console/internal/core/service"
	"github.com/mergington/roster-console/internal/infrastructure/tokenstore"
)

// fakeAPI is a canned backend for console-level scenarios: one activity,
// one known faculty login.
type fakeAPI struct {
	signupCalls     int
	unregisterCalls int
	loginCalls      int
}

func (f *fakeAPI) Activities(context.Context) ([]domain.Activity, error) {
	return []domain.Activity{
		{Name: "Chess Club", Description: "d", Schedule: "s", MaxParticipants: 2, Participants: []string{"a@x.com"}},
	}, nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*ports.LoginResult, error) {
	f.loginCalls++
	if username == "prof1" && password == "x" {
		return &ports.LoginResult{
			Token:    "t1",
			Identity: domain.Identity{Username: "prof1", Role: domain.RoleFaculty},
		}, nil
	}
	return nil, &domain.APIError{Status: 401, Detail: "Invalid username or password"}
}

func (f *fakeAPI) Logout(context.Context) error { return nil }

func (f *fakeAPI) Me(context.Context) (*domain.Identity, error) {
	return nil, domain.ErrSessionInvalid
}

func (f *fakeAPI) Signup(context.Context, string, string) (string, error) {
	f.signupCalls++
	return "Signed up", nil
}

func (f *fakeAPI) Unregister(context.Context, string, string) (string, error) {
	f.unregisterCalls++
	return "Removed", nil
}

func newTestConsole(t *testing.T) (*Console, *fakeAPI, *MessageBoard, *bytes.Buffer) {
	t.Helper()
	api := &fakeAPI{}
	store := tokenstore.NewMemory()
	log := zerolog.Nop()

	var out bytes.Buffer
	board := NewMessageBoard(&out, time.Second)
	presenter := NewTerminalPresenter(&out)

	session := service.NewSessionService(api, store, log)
	roster := service.NewRosterService(api, session, presenter, log)
	mutations := service.NewMutationService(api, roster, board, log)

	c := New(session, roster, mutations, board, strings.NewReader(""), &out, log)
	return c, api, board, &out
}

func TestConsole_LoginScenario(t *testing.T) {
	ctx := context.Background()
	c, _, board, out := newTestConsole(t)

	c.roster.Refresh(ctx)
	c.Dispatch(ctx, "login prof1 x")

	if msg, kind := board.Current(); msg != "Logged in as prof1." || kind != "success" {
		t.Fatalf("unexpected message %q/%q", msg, kind)
	}
	if !domain.CanMutate(c.session.Current()) {
		t.Fatalf("capability must be true after faculty login")
	}
	if !strings.Contains(out.String(), "Logged in as prof1 (faculty).") {
		t.Fatalf("auth status not rendered:\n%s", out.String())
	}
	// The post-login refresh renders removal affordances.
	if !strings.Contains(out.String(), "(unregister available)") {
		t.Fatalf("mutation UI not visible after login:\n%s", out.String())
	}
}

func TestConsole_LoginFailureShowsDetail(t *testing.T) {
	ctx := context.Background()
	c, _, board, _ := newTestConsole(t)

	c.Dispatch(ctx, "login prof1 wrong")

	if msg, kind := board.Current(); msg != "Invalid username or password" || kind != "error" {
		t.Fatalf("unexpected message %q/%q", msg, kind)
	}
	if c.session.Current() != nil {
		t.Fatalf("failed login must not set an identity")
	}
}

func TestConsole_MutationCommandsHiddenWhenLoggedOut(t *testing.T) {
	ctx := context.Background()
	c, api, _, out := newTestConsole(t)

	c.roster.Refresh(ctx)
	c.Dispatch(ctx, "signup new@x.com Chess Club")

	if api.signupCalls != 0 {
		t.Fatalf("signup must not reach the API while logged out")
	}
	if !strings.Contains(out.String(), "Only admin/faculty can modify registrations.") {
		t.Fatalf("permission note not shown:\n%s", out.String())
	}
}

func TestConsole_SignupUsesOptionSet(t *testing.T) {
	ctx := context.Background()
	c, api, _, out := newTestConsole(t)

	c.roster.Refresh(ctx)
	c.Dispatch(ctx, "login prof1 x")
	c.Dispatch(ctx, "signup new@x.com Math Club")

	if api.signupCalls != 0 {
		t.Fatalf("unknown activity must not reach the API")
	}
	if !strings.Contains(out.String(), `unknown activity "Math Club"`) {
		t.Fatalf("missing unknown-activity notice:\n%s", out.String())
	}

	c.Dispatch(ctx, "signup new@x.com Chess Club")
	if api.signupCalls != 1 {
		t.Fatalf("expected one signup call, got %d", api.signupCalls)
	}
}

func TestConsole_LogoutScenario(t *testing.T) {
	ctx := context.Background()
	c, _, board, out := newTestConsole(t)

	c.roster.Refresh(ctx)
	c.Dispatch(ctx, "login prof1 x")
	c.Dispatch(ctx, "logout")

	if msg, kind := board.Current(); msg != "Logged out." || kind != "info" {
		t.Fatalf("unexpected message %q/%q", msg, kind)
	}
	if c.session.Current() != nil {
		t.Fatalf("expected logged-out session")
	}
	if !strings.Contains(out.String(), "Not logged in. Only admin/faculty can modify registrations.") {
		t.Fatalf("logged-out status not rendered:\n%s", out.String())
	}
}

func TestConsole_UnknownCommand(t *testing.T) {
	ctx := context.Background()
	c, _, _, out := newTestConsole(t)

	if !c.Dispatch(ctx, "frobnicate") {
		t.Fatalf("unknown command must not stop the loop")
	}
	if !strings.Contains(out.String(), `unknown command "frobnicate"`) {
		t.Fatalf("missing unknown-command notice:\n%s", out.String())
	}
	if c.Dispatch(ctx, "quit") {
		t.Fatalf("quit must stop the loop")
	}
}
