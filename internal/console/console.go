package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mergington/roster-console/internal/core/domain"
	"github.com/mergington/roster-console/internal/core/service"
)

const (
	loggedOutStatus = "Not logged in. Only admin/faculty can modify registrations."
	permissionNote  = "Only admin/faculty can modify registrations."
)

// Console wires the session, roster, and mutation services to a line
// based command loop. Every identity change (startup resolution, login,
// logout) triggers a full roster refresh so mutation affordances always
// match the new capability.
type Console struct {
	session   *service.SessionService
	roster    *service.RosterService
	mutations *service.MutationService
	board     *MessageBoard
	in        io.Reader
	out       io.Writer
	log       zerolog.Logger
}

func New(session *service.SessionService, roster *service.RosterService, mutations *service.MutationService, board *MessageBoard, in io.Reader, out io.Writer, log zerolog.Logger) *Console {
	return &Console{
		session:   session,
		roster:    roster,
		mutations: mutations,
		board:     board,
		in:        in,
		out:       out,
		log:       log,
	}
}

// Run resolves the stored session, renders the roster, then reads
// commands until quit or EOF.
func (c *Console) Run(ctx context.Context) error {
	c.session.Resolve(ctx)
	c.printAuthStatus()
	c.roster.Refresh(ctx)

	scanner := bufio.NewScanner(c.in)
	fmt.Fprint(c.out, "> ")
	for scanner.Scan() {
		if !c.Dispatch(ctx, scanner.Text()) {
			return nil
		}
		fmt.Fprint(c.out, "> ")
	}
	return scanner.Err()
}

// Dispatch executes one command line. It returns false when the loop
// should stop. Action failures never propagate: each handler translates
// its own failures into a message and the loop keeps going.
func (c *Console) Dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case "quit", "exit":
		return false
	case "help":
		c.printHelp()
	case "list", "refresh":
		c.roster.Refresh(ctx)
	case "login":
		c.handleLogin(ctx, fields[1:])
	case "logout":
		c.handleLogout(ctx)
	case "signup":
		c.handleMutation(ctx, fields[1:], c.mutations.Signup)
	case "unregister":
		c.handleMutation(ctx, fields[1:], c.mutations.Unregister)
	default:
		fmt.Fprintf(c.out, "unknown command %q (try help)\n", fields[0])
	}
	return true
}

func (c *Console) handleLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "usage: login <username> <password>")
		return
	}

	identity, err := c.session.Login(ctx, args[0], args[1])
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			detail := apiErr.Detail
			if detail == "" {
				detail = "Login failed"
			}
			c.board.Error(detail)
		} else {
			c.board.Error("Login request failed. Please try again.")
		}
		return
	}

	c.board.Success(fmt.Sprintf("Logged in as %s.", identity.Username))
	c.printAuthStatus()
	c.roster.Refresh(ctx)
}

func (c *Console) handleLogout(ctx context.Context) {
	c.session.Logout(ctx)
	c.board.Info("Logged out.")
	c.printAuthStatus()
	c.roster.Refresh(ctx)
}

// handleMutation guards the mutation commands the way the page hides its
// form: without the capability the command is not offered at all. The
// server still enforces permissions on its side.
func (c *Console) handleMutation(ctx context.Context, args []string, action func(context.Context, string, string)) {
	if !domain.CanMutate(c.session.Current()) {
		fmt.Fprintln(c.out, permissionNote)
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(c.out, "usage: signup|unregister <email> <activity name>")
		return
	}

	email := args[0]
	activity := strings.Join(args[1:], " ")
	if !c.roster.HasOption(activity) {
		fmt.Fprintf(c.out, "unknown activity %q (run list to see options)\n", activity)
		return
	}
	action(ctx, email, activity)
}

func (c *Console) printAuthStatus() {
	identity := c.session.Current()
	if identity == nil {
		fmt.Fprintln(c.out, loggedOutStatus)
		return
	}
	fmt.Fprintf(c.out, "Logged in as %s (%s).\n", identity.Username, identity.Role)
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `commands:
  list                               refresh and show all activities
  login <username> <password>        authenticate
  logout                             end the session
  signup <email> <activity name>     register a student (staff only)
  unregister <email> <activity name> remove a student (staff only)
  quit`)
}
