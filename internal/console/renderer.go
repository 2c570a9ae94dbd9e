package console

import (
	"fmt"
	"io"

	"github.com/mergington/roster-console/internal/core/domain"
)

// TerminalPresenter writes activity cards as plain text. Each render
// replaces the previous listing conceptually; in a scrolling terminal
// that means printing a fresh block.
type TerminalPresenter struct {
	out io.Writer
}

func NewTerminalPresenter(out io.Writer) *TerminalPresenter {
	return &TerminalPresenter{out: out}
}

func (p *TerminalPresenter) ShowActivities(views []domain.ActivityView) {
	fmt.Fprintln(p.out)
	for _, v := range views {
		fmt.Fprintf(p.out, "%s\n", v.Name)
		fmt.Fprintf(p.out, "  %s\n", v.Description)
		fmt.Fprintf(p.out, "  Schedule: %s\n", v.Schedule)
		fmt.Fprintf(p.out, "  Availability: %d spots left\n", v.SpotsLeft)
		if len(v.Participants) == 0 {
			fmt.Fprintln(p.out, "  No participants yet")
			continue
		}
		fmt.Fprintln(p.out, "  Participants:")
		for _, row := range v.Participants {
			if row.CanRemove {
				fmt.Fprintf(p.out, "    - %s  (unregister available)\n", row.Email)
			} else {
				fmt.Fprintf(p.out, "    - %s\n", row.Email)
			}
		}
	}
}

func (p *TerminalPresenter) ShowLoadFailure(notice string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, notice)
}
