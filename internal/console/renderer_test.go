package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mergington/roster-console/internal/core/domain"
)

func TestTerminalPresenter_RendersActivityCard(t *testing.T) {
	var buf bytes.Buffer
	p := NewTerminalPresenter(&buf)

	p.ShowActivities([]domain.ActivityView{
		{
			Name:        "Chess Club",
			Description: "d",
			Schedule:    "s",
			SpotsLeft:   1,
			Participants: []domain.ParticipantRow{
				{Email: "a@x.com", CanRemove: true},
			},
		},
		{
			Name:      "Art Club",
			SpotsLeft: 5,
		},
	})

	out := buf.String()
	for _, want := range []string{
		"Chess Club",
		"Schedule: s",
		"Availability: 1 spots left",
		"a@x.com  (unregister available)",
		"No participants yet",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalPresenter_HidesRemovalWithoutCapability(t *testing.T) {
	var buf bytes.Buffer
	p := NewTerminalPresenter(&buf)

	p.ShowActivities([]domain.ActivityView{
		{
			Name:      "Chess Club",
			SpotsLeft: 1,
			Participants: []domain.ParticipantRow{
				{Email: "a@x.com", CanRemove: false},
			},
		},
	})

	if strings.Contains(buf.String(), "unregister available") {
		t.Fatalf("removal affordance rendered without capability:\n%s", buf.String())
	}
}

func TestTerminalPresenter_ShowLoadFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewTerminalPresenter(&buf)

	p.ShowLoadFailure("Failed to load activities. Please try again later.")

	if !strings.Contains(buf.String(), "Failed to load activities.") {
		t.Fatalf("failure notice missing:\n%s", buf.String())
	}
}
