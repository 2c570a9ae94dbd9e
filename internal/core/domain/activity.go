package domain

// Activity is the server-owned description of one extracurricular
// activity, fetched fresh on every render cycle. Participants keep the
// server's order.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the remaining capacity.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// ParticipantRow is one rendered participant line. CanRemove marks the
// removal affordance and is fixed at render time from the capability in
// effect for that cycle.
type ParticipantRow struct {
	Email     string
	CanRemove bool
}

// ActivityView is the fully derived render state for one activity. It is
// recomputed in full on every fetch or mutation-triggered refresh and
// never cached across cycles.
type ActivityView struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []ParticipantRow
}

// NewActivityView derives the view for a single activity under the given
// mutation capability.
func NewActivityView(a Activity, canMutate bool) ActivityView {
	rows := make([]ParticipantRow, 0, len(a.Participants))
	for _, email := range a.Participants {
		rows = append(rows, ParticipantRow{Email: email, CanRemove: canMutate})
	}
	return ActivityView{
		Name:         a.Name,
		Description:  a.Description,
		Schedule:     a.Schedule,
		SpotsLeft:    a.SpotsLeft(),
		Participants: rows,
	}
}
