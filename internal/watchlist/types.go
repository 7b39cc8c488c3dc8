package watchlist

import (
	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

// State is the membership lifecycle for one (user, gameTitle) pair.
// Transitions happen only through explicit Manager calls, never as a side
// effect of rendering.
type State string

const (
	StateIdle      State = "IDLE"
	StateChecking  State = "CHECKING"
	StateMember    State = "MEMBER"
	StateNonMember State = "NON_MEMBER"
	StateAdding    State = "ADDING"
	StateRemoving  State = "REMOVING"
)

// Outcome classifies the result of a toggle so callers can pick tone:
// informational outcomes are not errors.
type Outcome string

const (
	OutcomeAdded        Outcome = "ADDED"
	OutcomeRemoved      Outcome = "REMOVED"
	OutcomeAlready      Outcome = "ALREADY_MEMBER"
	OutcomeAuthRequired Outcome = "AUTH_REQUIRED"
	OutcomeBusy         Outcome = "BUSY"
	OutcomeFailed       Outcome = "FAILED"
)

// Informational reports whether the outcome should be surfaced without alarm.
func (o Outcome) Informational() bool {
	switch o {
	case OutcomeAdded, OutcomeRemoved, OutcomeAlready:
		return true
	}
	return false
}

// ToggleResult is what a toggle hands back to the presentation layer. Kind is
// set on OutcomeFailed so callers can branch without matching message strings;
// informational outcomes carry no kind.
type ToggleResult struct {
	Outcome Outcome
	Member  bool
	Kind    domain.FailKind
	Message string
}

// Snapshot is the denormalized payload captured at add-time.
type Snapshot struct {
	GameTitle   string
	GameCover   string
	Genre       string
	ReviewID    string
	Rating      float64
	Price       float64
	ReleaseYear int
	Platforms   []string
}

// SnapshotOfGame captures the add-time snapshot from a game entry.
func SnapshotOfGame(g domain.Game) Snapshot {
	return Snapshot{
		GameTitle:   g.Title,
		GameCover:   g.CoverImage,
		Genre:       g.PrimaryGenre(),
		Rating:      g.Rating,
		Price:       g.Price,
		ReleaseYear: g.ReleaseYear,
		Platforms:   g.Platforms,
	}
}

// SnapshotOfReview captures the add-time snapshot from a review entry.
func SnapshotOfReview(r domain.Review) Snapshot {
	return Snapshot{
		GameTitle: r.GameTitle,
		GameCover: r.GameCover,
		Genre:     r.Genre,
		ReviewID:  r.ID,
		Rating:    r.Rating,
	}
}
