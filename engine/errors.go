package engine

import "fmt"

// Kind enumerates the rule-violation categories. Every rejected action maps
// to exactly one Kind; none of them is fatal to a session.
type Kind string

const (
	KindWrongPhase        Kind = "wrong_phase"
	KindOutOfTurn         Kind = "out_of_turn"
	KindInvalidBidValue   Kind = "invalid_bid_value"
	KindNotBidWinner      Kind = "not_bid_winner"
	KindNotYetChosen      Kind = "not_yet_chosen"
	KindAlreadyRevealed   Kind = "already_revealed"
	KindRevealNotEligible Kind = "reveal_not_eligible"
	KindCardNotInHand     Kind = "card_not_in_hand"
	KindMustFollowSuit    Kind = "must_follow_suit"
	KindGameNotFound      Kind = "game_not_found"
	KindSeatUnavailable   Kind = "seat_unavailable"
	KindInvalidMode       Kind = "invalid_mode"
	KindBadRequest        Kind = "bad_request"
)

// Error is a rejected action. State is guaranteed unchanged when one is
// returned.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Is lets errors.Is match against a bare &Error{Kind: k}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of a rule error, or "" for other errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
