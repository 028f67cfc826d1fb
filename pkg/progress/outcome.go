// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progress

// OutcomeKind classifies the result of a guess or reply.
type OutcomeKind int

const (
	// OutcomePending means the level is still in progress. After SubmitGuess
	// it tells the caller to fetch a character reply and call ApplyReply.
	OutcomePending OutcomeKind = iota
	// OutcomeRejected means the input was refused and nothing was stored.
	OutcomeRejected
	// OutcomeWon means the win condition was satisfied.
	OutcomeWon
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePending:
		return "pending"
	case OutcomeRejected:
		return "rejected"
	case OutcomeWon:
		return "won"
	}
	return "unknown"
}

// Outcome is returned by SubmitGuess and ApplyReply.
type Outcome struct {
	Kind OutcomeKind
	// Reason is a player-facing message for OutcomeRejected.
	Reason string
	// AlreadyCompleted is set on OutcomeWon when the level had been completed
	// before this win, so no score was added.
	AlreadyCompleted bool
}

// Pending returns an in-progress outcome.
func Pending() Outcome { return Outcome{Kind: OutcomePending} }

// Rejected returns a rejection carrying a player-facing reason.
func Rejected(reason string) Outcome { return Outcome{Kind: OutcomeRejected, Reason: reason} }

// Won returns a win outcome.
func Won(alreadyCompleted bool) Outcome {
	return Outcome{Kind: OutcomeWon, AlreadyCompleted: alreadyCompleted}
}

// Fresh reports whether this outcome is a first-time completion.
func (o Outcome) Fresh() bool {
	return o.Kind == OutcomeWon && !o.AlreadyCompleted
}
