package game

import (
	"errors"
	"fmt"
)

// RejectKind classifies why an action was refused. Every rejection leaves the
// game state untouched; none of them is fatal to the game.
type RejectKind string

const (
	KindValidation    RejectKind = "validation"
	KindNotFound      RejectKind = "not_found"
	KindAuthorization RejectKind = "authorization"
	KindIllegalState  RejectKind = "illegal_state"
	KindRuleViolation RejectKind = "rule_violation"
)

// Rejection is the structured refusal returned for any invalid action.
type Rejection struct {
	Kind   RejectKind `json:"reason"`
	Detail string     `json:"detail"`
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Detail)
}

func reject(kind RejectKind, format string, args ...any) error {
	return &Rejection{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the rejection kind from an error, defaulting to
// illegal_state for errors that did not originate in the engine.
func KindOf(err error) RejectKind {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Kind
	}
	return KindIllegalState
}
