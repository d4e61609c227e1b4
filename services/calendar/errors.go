package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired means the stored refresh credential was rejected; the
	// calendar owner must re-authenticate out of band.
	ErrAuthExpired = errors.New("calendar credential expired or revoked")
	// ErrRemoteUnavailable wraps transport-level failures talking to the
	// remote calendar service.
	ErrRemoteUnavailable = errors.New("calendar service unavailable")
)

// ConflictError reports an existing confirmed event occupying the requested
// window.
type ConflictError struct {
	Summary string
	EventID string
	Start   string
	End     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"Horário conflitante! O período de %s até %s já está ocupado pelo evento: %q (ID: %s)",
		e.Start, e.End, e.Summary, e.EventID,
	)
}
