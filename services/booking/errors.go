package booking

import "fmt"

// Error codes surfaced to the HTTP layer.
const (
	CodeBadRequest = "badRequest"
	CodeNotFound   = "notFound"
	CodeSlotTaken  = "slotTaken"
	CodeInternal   = "internal"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBadRequest(msg string) error {
	return &BookingError{Code: CodeBadRequest, Message: msg}
}

func NewNotFound(msg string) error {
	return &BookingError{Code: CodeNotFound, Message: msg}
}

func NewSlotTaken(msg string) error {
	return &BookingError{Code: CodeSlotTaken, Message: msg}
}

func NewInternal(msg string) error {
	return &BookingError{Code: CodeInternal, Message: msg}
}
