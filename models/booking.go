package models

// BookingRequest carries one client booking attempt against a slot.
type BookingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Date     string `json:"date"` // "2006-01-02"
	Time     string `json:"time"` // "15:04"
	TimeZone string `json:"timeZone"`
	SlotID   string `json:"slotId"`
}

// BookingResponse is returned to the client on a successful booking.
type BookingResponse struct {
	Message   string `json:"message"`
	EventID   string `json:"eventId"`
	EventLink string `json:"eventLink"`
	Slot      *Slot  `json:"slot"`
}
