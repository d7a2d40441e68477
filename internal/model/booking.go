package model

import (
	"time"
)

// BookingNumberBase is the number before the first booking; the first
// booking gets BookingNumberBase+1.
const BookingNumberBase = 1000

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses. Transitions between
// statuses are not restricted.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID            string        `json:"bookingId" db:"id"`
	BookingNumber int           `json:"bookingNumber" db:"booking_number"`
	Name          string        `json:"name" db:"name"`
	Mobile        string        `json:"mobile" db:"mobile"`
	Service       string        `json:"service" db:"service"`
	Date          string        `json:"date" db:"appointment_date"`
	Time          string        `json:"time" db:"time_slot"`
	Status        BookingStatus `json:"status" db:"status"`
	Timestamps
}

// BookingRequest is the raw appointment form.
type BookingRequest struct {
	Name    string `json:"name" form:"name"`
	Mobile  string `json:"mobile" form:"mobile"`
	Date    string `json:"date" form:"date"`
	Time    string `json:"time" form:"time"`
	Service string `json:"service" form:"service"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// BookingReceipt is returned to the visitor after a successful booking.
type BookingReceipt struct {
	Booking *Booking           `json:"booking"`
	Links   []NotificationLink `json:"links"`
}

// StatusChange is the result of an admin status update. Link is set only
// when the booking moved into confirmed.
type StatusChange struct {
	Booking        *Booking          `json:"booking"`
	PreviousStatus BookingStatus     `json:"previousStatus"`
	Link           *NotificationLink `json:"link,omitempty"`
}

type BookingEventType string

const (
	BookingEventCreated       BookingEventType = "booking.created"
	BookingEventStatusChanged BookingEventType = "booking.status_changed"
	BookingEventDeleted       BookingEventType = "booking.deleted"
)

// BookingEvent is published on the broker for every booking lifecycle change.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	Booking    *Booking         `json:"booking"`
	Previous   BookingStatus    `json:"previous,omitempty"`
	Message    string           `json:"message,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
