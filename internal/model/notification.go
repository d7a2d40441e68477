package model

type NotificationKind string

const (
	NotificationClinic       NotificationKind = "clinic"
	NotificationConfirmation NotificationKind = "confirmation"
)

// NotificationLink is an outbound hand-off to a messaging service. Opening
// it is left to the caller; delivery is never confirmed.
type NotificationLink struct {
	Kind      NotificationKind `json:"kind"`
	Recipient string           `json:"recipient"`
	URL       string           `json:"url"`
}
