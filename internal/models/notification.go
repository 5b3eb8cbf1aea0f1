package models

// NotificationStatus is derived purely from (response present?, paid?).
type NotificationStatus string

const (
	// NotificationWaiting means the request was created and no organizer
	// has responded yet.
	NotificationWaiting NotificationStatus = "WAITING"
	// NotificationResponded means an organizer quoted hours and price.
	NotificationResponded NotificationStatus = "RESPONDED"
	// NotificationPaid means the student confirmed the payment.
	NotificationPaid NotificationStatus = "PAID"
)

// NotificationResponse is the organizer's quote on a payment request. Total
// is kept as a two-decimal string, matching the wire format of the legacy
// client ("50.00").
type NotificationResponse struct {
	Hours float64 `json:"hours"`
	Price float64 `json:"price"`
	Total string  `json:"total"`
}

// Notification is a payment-request record exchanged between a student and
// an organizer. The server assigns a stable ID; (studentCode, timestamp) is
// only a legacy display identity.
type Notification struct {
	ID          string                `db:"id" json:"id"`
	StudentCode string                `db:"student_code" json:"studentCode"`
	Message     string                `db:"message" json:"message"`
	Timestamp   string                `db:"timestamp" json:"timestamp"`
	Response    *NotificationResponse `json:"response,omitempty"`
	Paid        bool                  `db:"paid" json:"paid,omitempty"`
}

// Status derives the workflow state.
func (n Notification) Status() NotificationStatus {
	switch {
	case n.Paid:
		return NotificationPaid
	case n.Response != nil:
		return NotificationResponded
	default:
		return NotificationWaiting
	}
}
