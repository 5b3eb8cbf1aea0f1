// Package identity resolves organizer credentials and centralises the
// role-permission rules both the client core and the API enforce.
package identity

// The two fixed organizer identities. Ahmed audits payments and can never
// edit records; any other organizer is the sole editor of academic data.
const (
	OrganizerAhmed   = "Ahmed"
	OrganizerMohamed = "Mohamed"
)

// Resolver maps a credential pair to an organizer identity.
type Resolver interface {
	Resolve(email, password string) (name string, ok bool)
}

// AllowList is the fixed credential table the portal ships with.
type AllowList struct {
	entries map[credential]string
}

type credential struct {
	email    string
	password string
}

// NewAllowList builds the production allow-list.
func NewAllowList() *AllowList {
	return &AllowList{entries: map[credential]string{
		{"1", "1"}: OrganizerAhmed,
		{"2", "2"}: OrganizerMohamed,
	}}
}

// Resolve returns the organizer identity for a credential pair, rejecting
// anything outside the allow-list.
func (a *AllowList) Resolve(email, password string) (string, bool) {
	name, ok := a.entries[credential{email, password}]
	return name, ok
}

// CanEditRecords reports whether an organizer may edit student identity
// fields, photos and course tables. Ahmed is respond-only.
func CanEditRecords(organizerName string) bool {
	return organizerName != "" && organizerName != OrganizerAhmed
}

// CanRespond reports whether an organizer may respond to payment requests.
func CanRespond(organizerName string) bool {
	return organizerName == OrganizerAhmed
}

// CanRequestPayment reports whether the actor may send a payment request:
// authenticated students only.
func CanRequestPayment(authenticated bool, organizerName string) bool {
	return authenticated && organizerName == ""
}

// CanSeeNotifications reports whether the actor sees the notifications
// entry: students and the auditing organizer.
func CanSeeNotifications(authenticated bool, organizerName string) bool {
	return authenticated && (organizerName == OrganizerAhmed || organizerName == "")
}

// CanConfirmPayment reports whether the actor may confirm a payment:
// students only; the response-present check happens per notification.
func CanConfirmPayment(organizerName string) bool {
	return organizerName == ""
}
