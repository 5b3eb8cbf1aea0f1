package client

import (
	"github.com/studentportal/portal-api/internal/client/localstore"
	"github.com/studentportal/portal-api/internal/identity"
)

// Local store keys. These names are the persisted contract; changing them
// orphans existing state files.
const (
	keyIsAuth        = "isAuth"
	keyOrganizerName = "organizerName"
	keyStudentCode   = "studentCode"
	keyToken         = "token"
)

// Session is the client's authentication state, restored from the local
// store at startup and persisted on every change.
type Session struct {
	store *localstore.Store

	authenticated bool
	organizerName string
	studentCode   string
	token         string
}

// RestoreSession loads whatever state the store holds.
func RestoreSession(store *localstore.Store) *Session {
	s := &Session{store: store}
	_, _ = store.Get(keyIsAuth, &s.authenticated)
	s.organizerName = store.GetString(keyOrganizerName)
	s.studentCode = store.GetString(keyStudentCode)
	s.token = store.GetString(keyToken)
	return s
}

// Authenticated reports whether anyone is signed in.
func (s *Session) Authenticated() bool { return s.authenticated }

// OrganizerName returns the signed-in organizer identity, or "" for
// students.
func (s *Session) OrganizerName() string { return s.organizerName }

// StudentCode returns the signed-in student's code, or "" for organizers.
func (s *Session) StudentCode() string { return s.studentCode }

// Token returns the current access token.
func (s *Session) Token() string { return s.token }

// IsOrganizer reports whether the session belongs to an organizer.
func (s *Session) IsOrganizer() bool { return s.organizerName != "" }

// CanEditRecords reports whether this session may edit student data.
func (s *Session) CanEditRecords() bool {
	return s.authenticated && identity.CanEditRecords(s.organizerName)
}

// CanRespond reports whether this session may respond to payment requests.
func (s *Session) CanRespond() bool {
	return s.authenticated && identity.CanRespond(s.organizerName)
}

// CanRequestPayment reports whether this session may send a payment request.
func (s *Session) CanRequestPayment() bool {
	return identity.CanRequestPayment(s.authenticated, s.organizerName)
}

// CanSeeNotifications reports whether this session has a notifications view.
func (s *Session) CanSeeNotifications() bool {
	return identity.CanSeeNotifications(s.authenticated, s.organizerName)
}

// CanConfirmPayment reports whether this session may confirm payments.
func (s *Session) CanConfirmPayment() bool {
	return s.authenticated && identity.CanConfirmPayment(s.organizerName)
}

// SignInStudent records a student login. Persisted before memory changes.
func (s *Session) SignInStudent(code, token string) error {
	if err := s.store.Set(keyIsAuth, true); err != nil {
		return err
	}
	if err := s.store.Set(keyStudentCode, code); err != nil {
		return err
	}
	if err := s.store.Set(keyToken, token); err != nil {
		return err
	}
	if err := s.store.Delete(keyOrganizerName); err != nil {
		return err
	}
	s.authenticated = true
	s.organizerName = ""
	s.studentCode = code
	s.token = token
	return nil
}

// SignInOrganizer records an organizer login.
func (s *Session) SignInOrganizer(name, token string) error {
	if err := s.store.Set(keyIsAuth, true); err != nil {
		return err
	}
	if err := s.store.Set(keyOrganizerName, name); err != nil {
		return err
	}
	if err := s.store.Set(keyToken, token); err != nil {
		return err
	}
	if err := s.store.Delete(keyStudentCode); err != nil {
		return err
	}
	s.authenticated = true
	s.organizerName = name
	s.studentCode = ""
	s.token = token
	return nil
}

// Logout clears the auth flag, organizer identity, student code and token
// together. A partially logged-out session is never observable: the store
// removes all keys in one write.
func (s *Session) Logout() error {
	if err := s.store.Delete(keyIsAuth, keyOrganizerName, keyStudentCode, keyToken); err != nil {
		return err
	}
	s.authenticated = false
	s.organizerName = ""
	s.studentCode = ""
	s.token = ""
	return nil
}
