package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentportal/portal-api/internal/client/localstore"
	"github.com/studentportal/portal-api/internal/identity"
)

func tempStore(t *testing.T) (*localstore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := localstore.Open(path)
	require.NoError(t, err)
	return store, path
}

func TestSessionPersistsAcrossRestart(t *testing.T) {
	store, path := tempStore(t)
	session := RestoreSession(store)
	require.NoError(t, session.SignInStudent("20231234", "tok-1"))

	reopened, err := localstore.Open(path)
	require.NoError(t, err)
	restored := RestoreSession(reopened)

	assert.True(t, restored.Authenticated())
	assert.Equal(t, "20231234", restored.StudentCode())
	assert.Equal(t, "tok-1", restored.Token())
	assert.False(t, restored.IsOrganizer())
}

func TestSessionLogoutClearsEverything(t *testing.T) {
	store, path := tempStore(t)
	session := RestoreSession(store)
	require.NoError(t, session.SignInOrganizer(identity.OrganizerMohamed, "tok-2"))
	require.NoError(t, session.Logout())

	assert.False(t, session.Authenticated())
	assert.Empty(t, session.OrganizerName())
	assert.Empty(t, session.Token())

	reopened, err := localstore.Open(path)
	require.NoError(t, err)
	restored := RestoreSession(reopened)
	assert.False(t, restored.Authenticated())
	assert.Empty(t, restored.OrganizerName())
	assert.Empty(t, restored.StudentCode())
}

func TestSessionPermissions(t *testing.T) {
	store, _ := tempStore(t)

	ahmed := RestoreSession(store)
	require.NoError(t, ahmed.SignInOrganizer(identity.OrganizerAhmed, "t"))
	assert.False(t, ahmed.CanEditRecords(), "the auditing organizer can never edit")
	assert.True(t, ahmed.CanRespond())
	assert.False(t, ahmed.CanRequestPayment())

	require.NoError(t, ahmed.SignInOrganizer(identity.OrganizerMohamed, "t"))
	assert.True(t, ahmed.CanEditRecords())
	assert.False(t, ahmed.CanRespond())

	require.NoError(t, ahmed.SignInStudent("20231234", "t"))
	assert.False(t, ahmed.CanEditRecords())
	assert.False(t, ahmed.CanRespond())
	assert.True(t, ahmed.CanRequestPayment())
}

func TestSessionSwitchingRolesClearsCounterpart(t *testing.T) {
	store, _ := tempStore(t)
	session := RestoreSession(store)

	require.NoError(t, session.SignInStudent("20231234", "t1"))
	require.NoError(t, session.SignInOrganizer(identity.OrganizerAhmed, "t2"))
	assert.Empty(t, session.StudentCode())
	assert.Equal(t, identity.OrganizerAhmed, session.OrganizerName())
}
