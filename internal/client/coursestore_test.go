package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentportal/portal-api/internal/client/localstore"
	"github.com/studentportal/portal-api/internal/models"
)

func TestCourseStoreAbsentCodeIsEmpty(t *testing.T) {
	store, _ := tempStore(t)
	cs := NewCourseStore(store)

	courses := cs.Get("nobody")
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestCourseStorePersistsPerStudent(t *testing.T) {
	store, path := tempStore(t)
	cs := NewCourseStore(store)

	require.NoError(t, cs.Set("a", []models.Course{{Code: "CS101", Grade: "A"}}))
	require.NoError(t, cs.Set("b", []models.Course{{Code: "MA102", Grade: "B"}}))

	reopened, err := localstore.Open(path)
	require.NoError(t, err)
	fresh := NewCourseStore(reopened)
	assert.Equal(t, "CS101", fresh.Get("a")[0].Code)
	assert.Equal(t, "MA102", fresh.Get("b")[0].Code)
}

func TestLoadFromServerOverwritesWithEmpty(t *testing.T) {
	store, _ := tempStore(t)
	cs := NewCourseStore(store)

	require.NoError(t, cs.Set("a", []models.Course{{Code: "CS101", Grade: "A"}}))
	require.NoError(t, cs.LoadFromServer("a", []models.Course{}))
	assert.Empty(t, cs.Get("a"))
}
