package client

import (
	"github.com/studentportal/portal-api/internal/client/localstore"
	"github.com/studentportal/portal-api/internal/models"
)

// Course data persists under a single key as a map of student code to
// ordered course list, matching how the legacy client stored it.
const keyStudentCourses = "studentCourses"

// CourseStore is the client-side cache of course lists, keyed by student
// code. It is the single writer of persisted course data; table views read
// and write through it, never the store directly.
type CourseStore struct {
	store *localstore.Store
}

// NewCourseStore wraps the local store.
func NewCourseStore(store *localstore.Store) *CourseStore {
	return &CourseStore{store: store}
}

// Get returns the stored course list for a student, or an empty list when
// none was stored. Absence is a valid unset state, not an error.
func (cs *CourseStore) Get(code string) []models.Course {
	all := cs.load()
	courses, ok := all[code]
	if !ok {
		return []models.Course{}
	}
	return courses
}

// Set replaces the stored course list for a student. The store persists
// before any caller-visible state changes, so a failed write leaves the
// previous list intact.
func (cs *CourseStore) Set(code string, courses []models.Course) error {
	all := cs.load()
	if courses == nil {
		courses = []models.Course{}
	}
	all[code] = courses
	return cs.store.Set(keyStudentCourses, all)
}

// LoadFromServer overwrites the stored list with the server's copy
// unconditionally, including with an empty list.
func (cs *CourseStore) LoadFromServer(code string, courses []models.Course) error {
	return cs.Set(code, courses)
}

func (cs *CourseStore) load() map[string][]models.Course {
	all := make(map[string][]models.Course)
	_, _ = cs.store.Get(keyStudentCourses, &all)
	return all
}
