package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentportal/portal-api/internal/models"
)

func TestComputeGPAEmpty(t *testing.T) {
	assert.Equal(t, 0.0, ComputeGPA(nil))
	assert.Equal(t, 0.0, ComputeGPA([]models.Course{}))
}

func TestComputeGPAWeighted(t *testing.T) {
	courses := []models.Course{
		{Name: "Calculus", Grade: "A", Credits: 3},
		{Name: "Physics", Grade: "B", Credits: 3},
	}
	assert.Equal(t, 3.5, ComputeGPA(courses))
}

func TestComputeGPAUnevenWeights(t *testing.T) {
	courses := []models.Course{
		{Grade: "A", Credits: 4},
		{Grade: "C", Credits: 2},
	}
	// (4.0*4 + 2.0*2) / 6 = 3.33
	assert.Equal(t, 3.33, ComputeGPA(courses))
}

func TestComputeGPASkipsMalformedEntries(t *testing.T) {
	courses := []models.Course{
		{Grade: "Z", Credits: 3},
		{Grade: "A", Credits: 0},
	}
	assert.Equal(t, 0.0, ComputeGPA(courses))

	courses = append(courses, models.Course{Grade: "A-", Credits: 3})
	assert.Equal(t, 3.7, ComputeGPA(courses))
}

func TestComputeGPANegativeCredits(t *testing.T) {
	courses := []models.Course{
		{Grade: "A", Credits: -3},
		{Grade: "B", Credits: 3},
	}
	assert.Equal(t, 3.0, ComputeGPA(courses))
}

func TestComputeQuickGPAIgnoresCredits(t *testing.T) {
	// Unweighted: (4.0 + 2.0) / 2, even though the weighted result differs.
	assert.Equal(t, 3.0, ComputeQuickGPA([]string{"A", "C"}))
}

func TestComputeQuickGPASkipsUnrecognized(t *testing.T) {
	assert.Equal(t, 0.0, ComputeQuickGPA(nil))
	assert.Equal(t, 0.0, ComputeQuickGPA([]string{"", "Z"}))
	assert.Equal(t, 3.7, ComputeQuickGPA([]string{"", "A-", "Z"}))
}

func TestGradePoint(t *testing.T) {
	gp, ok := GradePoint("A-")
	require.True(t, ok)
	assert.Equal(t, 3.7, gp)

	_, ok = GradePoint("Z")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "3.50", Format(3.5))
	assert.Equal(t, "3.33", Format(3.333333))
}
