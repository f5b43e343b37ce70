package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeListValue(t *testing.T) {
	v, err := BadgeList{"speed_gecko", "on_fire"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["speed_gecko","on_fire"]`, v)

	v, err = BadgeList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "nil list encodes as an empty array, not null")
}

func TestBadgeListScan(t *testing.T) {
	var b BadgeList
	require.NoError(t, b.Scan(`["tech_brain"]`))
	assert.True(t, b.Contains("tech_brain"))
	assert.False(t, b.Contains("on_fire"))

	var fromBytes BadgeList
	require.NoError(t, fromBytes.Scan([]byte(`[]`)))
	assert.Empty(t, fromBytes)

	var fromNil BadgeList
	require.NoError(t, fromNil.Scan(nil))
	assert.NotNil(t, fromNil)

	var bad BadgeList
	assert.Error(t, bad.Scan(42))
}

func TestSeedRosterBadgesKnown(t *testing.T) {
	for _, student := range SeedRoster() {
		for _, badge := range student.Badges {
			_, ok := BadgeCatalog[badge]
			assert.True(t, ok, "seed badge %s for %s must be in the catalog", badge, student.Username)
		}
	}
}

func TestSubmissionValidate(t *testing.T) {
	sub := Submission{
		ID:               "abc",
		Student:          "student1",
		Semester:         Semester11,
		Week:             3,
		StudyDescription: "Recursion drills",
		Status:           StatusOnTime,
	}
	assert.NoError(t, sub.Validate())

	sub.Week = 11
	assert.Error(t, sub.Validate(), "week outside 1..10 must fail")

	sub.Week = 3
	sub.Semester = "3.1"
	assert.Error(t, sub.Validate(), "semester outside the enumeration must fail")
}
