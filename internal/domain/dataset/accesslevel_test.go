package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetAccessLevel_Ordering(t *testing.T) {
	assert.True(t, AccessLevelOwner.AtLeast(AccessLevelReader))
	assert.True(t, AccessLevelReader.AtLeast(AccessLevelDiscoverer))
	assert.True(t, AccessLevelDiscoverer.AtLeast(AccessLevelNoAccess))
	assert.False(t, AccessLevelNoAccess.AtLeast(AccessLevelDiscoverer))
	assert.False(t, AccessLevelReader.AtLeast(AccessLevelOwner))
}

func TestDatasetAccessLevel_Permits(t *testing.T) {
	allActions := []SamAction{
		SamActionCreateMetadata,
		SamActionReadAnyMetadata,
		SamActionUpdateAnyMetadata,
		SamActionDeleteAnyMetadata,
	}

	for _, action := range allActions {
		assert.True(t, AccessLevelOwner.Permits(action), "owner should permit %s", action)
	}

	assert.True(t, AccessLevelReader.Permits(SamActionReadAnyMetadata))
	assert.False(t, AccessLevelReader.Permits(SamActionCreateMetadata))
	assert.False(t, AccessLevelReader.Permits(SamActionUpdateAnyMetadata))
	assert.False(t, AccessLevelReader.Permits(SamActionDeleteAnyMetadata))

	for _, action := range allActions {
		assert.False(t, AccessLevelDiscoverer.Permits(action), "discoverer should not permit %s", action)
		assert.False(t, AccessLevelNoAccess.Permits(action), "no_access should not permit %s", action)
	}
}

func TestHighestLevelFromRoles(t *testing.T) {
	roleMap := map[string]DatasetAccessLevel{
		"steward":    AccessLevelOwner,
		"reader":     AccessLevelReader,
		"discoverer": AccessLevelDiscoverer,
	}

	tests := []struct {
		name  string
		roles []string
		want  DatasetAccessLevel
	}{
		{name: "empty role set", roles: nil, want: AccessLevelNoAccess},
		{name: "entirely unrecognized roles", roles: []string{"bogus", "other"}, want: AccessLevelNoAccess},
		{name: "single reader role", roles: []string{"reader"}, want: AccessLevelReader},
		{name: "highest wins", roles: []string{"discoverer", "steward", "reader"}, want: AccessLevelOwner},
		{name: "unrecognized roles ignored", roles: []string{"bogus", "reader"}, want: AccessLevelReader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighestLevelFromRoles(tt.roles, roleMap))
		})
	}
}

func TestParseDatasetAccessLevel(t *testing.T) {
	level, err := ParseDatasetAccessLevel("owner")
	assert.NoError(t, err)
	assert.Equal(t, AccessLevelOwner, level)

	_, err = ParseDatasetAccessLevel("superuser")
	assert.Error(t, err)
}
