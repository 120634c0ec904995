// Package dataset provides the domain model for catalog entries: the dataset
// aggregate, the closed set of storage systems, and the capability-based
// access-control model.
package dataset

import "fmt"

// SamAction is a catalog-level operation gated by the permission model. The
// "any" actions are only ever granted through the global administrative
// override; a per-object access level never satisfies them directly.
type SamAction string

const (
	SamActionCreateMetadata    SamAction = "create_metadata"
	SamActionReadAnyMetadata   SamAction = "read_any_metadata"
	SamActionUpdateAnyMetadata SamAction = "update_any_metadata"
	SamActionDeleteAnyMetadata SamAction = "delete_any_metadata"
)

// String returns the string representation of the action
func (a SamAction) String() string {
	return string(a)
}

// DatasetAccessLevel is a caller's resolved privilege rank for one storage
// object, totally ordered by ascending privilege:
// NO_ACCESS < DISCOVERER < READER < OWNER.
type DatasetAccessLevel string

const (
	AccessLevelNoAccess   DatasetAccessLevel = "no_access"
	AccessLevelDiscoverer DatasetAccessLevel = "discoverer"
	AccessLevelReader     DatasetAccessLevel = "reader"
	AccessLevelOwner      DatasetAccessLevel = "owner"
)

var accessLevelRank = map[DatasetAccessLevel]int{
	AccessLevelNoAccess:   0,
	AccessLevelDiscoverer: 1,
	AccessLevelReader:     2,
	AccessLevelOwner:      3,
}

// Fixed level-to-permitted-actions table. OWNER permits every action, READER
// permits only read, DISCOVERER and NO_ACCESS permit nothing.
var permittedActions = map[DatasetAccessLevel]map[SamAction]bool{
	AccessLevelOwner: {
		SamActionCreateMetadata:    true,
		SamActionReadAnyMetadata:   true,
		SamActionUpdateAnyMetadata: true,
		SamActionDeleteAnyMetadata: true,
	},
	AccessLevelReader: {
		SamActionReadAnyMetadata: true,
	},
	AccessLevelDiscoverer: {},
	AccessLevelNoAccess:   {},
}

// IsValid checks if the access level is one of the known values
func (l DatasetAccessLevel) IsValid() bool {
	_, ok := accessLevelRank[l]
	return ok
}

// String returns the string representation of the access level
func (l DatasetAccessLevel) String() string {
	return string(l)
}

// Permits reports whether this access level grants the given action. Pure
// table lookup; unknown levels permit nothing.
func (l DatasetAccessLevel) Permits(action SamAction) bool {
	return permittedActions[l][action]
}

// Rank returns the ordinal position of the level in the privilege order
func (l DatasetAccessLevel) Rank() int {
	return accessLevelRank[l]
}

// AtLeast reports whether this level ranks at or above the other level
func (l DatasetAccessLevel) AtLeast(other DatasetAccessLevel) bool {
	return accessLevelRank[l] >= accessLevelRank[other]
}

// ParseDatasetAccessLevel converts a wire string into an access level
func ParseDatasetAccessLevel(s string) (DatasetAccessLevel, error) {
	level := DatasetAccessLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("unknown dataset access level: %q", s)
	}
	return level, nil
}

// HighestLevelFromRoles resolves a set of back-end native roles into the
// highest-ranked access level any of them maps to. Unrecognized roles are
// ignored; an empty or entirely-unrecognized role set yields NO_ACCESS.
func HighestLevelFromRoles(roles []string, roleMap map[string]DatasetAccessLevel) DatasetAccessLevel {
	result := AccessLevelNoAccess
	for _, role := range roles {
		level, ok := roleMap[role]
		if !ok {
			continue
		}
		if level.Rank() > result.Rank() {
			result = level
		}
	}
	return result
}
