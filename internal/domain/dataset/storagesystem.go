package dataset

import "fmt"

// StorageSystem identifies which external system a catalog entry's underlying
// object lives in. The set is closed: exactly three variants exist. Each
// variant has a stable short tag used for persistence and a long name used on
// the wire.
type StorageSystem string

const (
	// StorageSystemTerraDataRepo is the tabular data repository
	StorageSystemTerraDataRepo StorageSystem = "tdr"
	// StorageSystemTerraWorkspace is the workspace manager
	StorageSystemTerraWorkspace StorageSystem = "wks"
	// StorageSystemExternal is the locally-owned registry for objects stored elsewhere
	StorageSystemExternal StorageSystem = "ext"
)

var storageSystemNames = map[StorageSystem]string{
	StorageSystemTerraDataRepo:  "TERRA_DATA_REPO",
	StorageSystemTerraWorkspace: "TERRA_WORKSPACE",
	StorageSystemExternal:       "EXTERNAL",
}

// AllStorageSystems returns every storage system variant in a stable order
func AllStorageSystems() []StorageSystem {
	return []StorageSystem{
		StorageSystemTerraDataRepo,
		StorageSystemTerraWorkspace,
		StorageSystemExternal,
	}
}

// IsValid checks if the storage system is one of the three known variants
func (s StorageSystem) IsValid() bool {
	_, ok := storageSystemNames[s]
	return ok
}

// Tag returns the short persistence tag
func (s StorageSystem) Tag() string {
	return string(s)
}

// Name returns the long wire name, e.g. TERRA_DATA_REPO
func (s StorageSystem) Name() string {
	return storageSystemNames[s]
}

// String returns the long wire name
func (s StorageSystem) String() string {
	return storageSystemNames[s]
}

// ParseStorageSystem converts either a short tag or a long wire name into a
// StorageSystem. Unrecognized values fail loudly.
func ParseStorageSystem(s string) (StorageSystem, error) {
	system := StorageSystem(s)
	if system.IsValid() {
		return system, nil
	}
	for variant, name := range storageSystemNames {
		if s == name {
			return variant, nil
		}
	}
	return "", fmt.Errorf("unknown storage system: %q", s)
}
