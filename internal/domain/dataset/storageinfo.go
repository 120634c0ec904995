package dataset

// StorageSystemInformation combines a caller's resolved access level for one
// storage object with the back-end-supplied phsId, when one exists. It is
// produced fresh per request and never cached across requests.
type StorageSystemInformation struct {
	AccessLevel DatasetAccessLevel
	PhsID       string
}

// AdminDefaultInformation is the substitute used when a caller holding the
// global read override browses a record the owning storage system did not
// report as visible to them: READER with no phsId.
func AdminDefaultInformation() StorageSystemInformation {
	return StorageSystemInformation{AccessLevel: AccessLevelReader}
}
