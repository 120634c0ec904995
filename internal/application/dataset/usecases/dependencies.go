// Package usecases implements the catalog's application operations: listing,
// retrieval, mutation and preview of dataset metadata, with access decisions
// resolved against the permission oracle and the storage systems themselves.
package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog/internal/domain/dataset"
	"catalog/internal/domain/storage"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/errors"
)

// SamService answers questions about catalog-wide permissions held by the
// caller's identity.
type SamService interface {
	HasGlobalAction(ctx context.Context, token string, action dataset.SamAction) (bool, error)
}

// MetadataValidator checks a metadata document against the configured schema
// and returns human-readable violations, empty when the document conforms.
type MetadataValidator interface {
	Validate(metadata json.RawMessage) []string
}

// StorageServices maps each storage system to its service adapter.
type StorageServices map[dataset.StorageSystem]storage.StorageSystemService

// ForSystem returns the adapter for the given system.
func (s StorageServices) ForSystem(system dataset.StorageSystem) (storage.StorageSystemService, error) {
	svc, ok := s[system]
	if !ok {
		return nil, errors.NewInternalError(fmt.Sprintf("no service registered for storage system %s", system.Name()))
	}
	return svc, nil
}

// Systems returns the registered systems in canonical order.
func (s StorageServices) Systems() []dataset.StorageSystem {
	var systems []dataset.StorageSystem
	for _, system := range dataset.AllStorageSystems() {
		if _, ok := s[system]; ok {
			systems = append(systems, system)
		}
	}
	return systems
}

// authorizer resolves whether a concrete action on a concrete dataset is
// permitted, consulting the global permission oracle first and falling back
// to the role the underlying storage system grants on the object.
type authorizer struct {
	sam      SamService
	services StorageServices
}

func newAuthorizer(sam SamService, services StorageServices) *authorizer {
	return &authorizer{sam: sam, services: services}
}

// EnsureAction returns nil when the caller may perform action on the dataset
// identified by (system, sourceID), a forbidden error otherwise.
func (a *authorizer) EnsureAction(ctx context.Context, token string, system dataset.StorageSystem, sourceID string, action dataset.SamAction) error {
	allowed, err := a.sam.HasGlobalAction(ctx, token, action)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}

	svc, err := a.services.ForSystem(system)
	if err != nil {
		return err
	}
	level, err := svc.GetRole(ctx, token, sourceID)
	if err != nil {
		return err
	}
	if level.Permits(action) {
		return nil
	}
	return errors.NewForbiddenError(constants.ErrMsgNoDatasetAccess)
}

// enrichMetadata parses the stored metadata document and stamps the
// caller-facing access fields onto it. The requestAccessURL is only derived
// when the document does not already carry one.
func enrichMetadata(ds *dataset.Dataset, info dataset.StorageSystemInformation) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(ds.Metadata(), &doc); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("stored metadata for dataset %s is not a JSON object: %v", ds.ID(), err))
	}
	doc["accessLevel"] = info.AccessLevel.String()
	doc["id"] = ds.ID().String()
	if info.PhsID != "" {
		doc["phsId"] = info.PhsID
		if _, ok := doc["requestAccessURL"]; !ok {
			doc["requestAccessURL"] = fmt.Sprintf(constants.RequestAccessURLFormat, info.PhsID)
		}
	}
	return doc, nil
}
