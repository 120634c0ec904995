package dataset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	ds, err := NewDataset(StorageSystemTerraDataRepo, "snapshot-1", json.RawMessage(`{"name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, ds.ID())
	assert.Equal(t, "snapshot-1", ds.StorageSourceID())
	assert.True(t, ds.CreationTime().IsZero())
}

func TestNewDataset_Invalid(t *testing.T) {
	_, err := NewDataset(StorageSystem("bogus"), "src", json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = NewDataset(StorageSystemExternal, "", json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = NewDataset(StorageSystemExternal, "src", nil)
	assert.Error(t, err)

	_, err = NewDataset(StorageSystemExternal, "src", json.RawMessage(`{not json`))
	assert.Error(t, err)
}

func TestDataset_SetIDOnce(t *testing.T) {
	ds, err := NewDataset(StorageSystemExternal, "src", json.RawMessage(`{}`))
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, ds.SetID(id))
	assert.Equal(t, id, ds.ID())

	// The identifier is immutable once assigned.
	assert.Error(t, ds.SetID(uuid.New()))
	assert.Equal(t, id, ds.ID())
}

func TestReconstructDataset(t *testing.T) {
	id := uuid.New()
	created := time.Now().UTC()

	ds, err := ReconstructDataset(id, StorageSystemTerraWorkspace, "ws-1", json.RawMessage(`{"a":1}`), created)
	require.NoError(t, err)
	assert.Equal(t, id, ds.ID())
	assert.Equal(t, created, ds.CreationTime())

	_, err = ReconstructDataset(uuid.Nil, StorageSystemTerraWorkspace, "ws-1", nil, created)
	assert.Error(t, err)
}

func TestDataset_UpdateMetadata(t *testing.T) {
	ds, err := NewDataset(StorageSystemExternal, "src", json.RawMessage(`{"v":1}`))
	require.NoError(t, err)

	require.NoError(t, ds.UpdateMetadata(json.RawMessage(`{"v":2}`)))
	assert.JSONEq(t, `{"v":2}`, string(ds.Metadata()))

	assert.Error(t, ds.UpdateMetadata(nil))
	assert.Error(t, ds.UpdateMetadata(json.RawMessage(`{broken`)))
}
