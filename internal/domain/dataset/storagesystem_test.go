package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStorageSystem(t *testing.T) {
	tests := []struct {
		input string
		want  StorageSystem
	}{
		{input: "tdr", want: StorageSystemTerraDataRepo},
		{input: "wks", want: StorageSystemTerraWorkspace},
		{input: "ext", want: StorageSystemExternal},
		{input: "TERRA_DATA_REPO", want: StorageSystemTerraDataRepo},
		{input: "TERRA_WORKSPACE", want: StorageSystemTerraWorkspace},
		{input: "EXTERNAL", want: StorageSystemExternal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			system, err := ParseStorageSystem(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, system)
		})
	}
}

func TestParseStorageSystem_Unrecognized(t *testing.T) {
	for _, input := range []string{"", "gcs", "terra_data_repo"} {
		_, err := ParseStorageSystem(input)
		assert.Error(t, err, "input %q should fail", input)
	}
}

func TestStorageSystem_Names(t *testing.T) {
	assert.Equal(t, "TERRA_DATA_REPO", StorageSystemTerraDataRepo.Name())
	assert.Equal(t, "tdr", StorageSystemTerraDataRepo.Tag())
	assert.Len(t, AllStorageSystems(), 3)
}
