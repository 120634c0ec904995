package mapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSlice(t *testing.T) {
	in := []int{1, 2, 3}
	out := MapSlice(in, func(i int) int { return i * 2 })
	assert.Equal(t, []int{2, 4, 6}, out)

	assert.Nil(t, MapSlice(nil, func(i int) int { return i }))
}

func TestMapSlicePtrWithID(t *testing.T) {
	type item struct {
		ID   string
		Name string
	}
	type mapped struct {
		Name string
	}

	in := []*item{{ID: "a", Name: "one"}, nil, {ID: "b", Name: "two"}}

	out, err := MapSlicePtrWithID(in, func(i *item) (*mapped, error) {
		return &mapped{Name: i.Name}, nil
	}, func(i *item) string { return i.ID })
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "one", out[0].Name)

	_, err = MapSlicePtrWithID(in, func(i *item) (*mapped, error) {
		if i.ID == "b" {
			return nil, errors.New("boom")
		}
		return &mapped{Name: i.Name}, nil
	}, func(i *item) string { return i.ID })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "b")
}
