package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounceRoundTrip(t *testing.T) {
	msg := &Announce{Vars: []VarMeta{
		{Name: "x", Owner: 0, Visibility: 2, PtType: 6, Field: 2, Shape: []int{1, 4}},
		{Name: "y", Owner: 1, Visibility: 1, PtType: 10, Field: 2, Shape: []int{4}},
	}}
	data, err := Marshal(msg)
	require.NoError(t, err)

	got, err := Unmarshal[Announce](data)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestPayloadRoundTrip(t *testing.T) {
	msg := &Payload{Items: []ShareItem{
		{Name: "x", Chunks: [][]byte{{1, 2, 3}, {4, 5, 6}}},
	}}
	data, err := Marshal(msg)
	require.NoError(t, err)

	got, err := Unmarshal[Payload](data)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal[Announce]([]byte("{"))
	assert.Error(t, err)
}
