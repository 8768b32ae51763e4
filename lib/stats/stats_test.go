package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCountsFrames(t *testing.T) {
	s := New("2d")
	s.Update()
	s.Update()
	s.Update()

	snap := s.Snapshot()
	assert.Equal(t, uint64(3), snap.Frames)
	assert.Equal(t, "2d", snap.Variant)
}

func TestUpdateComputesFPS(t *testing.T) {
	s := New("2d")
	s.frameTimer = time.Now().Add(-2 * time.Second)
	s.Update()

	assert.Equal(t, uint64(1), s.Snapshot().FPS)
}

func TestSnapshotJSON(t *testing.T) {
	s := New("3d")
	s.SetWsClients(2)
	snap := s.Snapshot()

	b, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "3d", decoded["variant"])
	assert.Equal(t, 2.0, decoded["ws_clients"])
	assert.Contains(t, decoded, "fps")
	assert.Contains(t, decoded, "uptime")
	assert.Contains(t, decoded, "frames")
}
