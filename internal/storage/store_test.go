package storage

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioproc/adsim/internal/sim"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(t *testing.T) (sim.Config, *sim.Trajectory) {
	t.Helper()
	cfg := sim.Config{
		Kinetics: "monod",
		Params:   map[string]float64{"mu_max": 0.4, "k_s": 20.0},
		Yb:       0.3,
		S0:       100, B0: 1,
		T1: 50, Samples: 50,
	}
	tr, err := sim.NewRunner().Run(cfg)
	require.NoError(t, err)
	return cfg, tr
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	cfg, tr := testRun(t)

	id, err := s.Save(cfg, tr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "monod_"))

	meta, err := s.Load(id)
	require.NoError(t, err)
	assert.Equal(t, "monod", meta.Kinetics)
	assert.Equal(t, 0.3, meta.Yb)
	assert.Equal(t, cfg.Params, meta.Params)
	assert.Equal(t, 50, meta.Samples)

	loaded, err := s.LoadTrajectory(id)
	require.NoError(t, err)
	require.Equal(t, tr.Len(), loaded.Len())
	for i := range tr.T {
		assert.Equal(t, tr.T[i], loaded.T[i])
		assert.Equal(t, tr.S[i], loaded.S[i])
		assert.Equal(t, tr.B[i], loaded.B[i])
		assert.Equal(t, tr.G[i], loaded.G[i])
	}
}

func TestList(t *testing.T) {
	s := testStore(t)
	cfg, tr := testRun(t)

	runs, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = s.Save(cfg, tr)
	require.NoError(t, err)
	_, err = s.Save(cfg, tr)
	require.NoError(t, err)

	runs, err = s.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Load("absent")
	assert.ErrorContains(t, err, "not found")
	_, err = s.LoadTrajectory("absent")
	assert.ErrorContains(t, err, "not found")
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	cfg, tr := testRun(t)

	id, err := s.Save(cfg, tr)
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))
	_, err = s.Load(id)
	assert.Error(t, err)
	assert.Error(t, s.Delete(id))
}

func TestExportCSV(t *testing.T) {
	_, tr := testRun(t)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, tr))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "time,substrate,biomass,biogas", lines[0])
	assert.Len(t, lines, tr.Len()+1)
	assert.True(t, strings.HasPrefix(lines[1], "0.000000,100.000000,1.000000,0.000000"))
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	cfg, tr := testRun(t)

	id, err := s.Save(cfg, tr)
	require.NoError(t, err)
	meta, err := s.Load(id)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, tr))

	var out struct {
		Meta      RunMeta   `json:"meta"`
		T         []float64 `json:"t"`
		Substrate []float64 `json:"substrate"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, id, out.Meta.ID)
	assert.Len(t, out.T, tr.Len())
	assert.Equal(t, 100.0, out.Substrate[0])
}
