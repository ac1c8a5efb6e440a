package ops

import (
	"os"
	"path/filepath"
	"testing"

	"mlft/internal/model/enum"
	"mlft/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanun0323/errors"
)

const jsonConfig = `{
	"instruments": "data/instruments.csv",
	"bars": "/abs/bars.csv",
	"matchAlgo": "NoTrade",
	"risk": {"killSwitch": false, "maxOrderQty": 3},
	"output": {"dir": "out", "snapshot": "out/positions.json"},
	"strategy": {"seed": 42, "maxQty": 2}
}`

const yamlConfig = `
instruments: data/instruments.csv
bars: /abs/bars.csv
matchAlgo: no_trade
risk:
  maxOrderQty: 3
output:
  dir: out
  snapshot: out/positions.json
strategy:
  seed: 42
  maxQty: 2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		desc    string
		name    string
		content string
	}{
		{"json", "run.json", jsonConfig},
		{"yaml", "run.yaml", yamlConfig},
		{"yml", "run.yml", yamlConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			path := writeFile(t, tc.name, tc.content)
			dir := filepath.Dir(path)

			loaded, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, "data/instruments.csv"), loaded.Instruments)
			assert.Equal(t, "/abs/bars.csv", loaded.Bars)
			assert.Equal(t, enum.MatchNoTrade, loaded.MatchAlgo)
			assert.Equal(t, 3.0, loaded.Risk.MaxOrderQty)
			assert.False(t, loaded.Risk.KillSwitch)
			assert.Equal(t, filepath.Join(dir, "out"), loaded.Output.Dir)
			assert.Equal(t, filepath.Join(dir, "out/positions.json"), loaded.Output.Snapshot)
			assert.Empty(t, loaded.Output.VerifySnapshot)
			assert.Equal(t, StrategySpec{Seed: 42, MaxQty: 2}, loaded.Strategy)
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	loaded, err := Resolve(FileConfig{Bars: "bars.csv"})
	require.NoError(t, err)

	expected := Default()
	expected.Bars = "bars.csv"
	assert.Equal(t, expected, loaded)
	assert.Equal(t, enum.MatchAlwaysFilled, loaded.MatchAlgo)
	assert.Equal(t, 5.0, loaded.Strategy.MaxQty)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		desc    string
		name    string
		content string
		err     error
	}{
		{"unknown algorithm", "run.json", `{"matchAlgo": "Sometimes"}`, exception.ErrInvalidConfig},
		{"unknown field", "run.json", `{"matchAlgorithm": "NoTrade"}`, exception.ErrInvalidConfig},
		{"unknown yaml field", "run.yaml", "foo: 1\n", exception.ErrInvalidConfig},
		{"bad extension", "run.toml", `bars = "x"`, exception.ErrInvalidConfig},
		{"negative max order qty", "run.json", `{"risk": {"maxOrderQty": -1}}`, exception.ErrInvalidConfig},
		{"zero strategy qty", "run.yaml", "strategy:\n  maxQty: 0\n", exception.ErrInvalidConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.name, tc.content))
			require.True(t, errors.Is(err, tc.err), "%v", err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.True(t, errors.Is(err, exception.ErrNotFound), "%v", err)
}
