package main

import (
	"crypto/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/internal/metrics"
	"github.com/taurusgroup/spirit/internal/store"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/protocols/spirit"
)

func testConfig() *config {
	return &config{
		Threshold:     2,
		IssuersTotal:  3,
		Issuers:       3,
		Users:         4,
		Epochs:        10,
		Contacts:      3,
		Diagnosed:     1,
		ExposureLimit: 2,
		Seed:          7,
		Workers:       2,
	}
}

func TestSimulate(t *testing.T) {
	out, err := simulate(testConfig(), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 4, out.Registered)
	assert.Equal(t, 1, out.Accepted)
	assert.Equal(t, 10, out.Confirmed)
	// user 1 is diagnosed, users 2 and 4 met it during 3 epochs, user 3 never did
	assert.Equal(t, []int{10, 3, 0, 3}, out.Matches)
	assert.Equal(t, []bool{true, true, false, true}, out.Alarms)
}

func TestSimulate_Persistence(t *testing.T) {
	for name, seeds := range map[string][2]uint64{
		"seeded":         {7, 8},
		"random":         {0, 0},
		"seeded, random": {7, 0},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			cfg.DataDir = t.TempDir()
			cfg.Seed = seeds[0]

			_, err := simulate(cfg, zerolog.Nop())
			require.NoError(t, err)

			cfg.Diagnosed = 0
			cfg.Seed = seeds[1]
			out, err := simulate(cfg, zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, 8, out.Registered, "tokens of the first run were reloaded")
			assert.Equal(t, 10, out.Confirmed, "pseudonyms of the first run were reloaded")
			assert.Equal(t, []int{0, 0, 0, 0}, out.Matches)
		})
	}
}

func TestSimulate_StaleTokens(t *testing.T) {
	cfg := testConfig()
	cfg.DataDir = t.TempDir()
	_, err := simulate(cfg, zerolog.Nop())
	require.NoError(t, err)

	// a genuine token of another deployment
	rt := spirit.New(rand.Reader)
	other, err := rt.Setup(2, 3, 3)
	require.NoError(t, err)
	reg, err := rt.Register(curve.NewScalarUint64(1), other.Services(), other.Params, other.Registry)
	require.NoError(t, err)

	db, err := store.Open(cfg.DataDir)
	require.NoError(t, err)
	require.NoError(t, db.PutToken(reg.Token))

	d, err := db.Deployment()
	require.NoError(t, err)
	system, err := rt.Restore(d)
	require.NoError(t, err)
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	confirmed, err := reload(system, db, m, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Equal(t, 4, system.Registry.Len())
	assert.False(t, system.Registry.Contains(reg.Token))
	assert.Equal(t, 10, confirmed.Snapshot().Len())
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RegistrySize))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.Confirmed))

	cfg.Diagnosed = 0
	cfg.Seed = 9
	out, err := simulate(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 8, out.Registered)
}

func TestSimulate_DeploymentMismatch(t *testing.T) {
	cfg := testConfig()
	cfg.DataDir = t.TempDir()
	_, err := simulate(cfg, zerolog.Nop())
	require.NoError(t, err)

	cfg.Threshold = 3
	_, err = simulate(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestSimulate_BadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Threshold = 4
	_, err := simulate(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SPIRIT_THRESHOLD", "4")
	t.Setenv("SPIRIT_EXPOSURE_LIMIT", "6")

	cmd := &cobra.Command{Use: "spirit"}
	v := newViper()
	bindFlags(cmd, v)
	require.NoError(t, cmd.PersistentFlags().Set("users", "9"))

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Threshold)
	assert.Equal(t, 6, cfg.ExposureLimit)
	assert.Equal(t, 9, cfg.Users)
	assert.Equal(t, 5, cfg.IssuersTotal)
	assert.Equal(t, "info", cfg.LogLevel)

	require.NoError(t, cmd.PersistentFlags().Set("diagnosed", "10"))
	_, err = loadConfig(v)
	assert.Error(t, err)
}
