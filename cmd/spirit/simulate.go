package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/taurusgroup/spirit/internal/metrics"
	"github.com/taurusgroup/spirit/internal/store"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/pool"
	"github.com/taurusgroup/spirit/pkg/prf"
	"github.com/taurusgroup/spirit/protocols/spirit"
)

type user struct {
	reg   *spirit.Registration
	table *spirit.ExposureTable
	// sent[e] is the pseudonym broadcast in epoch e+1
	sent []prf.ElID
}

// outcome summarises a simulation.
type outcome struct {
	Registered int
	Accepted   int
	Confirmed  int
	Matches    []int
	Alarms     []bool
}

func newRuntime(cfg *config, log zerolog.Logger, m *metrics.Metrics) *spirit.Runtime {
	var rt *spirit.Runtime
	if cfg.Seed != 0 {
		rt = spirit.New(sample.NewSeededReader(cfg.Seed))
	} else {
		rt = spirit.New(nil)
	}
	return rt.WithLogger(log).WithMetrics(m)
}

func simulate(cfg *config, log zerolog.Logger) (*outcome, error) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}
	pl := pool.NewPool(cfg.Workers)
	defer pl.TearDown()
	rt := newRuntime(cfg, log, m).WithPool(pl)

	var db *store.Store
	if cfg.DataDir != "" {
		if db, err = store.Open(cfg.DataDir); err != nil {
			return nil, err
		}
		defer db.Close()
	}

	system, err := deploy(rt, cfg, db, log)
	if err != nil {
		return nil, err
	}

	confirmed := spirit.NewConfirmedSet()
	if db != nil {
		if confirmed, err = reload(system, db, m, log); err != nil {
			return nil, err
		}
	}

	users := make([]*user, cfg.Users)
	for i := range users {
		r, err := rt.Register(curve.NewScalarUint64(uint64(i+1)), system.Services(), system.Params, system.Registry)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", i+1, err)
		}
		if db != nil {
			if err = db.PutToken(r.Token); err != nil {
				return nil, err
			}
		}
		users[i] = &user{reg: r, table: spirit.NewExposureTable()}
	}

	for epoch := uint64(1); epoch <= uint64(cfg.Epochs); epoch++ {
		for _, u := range users {
			u.sent = append(u.sent, rt.Broadcast(epoch, u.reg.Secret, u.table))
		}
		// during the first epochs, every user is next to the following one
		if epoch <= uint64(cfg.Contacts) && len(users) > 1 {
			for i, u := range users {
				next := users[(i+1)%len(users)]
				u.table.Observe(rt, next.sent[epoch-1])
				next.table.Observe(rt, u.sent[epoch-1])
			}
		}
	}

	out := &outcome{Registered: system.Registry.Len()}
	epochs := make([]uint64, cfg.Epochs)
	for i := range epochs {
		epochs[i] = uint64(i + 1)
	}
	for i := 0; i < cfg.Diagnosed; i++ {
		u := users[i]
		report, err := rt.Diagnose(u.reg.Credential, u.reg.Secret, epochs, system.Params)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", i+1, err)
		}
		snapshot, accepted := rt.VerifyReport(report, system.Registry, confirmed, system.Params)
		if !accepted {
			log.Warn().Int("user", i+1).Msg("report rejected")
			continue
		}
		out.Accepted++
		log.Debug().Int("user", i+1).Int("confirmed", snapshot.Len()).Msg("report accepted")
		if db != nil {
			if err = db.PutElIDs(report.ElIDs()); err != nil {
				return nil, err
			}
		}
	}

	snapshot := confirmed.Snapshot()
	out.Confirmed = snapshot.Len()
	for i, u := range users {
		count, alarm := spirit.Trace(snapshot, u.table, cfg.ExposureLimit)
		out.Matches = append(out.Matches, count)
		out.Alarms = append(out.Alarms, alarm)
		log.Info().Int("user", i+1).Int("matches", count).Bool("alarm", alarm).Msg("traced")
	}

	if cfg.Metrics {
		if err = logMetrics(reg, log); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// deploy restores the deployment stored in db, or creates one and stores it.
func deploy(rt *spirit.Runtime, cfg *config, db *store.Store, log zerolog.Logger) (*spirit.System, error) {
	if db == nil {
		return rt.Setup(cfg.Threshold, cfg.IssuersTotal, cfg.Issuers)
	}
	d, err := db.Deployment()
	if err != nil {
		return nil, err
	}
	if d != nil {
		if d.Threshold != cfg.Threshold || d.N != cfg.IssuersTotal || len(d.IDs) != cfg.Issuers {
			return nil, fmt.Errorf("%s holds a deployment with threshold %d of %d issuers (n = %d)",
				cfg.DataDir, d.Threshold, len(d.IDs), d.N)
		}
		log.Info().Str("dir", cfg.DataDir).Msg("deployment reloaded")
		return rt.Restore(d)
	}
	system, err := rt.Setup(cfg.Threshold, cfg.IssuersTotal, cfg.Issuers)
	if err != nil {
		return nil, err
	}
	if err = db.PutDeployment(system.Deployment()); err != nil {
		return nil, err
	}
	return system, nil
}

// reload fills the registry of system with the stored tokens valid under its
// parameters, and returns the stored confirmed pseudonyms.
func reload(system *spirit.System, db *store.Store, m *metrics.Metrics, log zerolog.Logger) (*spirit.ConfirmedSet, error) {
	tokens, err := db.Tokens()
	if err != nil {
		return nil, err
	}
	elids, err := db.ElIDs()
	if err != nil {
		return nil, err
	}

	valid := tokens[:0]
	for _, token := range tokens {
		if token.IsValid(system.Params) {
			valid = append(valid, token)
		}
	}
	if dropped := len(tokens) - len(valid); dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("stored tokens not issued under the current parameters")
	}

	system.Registry = spirit.NewRegistry(valid...)
	confirmed := spirit.NewConfirmedSet(elids...)
	m.SetRegistrySize(system.Registry.Len())
	m.SetConfirmed(confirmed.Snapshot().Len())
	log.Info().Int("tokens", len(valid)).Int("confirmed", len(elids)).Msg("state reloaded")
	return confirmed, nil
}

func logMetrics(g prometheus.Gatherer, log zerolog.Logger) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			event := log.Info().Str("metric", family.GetName())
			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			switch {
			case metric.GetCounter() != nil:
				event = event.Float64("value", metric.GetCounter().GetValue())
			case metric.GetGauge() != nil:
				event = event.Float64("value", metric.GetGauge().GetValue())
			case metric.GetHistogram() != nil:
				event = event.Uint64("count", metric.GetHistogram().GetSampleCount())
			}
			event.Msg("metric")
		}
	}
	return nil
}
