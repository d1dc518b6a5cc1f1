package task_test

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/marche-sim-oss/output"
	"github.com/tsinghua-fib-lab/marche-sim-oss/task"
	"github.com/tsinghua-fib-lab/marche-sim-oss/utils/config"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

// routeConfig builds the reference vehicle (v0=15, T=1.5, a=1.0, b=1.5, s0=2)
// on a route with the given stations.
func routeConfig(total int32, stations ...config.Station) config.Config {
	return config.Config{
		Vehicle: config.VehicleAttr{
			DesiredSpeed:             15,
			Headway:                  1.5,
			MaxAcceleration:          1,
			UsualBrakingAcceleration: -1.5,
			MaxBrakingAcceleration:   -4.5,
			MinGap:                   2,
		},
		Control: config.Control{
			Step: config.ControlStep{Total: total, Interval: 0.5},
		},
		Route: &config.Route{Stations: stations},
	}
}

// zeroRun is a maximal run of consecutive zero-speed samples.
type zeroRun struct {
	start, length int
}

func zeroRuns(samples []output.Sample) []zeroRun {
	var runs []zeroRun
	cur := zeroRun{start: -1}
	for i, s := range samples {
		if s.V == 0 {
			if cur.start < 0 {
				cur = zeroRun{start: i}
			}
			cur.length++
		} else if cur.start >= 0 {
			runs = append(runs, cur)
			cur = zeroRun{start: -1}
		}
	}
	if cur.start >= 0 {
		runs = append(runs, cur)
	}
	return runs
}

func TestStationStopScenario(t *testing.T) {
	// single station at 500m, dwell 30s, 120s total at dt=0.5
	ctx, err := task.NewContext(routeConfig(240, config.Station{S: 500}))
	require.NoError(t, err)
	trajectory := ctx.Run()
	samples := trajectory.Samples
	require.Len(t, samples, 240)

	// speed never negative, never above v0; position non-decreasing
	prevS := 0.0
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.V, 0.0)
		assert.LessOrEqual(t, s.V, 15.0+1e-9)
		assert.GreaterOrEqual(t, s.S, prevS)
		prevS = s.S
	}

	// the vehicle stops at or before the station and holds for the dwell
	runs := zeroRuns(samples)
	var dwell zeroRun
	for _, r := range runs {
		if r.length >= 60 {
			dwell = r
			break
		}
	}
	require.GreaterOrEqual(t, dwell.length, 60, "expected a dwell of at least 60 zero-speed samples")
	stopS := samples[dwell.start].S
	assert.LessOrEqual(t, stopS, 500.0)
	assert.Greater(t, stopS, 490.0)
	for i := dwell.start; i < dwell.start+dwell.length; i++ {
		assert.Equal(t, stopS, samples[i].S, "position must be frozen while dwelling")
	}

	// the vehicle departs again and travels past the stop point
	last := samples[len(samples)-1]
	assert.Greater(t, last.S, stopS)
	assert.Greater(t, last.V, 0.0)

	// naive upper bound: stop point plus desired-speed travel for the time
	// remaining after arrival and dwell
	tArrival := samples[dwell.start].T
	assert.LessOrEqual(t, last.S, 500+15*(120-tArrival-30)+1e-6)
}

func TestRouteEndsWhenLastDwellCompletes(t *testing.T) {
	// no total step count: the run is governed by the route
	ctx, err := task.NewContext(routeConfig(0, config.Station{S: 300}))
	require.NoError(t, err)
	trajectory := ctx.Run()
	samples := trajectory.Samples
	require.NotEmpty(t, samples)

	// trailing zero-speed samples: arrival snap plus 30s of dwell at dt=0.5
	trailing := 0
	for i := len(samples) - 1; i >= 0 && samples[i].V == 0; i-- {
		trailing++
	}
	assert.Equal(t, 61, trailing)

	last := samples[len(samples)-1]
	first := samples[len(samples)-trailing]
	assert.InDelta(t, 30.0, last.T-first.T, 1e-9)
	assert.Equal(t, first.S, last.S)
	assert.LessOrEqual(t, last.S, 300.0)
	assert.Greater(t, last.S, 295.0)
}

func TestMultiStationRoute(t *testing.T) {
	// the original sample route: stops at 0, 300, 800 and 1500 metres
	ctx, err := task.NewContext(routeConfig(0,
		config.Station{S: 0},
		config.Station{S: 300},
		config.Station{S: 800},
		config.Station{S: 1500},
	))
	require.NoError(t, err)
	trajectory := ctx.Run()
	samples := trajectory.Samples

	prevS := 0.0
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.V, 0.0)
		assert.GreaterOrEqual(t, s.S, prevS)
		prevS = s.S
	}

	// one dwell per station
	dwells := 0
	for _, r := range zeroRuns(samples) {
		if r.length >= 60 {
			dwells++
		}
	}
	assert.Equal(t, 4, dwells)

	last := samples[len(samples)-1]
	assert.Greater(t, last.S, 1490.0)
	assert.LessOrEqual(t, last.S, 1500.0)
}

func TestRunIdempotent(t *testing.T) {
	run := func() []output.Sample {
		ctx, err := task.NewContext(routeConfig(240, config.Station{S: 500}))
		require.NoError(t, err)
		return ctx.Run().Samples
	}
	assert.Equal(t, run(), run())
}

func TestLeaderScenario(t *testing.T) {
	ctx, err := task.NewContext(config.Default())
	require.NoError(t, err)
	trajectory := ctx.Run()
	samples := trajectory.Samples
	require.Len(t, samples, 120)

	prevS := 0.0
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.V, 0.0)
		assert.LessOrEqual(t, s.V, 15.0+1e-9)
		assert.GreaterOrEqual(t, s.S, prevS)
		prevS = s.S
		// the follower never reaches the leader
		assert.Less(t, s.S, 50+10*s.T)
	}

	// the follower settles toward the leader's speed
	assert.InDelta(t, 10.0, samples[len(samples)-1].V, 2.0)
}

func TestInvalidConfigRejected(t *testing.T) {
	c := routeConfig(240, config.Station{S: 500})
	c.Vehicle.DesiredSpeed = -15
	_, err := task.NewContext(c)
	assert.Error(t, err)

	c = routeConfig(240, config.Station{S: 800}, config.Station{S: 300})
	_, err = task.NewContext(c)
	assert.Error(t, err)
}

func TestInitialState(t *testing.T) {
	ctx, err := task.NewContext(routeConfig(240, config.Station{S: 500}))
	require.NoError(t, err)
	assert.Equal(t, task.StateApproaching, ctx.State())
	assert.Equal(t, 0.0, ctx.Clock().T)
}
