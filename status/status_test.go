package status

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowtacocar/Hockey/engine"
)

func TestMetricMapCachesCells(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	a.Set(1.5)

	assert.Same(t, a, m.Get("x"))
	assert.Equal(t, 1.5, m.Get("x").Get())
	assert.Equal(t, 1, m.Count())

	var keys []string
	m.Get("b")
	m.Range(func(k string, _ *AtomicFloat) { keys = append(keys, k) })
	assert.Equal(t, []string{"b", "x"}, keys)
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	cells := make([]*AtomicFloat, 16)
	for i := range cells {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cells[i] = m.Get("shared")
		}(i)
	}
	wg.Wait()

	for _, c := range cells {
		assert.Same(t, cells[0], c)
	}
}

func TestMetricsCountEvents(t *testing.T) {
	s, _, _ := engine.NewTestGameState()
	m, err := NewMetrics(nil)
	require.NoError(t, err)

	m.HandleEvents(s, []engine.GameEvent{
		{Type: engine.EventGoal, Payload: engine.GoalPayload{Scorer: 1, Score1: 1}},
		{Type: engine.EventGoal, Payload: engine.GoalPayload{Scorer: 2, Score1: 1, Score2: 1}},
		{Type: engine.EventPowerUpSpawned, Payload: engine.PowerUpGravity},
		{Type: engine.EventPowerUpConsumed, Payload: engine.PowerUpGravity},
		{Type: engine.EventSpecialEngaged},
		{Type: engine.EventSpecialReleased},
	})

	reg := m.Registry()
	assert.Equal(t, int64(2), reg.Counter(MetricGoals))
	assert.Equal(t, int64(1), reg.Counter(MetricSpawns))
	assert.Equal(t, int64(1), reg.Counter(MetricPickups))
	assert.Equal(t, int64(1), reg.Counter(MetricSpecials))
}

func TestMetricsObserveFrame(t *testing.T) {
	s, _, _ := engine.NewTestGameState()
	m, err := NewMetrics(nil)
	require.NoError(t, err)

	s.MeasuredFPS = 59.9
	m.ObserveFrame(s, 4*time.Millisecond)
	m.ObserveFrame(s, 6*time.Millisecond)

	reg := m.Registry()
	assert.Equal(t, int64(2), reg.Counter(MetricFrames))
	assert.Equal(t, 6.0, reg.Gauge(MetricFrameDuration))
	assert.Equal(t, 59.9, reg.Gauge(MetricFPS))
}

func TestMetricsAttachToLoop(t *testing.T) {
	s, _, _ := engine.NewTestGameState()
	m, err := NewMetrics(nil)
	require.NoError(t, err)

	loop := engine.NewLoop(s, nil)
	loop.Attach(m)
	s.PushEvent(engine.EventGoal, engine.GoalPayload{Scorer: 2})
	require.NoError(t, loop.Frame())

	assert.Equal(t, int64(1), m.Registry().Counter(MetricFrames))
	assert.Equal(t, int64(1), m.Registry().Counter(MetricGoals))
}

func TestLogSummary(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)
	m.goalsN.Add(3)

	var buf bytes.Buffer
	m.LogSummary(zerolog.New(&buf))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "session metrics", line["message"])
	assert.Equal(t, 3.0, line[MetricGoals])
	assert.Contains(t, line, MetricFPS)
}
