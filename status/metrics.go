package status

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/slowtacocar/Hockey/engine"
)

const instrumentationName = "github.com/slowtacocar/Hockey/status"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics records session telemetry on the global otel meter (no-op unless a
// provider is installed) and mirrors every value into a Registry
type Metrics struct {
	reg *Registry

	frames        metric.Int64Counter
	goals         metric.Int64Counter
	pickups       metric.Int64Counter
	spawns        metric.Int64Counter
	specials      metric.Int64Counter
	frameDuration metric.Float64Histogram
	fpsGauge      metric.Float64ObservableGauge

	// cached registry cells
	framesN   *atomic.Int64
	goalsN    *atomic.Int64
	pickupsN  *atomic.Int64
	spawnsN   *atomic.Int64
	specialsN *atomic.Int64
	fps       *AtomicFloat
	lastFrame *AtomicFloat
}

// NewMetrics creates the instruments
func NewMetrics(reg *Registry) (*Metrics, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	m := &Metrics{
		reg:       reg,
		framesN:   reg.Counters.Get(MetricFrames),
		goalsN:    reg.Counters.Get(MetricGoals),
		pickupsN:  reg.Counters.Get(MetricPickups),
		spawnsN:   reg.Counters.Get(MetricSpawns),
		specialsN: reg.Counters.Get(MetricSpecials),
		fps:       reg.Gauges.Get(MetricFPS),
		lastFrame: reg.Gauges.Get(MetricFrameDuration),
	}

	mt := meter()
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.frames, MetricFrames, "Frames completed"},
		{&m.goals, MetricGoals, "Goals scored"},
		{&m.pickups, MetricPickups, "Power-ups consumed"},
		{&m.spawns, MetricSpawns, "Power-ups spawned"},
		{&m.specials, MetricSpecials, "Special moves engaged"},
	}
	for _, c := range counters {
		*c.dst, err = mt.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}

	m.frameDuration, err = mt.Float64Histogram(
		MetricFrameDuration,
		metric.WithDescription("Wall time spent per frame"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frame duration histogram: %w", err)
	}

	m.fpsGauge, err = mt.Float64ObservableGauge(
		MetricFPS,
		metric.WithDescription("Measured frames per second"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fps gauge: %w", err)
	}

	_, err = mt.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveFloat64(m.fpsGauge, m.fps.Get())
			return nil
		},
		m.fpsGauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering fps callback: %w", err)
	}

	return m, nil
}

// Registry returns the in-process mirror
func (m *Metrics) Registry() *Registry {
	return m.reg
}

// HandleEvents implements engine.EventHandler
func (m *Metrics) HandleEvents(_ *engine.GameState, events []engine.GameEvent) {
	ctx := context.Background()
	for _, ev := range events {
		switch ev.Type {
		case engine.EventGoal:
			scorer := 0
			if p, ok := ev.Payload.(engine.GoalPayload); ok {
				scorer = p.Scorer
			}
			m.goals.Add(ctx, 1, metric.WithAttributes(attribute.Int("player", scorer)))
			m.goalsN.Add(1)
		case engine.EventPowerUpConsumed:
			m.pickups.Add(ctx, 1, kindAttr(ev.Payload))
			m.pickupsN.Add(1)
		case engine.EventPowerUpSpawned:
			m.spawns.Add(ctx, 1, kindAttr(ev.Payload))
			m.spawnsN.Add(1)
		case engine.EventSpecialEngaged:
			m.specials.Add(ctx, 1)
			m.specialsN.Add(1)
		}
	}
}

func kindAttr(payload any) metric.AddOption {
	kind, _ := payload.(engine.PowerUpKind)
	return metric.WithAttributes(attribute.String("kind", kind.String()))
}

// ObserveFrame implements engine.FrameObserver
func (m *Metrics) ObserveFrame(s *engine.GameState, elapsed time.Duration) {
	ms := float64(elapsed) / float64(time.Millisecond)
	m.frames.Add(context.Background(), 1)
	m.frameDuration.Record(context.Background(), ms)

	m.framesN.Add(1)
	m.lastFrame.Set(ms)
	m.fps.Set(s.MeasuredFPS)
}

// LogSummary writes every mirrored value at info level
func (m *Metrics) LogSummary(log zerolog.Logger) {
	ev := log.Info()
	m.reg.Counters.Range(func(name string, v *atomic.Int64) {
		ev = ev.Int64(name, v.Load())
	})
	m.reg.Gauges.Range(func(name string, v *AtomicFloat) {
		ev = ev.Float64(name, v.Get())
	})
	ev.Msg("session metrics")
}
