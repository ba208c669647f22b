package status

import (
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ExportInterval is how often the meter provider writes collected metrics
const ExportInterval = 10 * time.Second

// NewMeterProvider installs a global meter provider that writes every instrument
// as JSON to w each interval and once more on Shutdown.
// Install it before NewMetrics so the instruments bind to it directly.
func NewMeterProvider(w io.Writer, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	if w == nil {
		return nil, fmt.Errorf("meter provider needs a writer")
	}
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}
