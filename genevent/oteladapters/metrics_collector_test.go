package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	. "github.com/AntonStoeckl/genevent-go/genevent/oteladapters" //nolint:revive
)

func newTestMetrics() (*MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return NewMetricsCollector(provider.Meter("test")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func Test_MetricsCollector_RecordDuration_InSeconds(t *testing.T) {
	// arrange
	collector, reader := newTestMetrics()
	labels := map[string]string{"operation": "query", "status": "success"}

	// act
	collector.RecordDuration("genevent_archive_query_duration_seconds", 150*time.Millisecond, labels)
	collector.RecordDurationContext(context.Background(), "genevent_archive_query_duration_seconds", 50*time.Millisecond, labels)

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), "genevent_archive_query_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(2), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.2, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "query"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	collector, reader := newTestMetrics()
	labels := map[string]string{"operation": "append", "error_type": "database_exec"}

	// act
	collector.IncrementCounter("genevent_archive_database_errors_total", labels)
	collector.IncrementCounter("genevent_archive_database_errors_total", labels)
	collector.IncrementCounterContext(context.Background(), "genevent_archive_database_errors_total", labels)

	// assert
	counter := findCounterMetric(t, collect(t, reader), "genevent_archive_database_errors_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(3), counter.DataPoints[0].Value)
}

func Test_MetricsCollector_IncrementCounter_SeparatesLabelSets(t *testing.T) {
	// arrange
	collector, reader := newTestMetrics()

	// act
	collector.IncrementCounter("errors_total", map[string]string{"operation": "query"})
	collector.IncrementCounter("errors_total", map[string]string{"operation": "append"})

	// assert
	counter := findCounterMetric(t, collect(t, reader), "errors_total")
	assert.Len(t, counter.DataPoints, 2)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// arrange
	collector, reader := newTestMetrics()
	labels := map[string]string{"operation": "query"}

	// act
	collector.RecordValue("genevent_archive_records_queried_total", 3, labels)
	collector.RecordValueContext(context.Background(), "genevent_archive_records_queried_total", 8, labels)

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), "genevent_archive_records_queried_total")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, float64(8), gauge.DataPoints[0].Value)
}

func Test_MetricsCollector_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	collector, reader := newTestMetrics()
	done := make(chan struct{})

	// act
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			collector.IncrementCounter("concurrent_total", nil)
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	// assert
	counter := findCounterMetric(t, collect(t, reader), "concurrent_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(10), counter.DataPoints[0].Value)
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if h, ok := m.Data.(metricdata.Histogram[float64]); ok && m.Name == name {
				return h
			}
		}
	}

	t.Fatalf("histogram metric %s not found", name)

	return metricdata.Histogram[float64]{}
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if c, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == name {
				return c
			}
		}
	}

	t.Fatalf("counter metric %s not found", name)

	return metricdata.Sum[int64]{}
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if g, ok := m.Data.(metricdata.Gauge[float64]); ok && m.Name == name {
				return g
			}
		}
	}

	t.Fatalf("gauge metric %s not found", name)

	return metricdata.Gauge[float64]{}
}
