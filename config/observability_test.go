package config_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/genevent-go/config" //nolint:revive
)

func Test_NewStdoutTelemetry_ExportsSpansAndMetrics(t *testing.T) {
	// arrange
	out := &bytes.Buffer{}
	providers, err := NewStdoutTelemetry(out)
	require.NoError(t, err)

	// act
	_, span := providers.TracerProvider.Tracer("test").Start(context.Background(), "archive.query")
	span.End()
	counter, err := providers.MeterProvider.Meter("test").Int64Counter("genevent_test_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)
	require.NoError(t, providers.Shutdown(context.Background()))

	// assert
	assert.Contains(t, out.String(), `"Name":"archive.query"`)
	assert.Contains(t, out.String(), `"Name":"genevent_test_total"`)
	assert.Contains(t, out.String(), "genevent")
}

func Test_TelemetryProviders_RecordStoreOptions(t *testing.T) {
	// arrange
	providers, err := NewStdoutTelemetry(&bytes.Buffer{})
	require.NoError(t, err)
	defer func() { _ = providers.Shutdown(context.Background()) }()

	// act
	options := providers.RecordStoreOptions(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	// assert
	assert.Len(t, options, 3)
}
