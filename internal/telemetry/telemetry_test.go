package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gitdrop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitialize_DisabledWithoutEndpoint(t *testing.T) {
	before := otel.GetTracerProvider()

	p, err := Initialize(context.Background(), Config{ServiceName: "gitdrop"}, logging.Nop())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, before, otel.GetTracerProvider())

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitialize_InstallsGlobalProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	p, err := Initialize(context.Background(), Config{
		ServiceName:    "gitdrop",
		ServiceVersion: "test",
		OTLPEndpoint:   "http://127.0.0.1:4318",
	}, logging.Nop())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Same(t, p.TracerProvider, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, p.Shutdown(ctx))
}
