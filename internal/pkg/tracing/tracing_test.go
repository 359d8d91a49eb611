package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := InitWithWriter(&bytes.Buffer{}, "glow-test", false)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_ExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitWithWriter(&buf, "glow-test", true)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "unit-span")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "unit-span")
}
