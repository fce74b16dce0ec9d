package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"dialogsynth/internal/logger"
)

func TestInitTracerExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracer("dialogsynth-test", &buf, logger.Discard())
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "llm.chat")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name": "llm.chat"`)
	assert.Contains(t, buf.String(), "dialogsynth-test")
}
