package traces

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

type memoryExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryExporter) ForceFlush(context.Context) error { return nil }

func TestLogrusHookEmitsRecords(t *testing.T) {
	exporter := &memoryExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	previous := global.GetLoggerProvider()
	global.SetLoggerProvider(provider)
	t.Cleanup(func() { global.SetLoggerProvider(previous) })

	logger := logrus.New()
	logger.AddHook(NewLogrusHook("direct-test"))

	logger.WithField("request_id", "req_123").Error("An error occurred while querying for challenges")
	logger.Debug("not forwarded")

	require.Len(t, exporter.records, 1)
	r := exporter.records[0]
	assert.Equal(t, "An error occurred while querying for challenges", r.Body().AsString())
	assert.Equal(t, otellog.SeverityError, r.Severity())

	var requestID string
	r.WalkAttributes(func(kv otellog.KeyValue) bool {
		if kv.Key == "request_id" {
			requestID = kv.Value.AsString()
		}
		return true
	})
	assert.Equal(t, "req_123", requestID)
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, otellog.SeverityFatal, severity(logrus.FatalLevel))
	assert.Equal(t, otellog.SeverityWarn, severity(logrus.WarnLevel))
	assert.Equal(t, otellog.SeverityInfo, severity(logrus.InfoLevel))
	assert.Equal(t, otellog.SeverityDebug, severity(logrus.TraceLevel))
}
