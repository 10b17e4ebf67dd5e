package logging

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// TraceContextHook adds trace_id and span_id to entries logged with a span context,
// e.g. log.WithContext(ctx).Errorf(...).
type TraceContextHook struct{}

func NewTraceContextHook() *TraceContextHook {
	return &TraceContextHook{}
}

func (h *TraceContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *TraceContextHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(entry.Context)
	if !spanCtx.IsValid() {
		return nil
	}
	entry.Data["trace_id"] = spanCtx.TraceID().String()
	entry.Data["span_id"] = spanCtx.SpanID().String()
	return nil
}
