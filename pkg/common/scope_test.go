// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	scope := NewScope(context.Background(), "parent")
	scope.SetAttributes("level_id", 3)
	child := scope.NewChildScope("child")
	child.TraceError(errors.New("boom"))
	child.Finish()
	scope.TraceEvent("done")
	scope.Finish()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, expected 2", len(spans))
	}
	if spans[0].Name() != "child" || spans[1].Name() != "parent" {
		t.Errorf("span names = [%s %s], expected [child parent]", spans[0].Name(), spans[1].Name())
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("child span is not parented to the scope span")
	}
	if child.TraceID != scope.TraceID {
		t.Errorf("child TraceID = %s, expected %s", child.TraceID, scope.TraceID)
	}
	if scope.Log.Data[traceIDLogField] != scope.TraceID {
		t.Errorf("log entry missing trace id field")
	}
}
