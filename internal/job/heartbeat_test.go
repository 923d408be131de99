package job

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHeartbeatStopIsIdempotent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHeartbeat(zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := h.Start(ctx)
	stop()
	stop()

	if n := logs.FilterMessage("hourly job stopped").Len(); n != 1 {
		t.Fatalf("expect one stop log, got %d", n)
	}
}
