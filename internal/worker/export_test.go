package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type mockExporter struct {
	callCount atomic.Int32
}

func (m *mockExporter) Export(_ context.Context) error {
	m.callCount.Add(1)
	return nil
}

func TestExportWorkerRunsAndShutdown(t *testing.T) {
	mock := &mockExporter{}
	w := NewExportWorker(mock, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	if got := mock.callCount.Load(); got < 1 {
		t.Errorf("call count = %d, want >= 1", got)
	}
}
