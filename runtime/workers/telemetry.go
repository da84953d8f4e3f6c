package workers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"

	"deskline/domain/event"
)

// TelemetryWorker drains the engine's best-effort event channel into
// per-kind counters and logs a periodic summary together with the
// process footprint (RSS, CPU). Purely observational: losing events is
// acceptable and nothing downstream depends on the counters.
type TelemetryWorker struct {
	mu       sync.Mutex
	log      *slog.Logger
	events   <-chan event.Event
	interval time.Duration
	counters map[event.Kind]uint64
}

func NewTelemetryWorker(log *slog.Logger, events <-chan event.Event, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{
		log:      log,
		events:   events,
		interval: interval,
		counters: make(map[event.Kind]uint64),
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-w.events:
			w.Record(evt)
		case <-ticker.C:
			w.report(proc)
		}
	}
}

// Record bumps the counter for one event.
func (w *TelemetryWorker) Record(evt event.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.counters[evt.EventKind()]++
}

// Snapshot returns a copy of the current counters.
func (w *TelemetryWorker) Snapshot() map[event.Kind]uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[event.Kind]uint64, len(w.counters))
	for kind, n := range w.counters {
		out[kind] = n
	}
	return out
}

func (w *TelemetryWorker) report(proc *process.Process) {
	snap := w.Snapshot()
	args := make([]any, 0, 2*len(snap)+4)
	for kind, n := range snap {
		args = append(args, string(kind), n)
	}

	if mem, err := proc.MemoryInfo(); err == nil {
		args = append(args, "rss_mb", mem.RSS/1024/1024)
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		args = append(args, "cpu_percent", cpu)
	}

	w.log.Info("routing telemetry", args...)
}
