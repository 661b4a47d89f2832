package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"campus-board/contract"

	"github.com/shirou/gopsutil/process"
)

// TelemetryWorker periodically logs self metrics (CPU, RSS) together with the
// registry occupancy so operators can correlate load with room activity.
type TelemetryWorker struct {
	log      *slog.Logger
	registry contract.Registry
	interval time.Duration
}

func NewTelemetryWorker(log *slog.Logger, registry contract.Registry, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, registry: registry, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			rooms, sessions := w.registry.Stats()
			w.log.Info("Server telemetry",
				"status", status,
				"cpu_percent", cpu,
				"ram_bytes", rss,
				"active_rooms", rooms,
				"active_sessions", sessions)
		}
	}
}

// selfStats retrieves technical metrics (Memory, CPU, and OS Status) for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
