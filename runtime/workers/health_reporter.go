package workers

import (
	"context"
	"log/slog"
	"os"
	"time"
	"wa-directory/contract"
	"wa-directory/domain"

	"github.com/shirou/gopsutil/process"
)

type backlogger interface {
	Backlog() (length, capacity int)
}

type lockTable interface {
	Len() int
}

type HealthSnapshot struct {
	SessionState    domain.SessionState
	EventBacklog    int
	EventCapacity   int
	KeysLocked      int
	RSSBytes        uint64
	CPUPercent      float64
	ProcessSampleOK bool
}

// HealthReporter periodically logs the state of the directory: session link,
// pending events, identities under mutation and process usage.
// Reading these values never blocks the components being observed.
type HealthReporter struct {
	log      *slog.Logger
	interval time.Duration
	session  contract.Session
	events   backlogger
	locks    lockTable
	process  *process.Process
}

func NewHealthReporter(log *slog.Logger, interval time.Duration,
	session contract.Session, events backlogger, locks lockTable) *HealthReporter {
	return &HealthReporter{log: log, interval: interval, session: session, events: events, locks: locks}
}

func (w *HealthReporter) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	w.process = p

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health reporter")
			return nil
		case <-ticker.C:
			s := w.Snapshot()
			level := slog.LevelInfo
			if s.SessionState != domain.SessionOpen || s.EventBacklog == s.EventCapacity {
				level = slog.LevelWarn
			}
			w.log.Log(ctx, level, "Directory health",
				"session", s.SessionState,
				"event_backlog", s.EventBacklog,
				"event_capacity", s.EventCapacity,
				"keys_locked", s.KeysLocked,
				"rss_bytes", s.RSSBytes,
				"cpu_percent", s.CPUPercent)
		}
	}
}

func (w *HealthReporter) Snapshot() HealthSnapshot {
	length, capacity := w.events.Backlog()
	s := HealthSnapshot{
		SessionState:  w.session.State(),
		EventBacklog:  length,
		EventCapacity: capacity,
		KeysLocked:    w.locks.Len(),
	}
	if w.process == nil {
		return s
	}
	memInfo, err := w.process.MemoryInfo()
	if err != nil {
		w.log.Debug("Failed to collect memory stats", "error", err)
		return s
	}
	cpuPercent, err := w.process.CPUPercent()
	if err != nil {
		w.log.Debug("Failed to collect cpu stats", "error", err)
		return s
	}
	s.RSSBytes = memInfo.RSS
	s.CPUPercent = cpuPercent
	s.ProcessSampleOK = true
	return s
}
