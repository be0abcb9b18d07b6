package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Ticks           uint64
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type storageBinder interface {
	Init(storage *Storage)
}

type queryExecutor interface {
	Execute()
}

type systemEntry struct {
	system  System
	queries []queryExecutor

	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs its systems in registration order, one full pass per tick.
// Nothing runs concurrently: a system always observes every mutation made by
// the systems registered before it in the same tick.
type Scheduler struct {
	storage  *Storage
	systems  []*systemEntry
	commands *Commands
	tick     uint64
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register appends system to the tick order and binds its exported Query and
// Singleton fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	entry := &systemEntry{
		system:      system,
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	}
	entry.queries = s.bindFields(system)
	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	if named, ok := system.(Named); ok {
		return named.Name()
	}
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) []queryExecutor {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	value = value.Elem()

	var queries []queryExecutor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		target := field.Addr().Interface()
		binder, ok := target.(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := target.(queryExecutor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once runs one tick with the given delta time in seconds, then applies the
// commands queued during the tick.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(s.tick, dt, s.storage, s.commands)

	for _, entry := range s.systems {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
	s.tick++
}

func (e *systemEntry) record(d time.Duration) {
	e.executionCount++
	e.lastDuration = d
	e.totalDuration += d
	e.minDuration = min(e.minDuration, d)
	e.maxDuration = max(e.maxDuration, d)
}

// Run ticks every interval until ctx is cancelled. dt is the real time
// elapsed since the previous tick, so a late tick carries a larger dt.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Tick returns the number of completed ticks.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Storage returns the storage systems are bound to.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Ticks:       s.tick,
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		var avg time.Duration
		minDuration := entry.minDuration
		if entry.executionCount > 0 {
			avg = entry.totalDuration / time.Duration(entry.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			ExecutionCount: entry.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    entry.maxDuration,
			AvgDuration:    avg,
			LastDuration:   entry.lastDuration,
			TotalDuration:  entry.totalDuration,
		}
		stats.TotalExecutions += entry.executionCount
	}

	return stats
}
