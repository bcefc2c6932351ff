package monitoring

import (
	"log"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const historyLimit = 100

// PerformanceSnapshot captures host resource usage at a point in time.
type PerformanceSnapshot struct {
	Timestamp      time.Time `json:"timestamp"`
	CPUPercent     float64   `json:"cpu_percent"`
	MemoryPercent  float64   `json:"memory_percent"`
	MemoryUsedMB   float64   `json:"memory_used_mb"`
	DiskPercent    float64   `json:"disk_percent"`
	GoroutineHint  int       `json:"goroutine_hint,omitempty"`
	CollectionTime float64   `json:"collection_time_ms"`
}

// BusinessMetrics tracks arena activity counters since process start.
type BusinessMetrics struct {
	SimulationsStarted   int64     `json:"simulations_started"`
	SimulationsCompleted int64     `json:"simulations_completed"`
	RoundsExecuted       int64     `json:"rounds_executed"`
	BriefsCreated        int64     `json:"briefs_created"`
	ContentScans         int64     `json:"content_scans"`
	InsightRequests      int64     `json:"insight_requests"`
	StartedAt            time.Time `json:"started_at"`
	UptimeSeconds        float64   `json:"uptime_seconds"`
}

// HealthStatus summarizes whether the host is within operating thresholds.
type HealthStatus struct {
	Healthy  bool                 `json:"healthy"`
	Warnings []string             `json:"warnings,omitempty"`
	Snapshot *PerformanceSnapshot `json:"snapshot,omitempty"`
}

type SystemMonitor struct {
	mu        sync.RWMutex
	history   []PerformanceSnapshot
	metrics   BusinessMetrics
	cpuLimit  float64
	memLimit  float64
	diskLimit float64
}

func NewSystemMonitor() *SystemMonitor {
	return &SystemMonitor{
		metrics:   BusinessMetrics{StartedAt: time.Now()},
		cpuLimit:  90,
		memLimit:  90,
		diskLimit: 95,
	}
}

// Collect samples host metrics and appends them to the bounded history.
func (m *SystemMonitor) Collect() PerformanceSnapshot {
	start := time.Now()
	snap := PerformanceSnapshot{Timestamp: start}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	} else if err != nil {
		log.Printf("Monitoring: CPU sample failed: %v", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemoryPercent = vm.UsedPercent
		snap.MemoryUsedMB = float64(vm.Used) / 1024 / 1024
	} else {
		log.Printf("Monitoring: memory sample failed: %v", err)
	}
	if du, err := disk.Usage("/"); err == nil {
		snap.DiskPercent = du.UsedPercent
	} else {
		log.Printf("Monitoring: disk sample failed: %v", err)
	}
	snap.CollectionTime = float64(time.Since(start).Microseconds()) / 1000

	m.mu.Lock()
	m.history = append(m.history, snap)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.mu.Unlock()

	return snap
}

// History returns a copy of the recorded snapshots, oldest first.
func (m *SystemMonitor) History() []PerformanceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PerformanceSnapshot, len(m.history))
	copy(out, m.history)
	return out
}

// Health evaluates the latest sample against the configured thresholds.
func (m *SystemMonitor) Health() HealthStatus {
	snap := m.Collect()
	status := HealthStatus{Healthy: true, Snapshot: &snap}

	if snap.CPUPercent > m.cpuLimit {
		status.Healthy = false
		status.Warnings = append(status.Warnings, "CPU usage above threshold")
	}
	if snap.MemoryPercent > m.memLimit {
		status.Healthy = false
		status.Warnings = append(status.Warnings, "Memory usage above threshold")
	}
	if snap.DiskPercent > m.diskLimit {
		status.Healthy = false
		status.Warnings = append(status.Warnings, "Disk usage above threshold")
	}
	return status
}

func (m *SystemMonitor) RecordSimulationStarted() {
	m.mu.Lock()
	m.metrics.SimulationsStarted++
	m.mu.Unlock()
}

func (m *SystemMonitor) RecordSimulationCompleted(rounds int) {
	m.mu.Lock()
	m.metrics.SimulationsCompleted++
	m.metrics.RoundsExecuted += int64(rounds)
	m.mu.Unlock()
}

func (m *SystemMonitor) RecordBriefCreated() {
	m.mu.Lock()
	m.metrics.BriefsCreated++
	m.mu.Unlock()
}

func (m *SystemMonitor) RecordContentScan() {
	m.mu.Lock()
	m.metrics.ContentScans++
	m.mu.Unlock()
}

func (m *SystemMonitor) RecordInsightRequest() {
	m.mu.Lock()
	m.metrics.InsightRequests++
	m.mu.Unlock()
}

// Business returns the counters with uptime filled in.
func (m *SystemMonitor) Business() BusinessMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.metrics
	out.UptimeSeconds = time.Since(out.StartedAt).Seconds()
	return out
}
