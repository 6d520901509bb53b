package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
)

// Profiler tracks frame rate and memory statistics and logs them at a fixed interval.
type Profiler struct {
	log            logger.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler that reports through log.
//
// Parameters:
//   - log: destination for the periodic stats line, nil disables output
//   - interval: time between reports, non-positive means one second
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(log logger.Logger, interval time.Duration) *Profiler {
	if log == nil {
		log = logger.NewNop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		log:            log,
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Tick should be called once per rendered frame. When the interval has elapsed it logs
// FPS, heap usage, allocation rate, GC count and pause times, and process memory.
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	const mb = 1024 * 1024
	allocRate := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / mb / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.log.Info("frame stats",
		logger.F("fps", float64(p.frameCount)/elapsed.Seconds()),
		logger.F("heap_mb", float64(p.memStats.Alloc)/mb),
		logger.F("alloc_rate_mb_s", allocRate),
		logger.F("gc_count", gcCount),
		logger.F("gc_last_pause_us", lastPauseUs),
		logger.F("gc_max_pause_us", maxPauseUs),
		logger.F("sys_mb", float64(p.memStats.Sys)/mb),
	)

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
