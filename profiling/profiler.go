// Package profiling watches the frame rate and captures a CPU profile and an
// execution trace when it drops.
package profiling

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Drop detection defaults
const (
	DefaultThreshold = 55.0
	DefaultWarmup    = 3 * time.Second
	DefaultCooldown  = 10 * time.Second
	DefaultDuration  = 2 * time.Second
)

// Profiler decides when the frame rate has dropped and records what the
// process is doing at that point
type Profiler struct {
	mu          sync.Mutex
	dir         string
	logger      *log.Logger
	started     time.Time
	lastCapture time.Time
	capturing   bool

	// Threshold is the frame rate below which a capture starts
	Threshold float64
	// Warmup ignores drops right after start, while assets load
	Warmup time.Duration
	// Cooldown is the minimum time between two captures
	Cooldown time.Duration
	// Duration is how long each capture records
	Duration time.Duration
}

// New creates a profiler writing into dir, creating it if needed
func New(dir string, logger *log.Logger, now time.Time) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &Profiler{
		dir:       dir,
		logger:    logger,
		started:   now,
		Threshold: DefaultThreshold,
		Warmup:    DefaultWarmup,
		Cooldown:  DefaultCooldown,
		Duration:  DefaultDuration,
	}, nil
}

// ShouldCapture reports whether fps at now counts as a drop worth a capture,
// and reserves the capture slot if so
func (p *Profiler) ShouldCapture(fps float64, now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fps >= p.Threshold || p.capturing {
		return false
	}
	if now.Sub(p.started) < p.Warmup {
		return false
	}
	if !p.lastCapture.IsZero() && now.Sub(p.lastCapture) < p.Cooldown {
		return false
	}
	p.lastCapture = now
	p.capturing = true
	return true
}

// Observe feeds one frame rate reading. On a drop it starts a capture in the
// background and returns immediately.
func (p *Profiler) Observe(fps float64, now time.Time, reason string) {
	if !p.ShouldCapture(fps, now) {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Warn("frame rate drop, capturing profile",
		"fps", fmt.Sprintf("%.0f", fps),
		"reason", reason,
		"gc", m.NumGC,
		"heapKB", m.HeapAlloc/1024)

	base := fmt.Sprintf("fps-drop-%s-%s", now.Format("20060102-150405"), reason)
	go func() {
		defer p.finish()
		if err := p.Capture(base); err != nil {
			p.logger.Error("profile capture failed", "err", err)
		}
	}()
}

func (p *Profiler) finish() {
	p.mu.Lock()
	p.capturing = false
	p.mu.Unlock()
}

// Capture records a CPU profile and an execution trace side by side for
// p.Duration, named after base
func (p *Profiler) Capture(base string) error {
	var wg sync.WaitGroup
	var cpuErr, traceErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		cpuErr = p.captureCPU(base)
	}()
	go func() {
		defer wg.Done()
		traceErr = p.captureTrace(base)
	}()
	wg.Wait()

	if cpuErr != nil {
		return cpuErr
	}
	return traceErr
}

func (p *Profiler) captureCPU(base string) error {
	path := filepath.Join(p.dir, base+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start CPU profile: %w", err)
	}
	time.Sleep(p.Duration)
	pprof.StopCPUProfile()

	p.logger.Info("CPU profile saved", "path", path)
	return nil
}

func (p *Profiler) captureTrace(base string) error {
	path := filepath.Join(p.dir, base+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(p.Duration)
	trace.Stop()

	p.logger.Info("trace saved", "path", path)
	return nil
}

// Capturing reports whether a capture is in progress
func (p *Profiler) Capturing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capturing
}
