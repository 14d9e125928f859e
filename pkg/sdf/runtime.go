package sdf

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// RuntimeConfig holds process-wide evaluation settings.
type RuntimeConfig struct {
	// Workers bounds concurrent chunks. Zero or negative means runtime.NumCPU().
	Workers int
	// Logger receives build and evaluation diagnostics. Nil means no logging.
	Logger *zap.Logger
}

type runtimeState struct {
	workers int
	logger  *zap.Logger
}

var (
	rtMu sync.RWMutex
	rt   *runtimeState

	nopLogger = zap.NewNop()
)

// Init sets up the process-wide runtime. It must be called before
// SignedDistanceField or (*Index).Evaluate. Calling it again with the same
// settings is a no-op; different settings replace the previous ones for all
// later calls.
func Init(cfg RuntimeConfig) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger
	}

	rtMu.Lock()
	defer rtMu.Unlock()
	if rt != nil && rt.workers == workers && rt.logger == logger {
		return
	}
	rt = &runtimeState{workers: workers, logger: logger}
	logger.Debug("sdf runtime initialized", zap.Int("workers", workers))
}

// Initialized reports whether Init has been called.
func Initialized() bool {
	rtMu.RLock()
	defer rtMu.RUnlock()
	return rt != nil
}

// Workers returns the configured worker count, or 0 before Init.
func Workers() int {
	rtMu.RLock()
	defer rtMu.RUnlock()
	if rt == nil {
		return 0
	}
	return rt.workers
}

// Reset drops the runtime state. Intended for tests.
func Reset() {
	rtMu.Lock()
	rt = nil
	rtMu.Unlock()
}

func currentRuntime() (*runtimeState, error) {
	rtMu.RLock()
	defer rtMu.RUnlock()
	if rt == nil {
		return nil, ErrNotInitialized
	}
	return rt, nil
}

// runtimeLogger returns the runtime logger, or a no-op logger before Init.
func runtimeLogger() *zap.Logger {
	rtMu.RLock()
	defer rtMu.RUnlock()
	if rt == nil {
		return nopLogger
	}
	return rt.logger
}
