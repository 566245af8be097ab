package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects lifecycle hooks so tests can run them by hand
// instead of spinning up a full fx application.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called when the application requests shutdown,
// e.g. after an HTTP server startup failure.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies the test about the termination request.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
