package httpclient

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestManager_AcquireReturnsSharedAfterStart(t *testing.T) {
	m := NewManager(2*time.Second, zap.NewNop())
	m.Start()

	first := m.Acquire()
	second := m.Acquire()
	if first == nil {
		t.Fatal("Acquire() returned nil after Start()")
	}
	if first != second {
		t.Error("Acquire() returned distinct clients after Start(); want the shared instance")
	}
	if first.Timeout != 2*time.Second {
		t.Errorf("client timeout = %v, want 2s", first.Timeout)
	}
}

// Before Start, every caller must get its own fallback instance; none of them
// may be registered as the shared client.
func TestManager_AcquireBeforeStartReturnsDistinctFallbacks(t *testing.T) {
	m := NewManager(2*time.Second, zap.NewNop())

	first := m.Acquire()
	second := m.Acquire()
	if first == nil || second == nil {
		t.Fatal("Acquire() returned nil before Start()")
	}
	if first == second {
		t.Error("Acquire() returned the same fallback instance twice; want distinct instances")
	}
	if m.Started() {
		t.Error("Started() = true before Start(); fallback must not become the shared client")
	}

	m.Start()
	shared := m.Acquire()
	if shared == first || shared == second {
		t.Error("shared client matches a pre-start fallback instance")
	}
}

func TestManager_StopDetachesSharedClient(t *testing.T) {
	m := NewManager(time.Second, zap.NewNop())
	m.Start()
	shared := m.Acquire()

	m.Stop()
	if m.Started() {
		t.Error("Started() = true after Stop()")
	}

	after := m.Acquire()
	if after == shared {
		t.Error("Acquire() after Stop() returned the stopped client")
	}
}

func TestManager_Started(t *testing.T) {
	m := NewManager(time.Second, zap.NewNop())
	if m.Started() {
		t.Error("Started() = true before Start()")
	}
	m.Start()
	if !m.Started() {
		t.Error("Started() = false after Start()")
	}
}
