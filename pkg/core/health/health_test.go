package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestStatus_Constants(t *testing.T) {
	if StatusHealthy != "healthy" {
		t.Errorf("StatusHealthy = %v, want healthy", StatusHealthy)
	}
	if StatusUnhealthy != "unhealthy" {
		t.Errorf("StatusUnhealthy = %v, want unhealthy", StatusUnhealthy)
	}
	if StatusDegraded != "degraded" {
		t.Errorf("StatusDegraded = %v, want degraded", StatusDegraded)
	}
	if StatusUnknown != "unknown" {
		t.Errorf("StatusUnknown = %v, want unknown", StatusUnknown)
	}
}

func TestNewChecker(t *testing.T) {
	checker := NewChecker("test-checker", func(ctx context.Context) CheckResult {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "test passed",
		}
	})

	if checker.Name() != "test-checker" {
		t.Errorf("Name() = %v, want test-checker", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}
	if result.Message != "test passed" {
		t.Errorf("Message = %v, want 'test passed'", result.Message)
	}
}

func TestRegistry_RegisterAndCheck(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	checker1 := NewChecker("db", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "DB connected"}
	})
	checker2 := NewChecker("cache", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "Cache available"}
	})

	registry.Register(checker1)
	registry.Register(checker2)

	report := registry.Check(context.Background())

	if report.Service != "fnc-server" {
		t.Errorf("Service = %v, want fnc-server", report.Service)
	}
	if report.Version != "0.3.0" {
		t.Errorf("Version = %v, want 0.3.0", report.Version)
	}
	if report.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Errorf("Checks count = %v, want 2", len(report.Checks))
	}
}

func TestRegistry_RegisterFunc(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	registry.RegisterFunc("memory", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "Memory OK"}
	})

	report := registry.Check(context.Background())

	if len(report.Checks) != 1 {
		t.Errorf("Checks count = %v, want 1", len(report.Checks))
	}
	if report.Checks[0].Name != "memory" {
		t.Errorf("Check name = %v, want memory", report.Checks[0].Name)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	registry.RegisterFunc("temp", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	report1 := registry.Check(context.Background())
	if len(report1.Checks) != 1 {
		t.Errorf("Before unregister: Checks count = %v, want 1", len(report1.Checks))
	}

	registry.Unregister("temp")

	report2 := registry.Check(context.Background())
	if len(report2.Checks) != 0 {
		t.Errorf("After unregister: Checks count = %v, want 0", len(report2.Checks))
	}
}

func TestRegistry_OverallStatus_Unhealthy(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	registry.RegisterFunc("healthy-check", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})
	registry.RegisterFunc("unhealthy-check", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusUnhealthy}
	})

	report := registry.Check(context.Background())

	if report.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", report.Status)
	}
}

func TestRegistry_OverallStatus_Degraded(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	registry.RegisterFunc("healthy-check", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})
	registry.RegisterFunc("degraded-check", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusDegraded}
	})

	report := registry.Check(context.Background())

	if report.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", report.Status)
	}
}

func TestRegistry_CheckWithTimeout(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	registry.RegisterFunc("fast-check", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	report := registry.CheckWithTimeout(5 * time.Second)

	if report.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", report.Status)
	}
}

func TestRegistry_ConcurrentChecks(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	var counter int32

	for i := 0; i < 5; i++ {
		registry.RegisterFunc("check"+string(rune('A'+i)), func(ctx context.Context) CheckResult {
			atomic.AddInt32(&counter, 1)
			time.Sleep(10 * time.Millisecond) // Simulate work
			return CheckResult{Status: StatusHealthy}
		})
	}

	start := time.Now()
	report := registry.Check(context.Background())
	duration := time.Since(start)

	if atomic.LoadInt32(&counter) != 5 {
		t.Errorf("Counter = %v, want 5", counter)
	}

	// Checks should run concurrently, so total time should be close to 10ms, not 50ms
	if duration > 100*time.Millisecond {
		t.Errorf("Duration = %v, expected concurrent execution", duration)
	}

	if len(report.Checks) != 5 {
		t.Errorf("Checks count = %v, want 5", len(report.Checks))
	}
}

func TestRegistry_Uptime(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")

	time.Sleep(10 * time.Millisecond)

	report := registry.Check(context.Background())

	if report.Uptime < 10*time.Millisecond {
		t.Errorf("Uptime = %v, expected >= 10ms", report.Uptime)
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{
		Service: "fnc-server",
		Status:  StatusHealthy,
		Uptime:  1 * time.Hour,
		Checks:  []CheckResult{{}, {}},
	}

	str := report.String()

	if str == "" {
		t.Error("String() returned empty")
	}
	if len(str) < 10 {
		t.Errorf("String() too short: %v", str)
	}
}

func TestStatus_Serving(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusHealthy, true},
		{StatusDegraded, true},
		{StatusUnhealthy, false},
		{StatusUnknown, false},
	}
	for _, tt := range tests {
		if got := tt.status.Serving(); got != tt.want {
			t.Errorf("Expected %s.Serving() = %v, got %v", tt.status, tt.want, got)
		}
	}
}

func TestErrorCheck(t *testing.T) {
	ok := ErrorCheck("store", StatusUnhealthy, func(ctx context.Context) error { return nil })
	if r := ok.Check(context.Background()); r.Status != StatusHealthy {
		t.Errorf("Expected healthy, got %v", r.Status)
	}

	bad := ErrorCheck("store", StatusDegraded, func(ctx context.Context) error {
		return errors.New("database is locked")
	})
	r := bad.Check(context.Background())
	if r.Status != StatusDegraded {
		t.Errorf("Expected degraded, got %v", r.Status)
	}
	if r.Message != "database is locked" {
		t.Errorf("Expected error text as message, got %q", r.Message)
	}
}

func TestRegistry_ChecksSortedAndFailing(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")
	registry.Register(ErrorCheck("store", StatusUnhealthy, func(ctx context.Context) error {
		return errors.New("closed")
	}))
	registry.RegisterFunc("engine", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})
	registry.RegisterFunc("cache", func(ctx context.Context) CheckResult {
		return CheckResult{}
	})

	report := registry.Check(context.Background())
	if report.Status != StatusUnhealthy {
		t.Errorf("Expected unhealthy, got %v", report.Status)
	}
	names := []string{report.Checks[0].Name, report.Checks[1].Name, report.Checks[2].Name}
	if names[0] != "cache" || names[1] != "engine" || names[2] != "store" {
		t.Errorf("Expected checks in name order, got %v", names)
	}
	if report.Checks[0].Status != StatusUnknown {
		t.Errorf("Expected empty status to become unknown, got %v", report.Checks[0].Status)
	}

	failing := report.Failing()
	if len(failing) != 2 {
		t.Errorf("Expected 2 failing checks, got %d", len(failing))
	}
}

func TestRegistry_Watch(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")
	registry.RegisterFunc("engine", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	ctx, cancel := context.WithCancel(context.Background())
	reports := make(chan *Report, 10)
	done := make(chan struct{})
	go func() {
		registry.Watch(ctx, 5*time.Millisecond, func(r *Report) {
			select {
			case reports <- r:
			default:
			}
		})
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case r := <-reports:
			if r.Status != StatusHealthy {
				t.Errorf("Expected healthy report, got %v", r.Status)
			}
		case <-time.After(time.Second):
			t.Fatal("Expected periodic reports")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected Watch to return after cancel")
	}
}

func TestRegistry_WatchDisabled(t *testing.T) {
	registry := NewRegistry("fnc-server", "0.3.0")
	called := false
	registry.Watch(context.Background(), 0, func(*Report) { called = true })
	if called {
		t.Error("Expected no reports with a zero interval")
	}
}
