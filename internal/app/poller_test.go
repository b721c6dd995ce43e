package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingLoader struct {
	mu     sync.Mutex
	calls  int
	target int
	err    error
	done   chan struct{}
}

func (l *countingLoader) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.calls == l.target {
		close(l.done)
	}
	return l.err
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func newCountingLoader(target int, err error) *countingLoader {
	return &countingLoader{target: target, err: err, done: make(chan struct{})}
}

func TestStartPoller_ReloadsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := newCountingLoader(2, nil)
	StartPoller(ctx, loader, 10*time.Millisecond, zerolog.Nop())

	select {
	case <-loader.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not reload twice")
	}
}

func TestStartPoller_FailuresKeepFixedCadence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Eight reloads at 20ms take ~160ms on a fixed ticker; any doubling delay
	// after failures would push the eighth past the deadline.
	loader := newCountingLoader(8, errors.New("service down"))
	StartPoller(ctx, loader, 20*time.Millisecond, zerolog.Nop())

	select {
	case <-loader.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("calls = %d after 2s, want 8 at a fixed 20ms cadence", loader.count())
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loader := newCountingLoader(-1, nil)
	StartPoller(ctx, loader, 10*time.Millisecond, zerolog.Nop())

	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := loader.count()
	time.Sleep(50 * time.Millisecond)
	if got := loader.count(); got != stopped {
		t.Fatalf("calls = %d after cancel, want %d", got, stopped)
	}
}

func TestStartPoller_DisabledForZeroInterval(t *testing.T) {
	loader := newCountingLoader(-1, nil)
	StartPoller(context.Background(), loader, 0, zerolog.Nop())

	time.Sleep(20 * time.Millisecond)
	if got := loader.count(); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := configForTest()
	applyOverrides(&cfg, Options{APIURL: " http://localhost:8089 ", RefreshEvery: 15})

	if cfg.APIURL != "http://localhost:8089" {
		t.Fatalf("APIURL = %q, want flag override", cfg.APIURL)
	}
	if cfg.RefreshInterval != 15*time.Second {
		t.Fatalf("RefreshInterval = %v, want 15s", cfg.RefreshInterval)
	}

	cfg = configForTest()
	applyOverrides(&cfg, Options{})
	if cfg.APIURL != "https://example.test" || cfg.RefreshInterval != 0 {
		t.Fatalf("config = %+v, want unchanged without overrides", cfg)
	}
}
