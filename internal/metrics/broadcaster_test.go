package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

func TestBroadcasterPushesSnapshots(t *testing.T) {
	p := &fakeProvider{nodes: []*hardware.Node{cpuLoadNode(42)}}
	reader, _ := newTestReader(p)
	reader.now = time.Now

	var (
		mu    sync.Mutex
		seen  []domain.Snapshot
		first = make(chan struct{})
		once  sync.Once
	)
	sink := func(s domain.Snapshot) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
		once.Do(func() { close(first) })
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewBroadcaster(5*time.Millisecond, reader, sink, discardLogger()).Start(ctx)
		close(done)
	}()

	select {
	case <-first:
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot pushed")
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 {
		t.Fatal("sink never called")
	}
	wantVal(t, "cpu.load", seen[0].CPU.Load, 42)
}

func TestBroadcasterStopsOnCancel(t *testing.T) {
	p := &fakeProvider{nodes: []*hardware.Node{cpuLoadNode(1)}}
	reader, _ := newTestReader(p)
	reader.now = time.Now

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		NewBroadcaster(time.Hour, reader, func(domain.Snapshot) {}, discardLogger()).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcaster did not stop on cancel")
	}
}

func TestBroadcasterNilSinkIsInert(t *testing.T) {
	p := &fakeProvider{nodes: []*hardware.Node{cpuLoadNode(1)}}
	reader, _ := newTestReader(p)
	reader.now = time.Now

	b := NewBroadcaster(time.Hour, reader, nil, discardLogger())
	b.tick(context.Background())

	if got := p.refreshCount(); got != 0 {
		t.Errorf("refreshes with nil sink: got %d, want 0", got)
	}
}
