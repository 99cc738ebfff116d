package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/domain"
)

var errSendBufferFull = errors.New("send buffer full")

// fakeConn captures every frame the orchestrator enqueues on it.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
	full   bool // simulate backpressure
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return errSendBufferFull
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// messages decodes every captured frame, in delivery order.
func (f *fakeConn) messages(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("unmarshal captured frame %q: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

// byType returns the captured messages with the given type field.
func (f *fakeConn) byType(t *testing.T, msgType string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, m := range f.messages(t) {
		if m["type"] == msgType {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

func newTestOrchestrator() *Orchestrator {
	return &Orchestrator{
		Registry: NewRegistry(),
		Rooms:    NewDirectory(),
	}
}

// connect registers a new fake connection under id.
func connect(o *Orchestrator, id core.ConnectionID) *fakeConn {
	fc := &fakeConn{}
	o.Connect(id, fc, context.CancelFunc(func() {}))
	return fc
}

func identity(user, name string, role domain.Role) domain.Identity {
	return domain.Identity{UserID: domain.UserID(user), Username: name, Role: role}
}
