package pipeline

import (
	"context"
	"sync"
	"time"
)

// Event is one lifecycle transition of a generation job. No partial diagram
// data travels on this channel; stages only.
type Event struct {
	JobID string    `json:"jobId"`
	Stage string    `json:"stage"`
	At    time.Time `json:"at"`
}

// StatusBroker fans out job stage events to websocket subscribers.
type StatusBroker struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewStatusBroker() *StatusBroker {
	return &StatusBroker{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe returns a channel of events for jobID. The subscription is torn
// down when ctx is canceled.
func (b *StatusBroker) Subscribe(ctx context.Context, jobID string) <-chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	if b.subs[jobID] == nil {
		b.subs[jobID] = make(map[chan Event]struct{})
	}
	b.subs[jobID][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if set, ok := b.subs[jobID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(b.subs, jobID)
			}
		}
		b.mu.Unlock()
	}()
	return ch
}

// Publish delivers a stage event to all current subscribers of jobID.
// Slow subscribers drop events rather than blocking the pipeline.
func (b *StatusBroker) Publish(jobID, stage string) {
	ev := Event{JobID: jobID, Stage: stage, At: time.Now()}
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[jobID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
