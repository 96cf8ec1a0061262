package stream

import (
	"context"
	"sync/atomic"
)

// Pump decouples a live source from the filter loop. The handoff is
// latest-frame-wins: when the consumer is still busy with the previous
// frame, a newly offered frame replaces the queued one instead of
// building a backlog, so the output tracks the camera rather than
// falling behind it.
//
// One producer, one consumer.
type Pump struct {
	ch      chan []byte
	dropped atomic.Int64
}

func NewPump() *Pump {
	return &Pump{ch: make(chan []byte, 1)}
}

// Offer hands a frame to the consumer without blocking. A frame still
// queued from the previous Offer is discarded in its favor. The pump
// owns frame until the consumer receives it, so the producer must not
// reuse the slice.
func (p *Pump) Offer(frame []byte) {
	for {
		select {
		case p.ch <- frame:
			return
		default:
		}
		select {
		case <-p.ch:
			p.dropped.Add(1)
		default:
		}
	}
}

// Next blocks until a frame arrives, the pump closes, or ctx is done.
// The second return is false once no more frames will come.
func (p *Pump) Next(ctx context.Context) ([]byte, bool) {
	select {
	case frame, ok := <-p.ch:
		if !ok {
			return nil, false
		}
		return frame, true
	case <-ctx.Done():
		return nil, false
	}
}

// Close signals the consumer that the source is finished. Offer must
// not be called afterwards.
func (p *Pump) Close() { close(p.ch) }

// Dropped reports how many frames were discarded unseen.
func (p *Pump) Dropped() int64 { return p.dropped.Load() }
