package events

import (
	"context"
	"hash/fnv"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// BidEvent is emitted after every accepted bid so a presentation layer can
// push live price updates.
type BidEvent struct {
	AuctionID string `json:"auction_id"`
	BidderID  string `json:"bidder_id"`
	NewPrice  int64  `json:"new_price"`
	BidCount  int    `json:"bid_count"`
}

// Publisher is the outbound seam the bidding engine emits events through.
type Publisher interface {
	Publish(event BidEvent)
}

// Dispatcher fans bid events out to a handler over a fixed set of workers,
// sharded by auction id so events for one auction are delivered in order.
type Dispatcher struct {
	workers []chan BidEvent
	handler func(BidEvent)
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, handler func(BidEvent)) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan BidEvent, numWorkers),
		handler: handler,
	}
	for i := range d.workers {
		d.workers[i] = make(chan BidEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, ch := range d.workers {
		go d.runWorker(ctx, ch)
	}
}

// Publish sends an event to the worker responsible for its auction.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(event BidEvent) {
	d.workers[d.shardIndex(event.AuctionID)] <- event
}

// shardIndex maps an auction id deterministically to a worker index.
func (d *Dispatcher) shardIndex(auctionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(auctionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, ch <-chan BidEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.handler(event)
		}
	}
}
