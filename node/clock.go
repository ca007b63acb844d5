package node

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/store"
)

var heightKey = common.Bytes("node/height")

// Clock produces the logical block height. The height starts at 1, or at
// the last persisted height, and advances once per interval.
type Clock struct {
	height   uint64
	interval time.Duration
	store    store.Store

	wg     *sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClock creates a clock persisting its height in the store. A
// non-positive interval disables the ticker; the height then only moves
// with Advance.
func NewClock(s store.Store, interval time.Duration) (*Clock, error) {
	height := uint64(1)
	var persisted uint64
	err := s.Get(heightKey, &persisted)
	if err == nil && persisted > 0 {
		height = persisted
	} else if err != nil && err != store.ErrKeyNotFound {
		return nil, err
	}
	return &Clock{
		height:   height,
		interval: interval,
		store:    s,
		wg:       &sync.WaitGroup{},
	}, nil
}

// Height returns the current block height
func (c *Clock) Height() uint64 {
	return atomic.LoadUint64(&c.height)
}

// Advance moves to the next block and returns its height.
func (c *Clock) Advance() uint64 {
	height := atomic.AddUint64(&c.height, 1)
	if err := c.store.Put(heightKey, height); err != nil {
		logger.Warnf("Failed to persist height %v: %v", height, err)
	}
	mHeight.Set(float64(height))
	return height
}

// Start starts the ticker.
func (c *Clock) Start(ctx context.Context) {
	c.ctx, c.cancel = context.WithCancel(ctx)
	if c.interval <= 0 {
		return
	}

	c.wg.Add(1)
	go c.mainLoop()
}

func (c *Clock) mainLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.Advance()
		}
	}
}

// Stop notifies the ticker to stop without blocking.
func (c *Clock) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Wait blocks until the ticker stops.
func (c *Clock) Wait() {
	c.wg.Wait()
}
