// Package speech narrates route instructions aloud. A Channel serializes
// utterances so guidance never talks over itself: starting a new utterance
// interrupts the one still playing.
package speech

import (
	"context"
	"log"
	"sync"

	"accessible-route-planner/internal/models"
)

// Engine is a pluggable text-to-speech backend
type Engine interface {
	Speak(ctx context.Context, text string) error
}

// EngineFunc adapts a function to the Engine interface
type EngineFunc func(ctx context.Context, text string) error

func (f EngineFunc) Speak(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Channel drives an Engine with at most one active utterance
type Channel struct {
	engine Engine

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewChannel creates a speech channel over the given engine
func NewChannel(engine Engine) *Channel {
	return &Channel{engine: engine}
}

// Announce speaks the given step, cutting off any utterance in progress.
// Speaking happens in the background; errors are logged, not returned, so a
// broken audio backend never blocks navigation.
func (c *Channel) Announce(step models.RouteStep) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer cancel()
		if err := c.engine.Speak(ctx, step.Instruction); err != nil && ctx.Err() == nil {
			log.Printf("[SPEECH] Failed to speak instruction: %v", err)
		}
	}()
}

// Stop silences the channel
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
