package calculator

import (
	"context"
	"sync"
)

// CalcHub allows one background run at a time and lets another goroutine stop it.
type CalcHub struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCalcHub() *CalcHub {
	return &CalcHub{}
}

// StartSignal runs f in a new goroutine. It returns ErrRunning if the previous
// run has not finished.
func (ch *CalcHub) StartSignal(parent context.Context, f func(ctx context.Context)) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.running() {
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	ch.cancel, ch.done = cancel, done
	go func() {
		defer close(done)
		defer cancel()
		f(ctx)
	}()
	return nil
}

// StopSignal cancels the current run and waits for it to return. It reports
// whether a run was active.
func (ch *CalcHub) StopSignal() bool {
	ch.mu.Lock()
	if !ch.running() {
		ch.mu.Unlock()
		return false
	}
	cancel, done := ch.cancel, ch.done
	ch.mu.Unlock()

	cancel()
	<-done
	return true
}

func (ch *CalcHub) Running() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.running()
}

func (ch *CalcHub) running() bool {
	if ch.done == nil {
		return false
	}
	select {
	case <-ch.done:
		return false
	default:
		return true
	}
}
