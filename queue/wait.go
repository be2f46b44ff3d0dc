package queue

import (
	"context"
	"sync"
)

// waitWhile blocks on cond for as long as blocked reports true. cond.L must be
// held by the caller and is held again when waitWhile returns.
//
// A nil error means blocked() is false. A waiter that finds the state
// unblocked proceeds even if ctx has ended meanwhile, so a signal it was
// handed is never lost.
func waitWhile(ctx context.Context, cond *sync.Cond, blocked func() bool) error {
	if !blocked() {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() {
		cond.L.Lock()
		defer cond.L.Unlock()
		cond.Broadcast()
	})
	defer stop()

	for blocked() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cond.Wait()
	}

	return nil
}
