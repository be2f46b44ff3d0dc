package conc

import "sync"

type Group interface {
	// Go runs fn in a new goroutine tracked by the group.
	Go(fn func())
	// GoN runs fn(0) .. fn(n-1), each in its own goroutine tracked by the group.
	GoN(n int, fn func(i int))
	// Wait blocks until every goroutine started by the group has returned.
	Wait()
}

type group struct {
	wg *sync.WaitGroup
}

func NewGroup() Group {
	return &group{
		wg: &sync.WaitGroup{},
	}
}

func (g *group) Go(fn func()) {
	g.wg.Add(1)

	go func() {
		defer g.wg.Done()
		fn()
	}()
}

func (g *group) GoN(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		g.Go(func() { fn(i) })
	}
}

func (g *group) Wait() {
	g.wg.Wait()
}
