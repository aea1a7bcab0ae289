package compare

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversInOrder(t *testing.T) {
	d := NewDispatcher()
	var log []string
	d.Subscribe(
		func(p []Point) { log = append(log, "a-move") },
		func() { log = append(log, "a-release") },
	)
	d.Subscribe(
		func(p []Point) { log = append(log, "b-move") },
		func() { log = append(log, "b-release") },
	)

	d.Move(Point{X: 1})
	d.Release()
	assert.Equal(t, []string{"a-move", "b-move", "a-release", "b-release"}, log)
}

func TestSubscriptionCancel(t *testing.T) {
	d := NewDispatcher()
	moves, releases := 0, 0
	sub := d.Subscribe(func([]Point) { moves++ }, func() { releases++ })
	assert.True(t, sub.Active())
	assert.Equal(t, 1, d.Len())

	sub.Cancel()
	sub.Cancel()
	assert.False(t, sub.Active())
	assert.Equal(t, 0, d.Len())

	d.Move(Point{})
	d.Release()
	assert.Zero(t, moves)
	assert.Zero(t, releases)

	var nilSub *Subscription
	nilSub.Cancel()
	assert.False(t, nilSub.Active())
}

func TestSubscriptionCancelFromHandler(t *testing.T) {
	d := NewDispatcher()
	var first, second *Subscription
	secondMoves := 0
	first = d.Subscribe(func([]Point) { second.Cancel() }, nil)
	second = d.Subscribe(func([]Point) { secondMoves++ }, nil)

	d.Move(Point{})
	assert.Zero(t, secondMoves)
	assert.Equal(t, 1, d.Len())
	first.Cancel()
	assert.Equal(t, 0, d.Len())
}

func TestDispatcherConcurrentCancel(t *testing.T) {
	d := NewDispatcher()
	subs := make([]*Subscription, 100)
	for i := range subs {
		subs[i] = d.Subscribe(func([]Point) {}, func() {})
	}

	var wg sync.WaitGroup
	for _, s := range subs {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Cancel()
		}()
		go func() {
			defer wg.Done()
			d.Move(Point{X: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, d.Len())
}
