// Package debounce delays propagation of a rapidly-changing value until it
// has been stable for a quiescence window. Only the trailing edge fires: the
// last value pushed during a burst is delivered exactly once, no earlier than
// the configured delay after the final push.
package debounce

import "time"

// Debouncer debounces a stream of values of type T.
type Debouncer[T any] struct {
	delay time.Duration
	in    chan T
	out   chan T
	done  chan struct{}
}

// New creates a debouncer with the given quiescence window and starts its
// internal loop. Callers must call Stop when finished.
func New[T any](delay time.Duration) *Debouncer[T] {
	d := &Debouncer[T]{
		delay: delay,
		in:    make(chan T),
		out:   make(chan T, 1),
		done:  make(chan struct{}),
	}
	go d.loop()
	return d
}

// Push submits a new value. Any pending propagation is cancelled and the
// quiescence window restarts.
func (d *Debouncer[T]) Push(v T) {
	select {
	case d.in <- v:
	case <-d.done:
	}
}

// Out returns the channel on which settled values are delivered.
func (d *Debouncer[T]) Out() <-chan T {
	return d.out
}

// Stop terminates the debouncer. A pending value that has not yet settled is
// dropped.
func (d *Debouncer[T]) Stop() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
}

func (d *Debouncer[T]) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending T
	)

	for {
		select {
		case v := <-d.in:
			pending = v
			if timer == nil {
				timer = time.NewTimer(d.delay)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(d.delay)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case d.out <- pending:
			case <-d.done:
				return
			}

		case <-d.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
