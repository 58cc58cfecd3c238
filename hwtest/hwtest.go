// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides test benches that drive a serializer clock cycle by
// clock cycle, the way a host feeding a serial link would.
//
// A Driver ticks a piso.Serializer directly. A Bench mounts the serializer
// into a hwsim circuit and observes it through output probes.
//
package hwtest

import (
	"strings"

	"github.com/db47h/piso/logger"
	"github.com/pkg/errors"
)

var (
	// ErrBusyTimeout is returned by Send when the serializer stays busy
	// longer than a full word transfer.
	ErrBusyTimeout = errors.New("serializer busy for too long")
	// ErrNotAccepted is returned by Send when the serializer does not start
	// a transfer after the word was presented, like when held in reset.
	ErrNotAccepted = errors.New("word not accepted")
)

// A Sample holds the inputs applied during a clock cycle and the outputs
// observed after its rising edge.
//
type Sample struct {
	Cycle int
	// inputs
	Data  uint64
	Valid bool
	Reset bool
	// outputs
	Serial   bool
	ValidOut bool
	Busy     bool
	Done     bool
}

// Harness is implemented by test benches.
//
type Harness interface {
	// Width returns the serializer word width.
	Width() uint
	// Cycle runs one clock cycle with the given inputs.
	Cycle(data uint64, valid bool) Sample
	// ResetPulse holds the reset line for the given number of cycles (at
	// least one), then releases it.
	ResetPulse(cycles int)
	// Last returns the most recent sample. Before the first cycle, it
	// returns the zero Sample with Cycle set to -1.
	Last() Sample
}

// Send waits for the serializer to be ready, presents word for exactly one
// cycle and collects the serial bits until busy drops. The returned bits are
// in transmission order. Send returns as soon as busy drops, so that the
// next word can be sent on the following cycle.
//
func Send(h Harness, word uint64) ([]bool, error) {
	w := int(h.Width())
	smp := h.Last()
	for i := 0; smp.Busy; i++ {
		if i > w {
			return nil, errors.Wrapf(ErrBusyTimeout, "waiting to send %#x", word)
		}
		smp = h.Cycle(0, false)
	}
	smp = h.Cycle(word, true)
	if !smp.Busy {
		return nil, errors.Wrapf(ErrNotAccepted, "word %#x", word)
	}
	bits := make([]bool, 0, w)
	for smp.Busy {
		if len(bits) == w {
			return bits, errors.Wrapf(ErrBusyTimeout, "sending %#x", word)
		}
		bits = append(bits, smp.Serial)
		smp = h.Cycle(0, false)
	}
	return bits, nil
}

// Idle runs the given number of cycles with valid low.
//
func Idle(h Harness, cycles int) {
	for i := 0; i < cycles; i++ {
		h.Cycle(0, false)
	}
}

// Word returns the word formed by bits, bits[0] being the least significant.
//
func Word(bits []bool) uint64 {
	var v uint64
	for i, b := range bits {
		if b {
			v |= 1 << uint(i)
		}
	}
	return v
}

// BitString returns bits as a string of 0s and 1s in transmission order.
//
func BitString(bits []bool) string {
	var b strings.Builder
	b.Grow(len(bits))
	for _, v := range bits {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// An Option configures a Driver or Bench.
//
type Option func(c *config)

type config struct {
	spc     uint
	workers int
	log     logger.Logger
}

func newConfig(opts []Option) config {
	c := config{spc: 8, workers: 1}
	for _, o := range opts {
		o(&c)
	}
	if c.log == nil {
		c.log = logger.GetLogger()
	}
	return c
}

// WithStepsPerCycle sets the number of simulation steps per clock cycle of a
// Bench. Values below 4 are rounded up to 4. The default is 8.
//
func WithStepsPerCycle(n uint) Option {
	return func(c *config) { c.spc = n }
}

// WithWorkers sets the number of simulation goroutines of a Bench. Values
// less than or equal to 0 select GOMAXPROCS. The default is 1.
//
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithLogger sets the logger.
//
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}
