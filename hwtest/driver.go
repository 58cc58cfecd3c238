// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"github.com/db47h/piso"
	"github.com/db47h/piso/logger"
)

// Driver drives a piso.Serializer directly, one Tick per cycle.
//
type Driver struct {
	s       *piso.Serializer
	samples []Sample
	log     logger.Logger
}

var _ Harness = (*Driver)(nil)

// NewDriver returns a new Driver for s. Only the WithLogger option applies.
//
func NewDriver(s *piso.Serializer, opts ...Option) *Driver {
	cfg := newConfig(opts)
	return &Driver{s: s, log: cfg.log}
}

// Serializer returns the driven serializer.
//
func (d *Driver) Serializer() *piso.Serializer { return d.s }

func (d *Driver) Width() uint { return d.s.Width() }

func (d *Driver) Cycle(data uint64, valid bool) Sample {
	d.s.Tick(data, valid)
	return d.record(data, valid)
}

func (d *Driver) record(data uint64, valid bool) Sample {
	smp := Sample{
		Cycle:    len(d.samples),
		Data:     data,
		Valid:    valid,
		Reset:    d.s.InReset(),
		Serial:   d.s.SerialBit(),
		ValidOut: d.s.ValidOut(),
		Busy:     d.s.Busy(),
		Done:     d.s.Done(),
	}
	d.samples = append(d.samples, smp)
	return smp
}

func (d *Driver) ResetPulse(cycles int) {
	if cycles < 1 {
		cycles = 1
	}
	d.log.Debug("reset pulse", "cycles", cycles)
	d.s.AssertReset()
	Idle(d, cycles)
	d.s.ReleaseReset()
}

func (d *Driver) Last() Sample {
	if len(d.samples) == 0 {
		return Sample{Cycle: -1}
	}
	return d.samples[len(d.samples)-1]
}

// Samples returns all samples recorded so far.
//
func (d *Driver) Samples() []Sample { return d.samples }

// Send sends a word. See the package level Send function.
//
func (d *Driver) Send(word uint64) ([]bool, error) {
	bits, err := Send(d, word)
	if err != nil {
		return bits, err
	}
	d.log.Info("word sent", "word", word, "bits", BitString(bits), "cycle", d.Last().Cycle)
	return bits, nil
}
