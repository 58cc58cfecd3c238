// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"strconv"

	"github.com/db47h/piso"
	"github.com/db47h/piso/hwlib"
	"github.com/db47h/piso/hwsim"
	"github.com/db47h/piso/logger"
	"github.com/pkg/errors"
)

// Signal names recorded by a Bench.
//
const (
	SigRst      = "rst"
	SigValid    = "valid"
	SigBusy     = "busy"
	SigValidOut = "valid_out"
	SigDone     = "done"
	SigSout     = "sout"
	SigRx       = "rx" // sout registered by a receiver flip-flop
)

// Bench drives a hwlib.PISO part in a hwsim circuit. The host side drives an
// active high reset, inverted into the part's rst_n input. A DFF registers the
// serial output on the receiving side.
//
// Inputs are changed on the falling edge of the clock and sampled by the
// serializer on the next rising edge. Outputs are recorded into a Trace half a
// cycle after the rising edge.
//
type Bench struct {
	c     *hwsim.Circuit
	width uint
	trace *Trace
	log   logger.Logger

	// inputs
	data  uint64
	valid bool
	rst   bool

	last Sample
}

var _ Harness = (*Bench)(nil)

// NewBench builds a new Bench for words of the given width.
// Callers must call Dispose once the Bench is no longer needed.
//
func NewBench(width uint, opts ...Option) (*Bench, error) {
	cfg := newConfig(opts)
	if _, err := piso.New(width); err != nil {
		return nil, err
	}
	if cfg.spc < 4 {
		cfg.spc = 4
	}
	b := &Bench{
		width: width,
		trace: NewTrace(SigRst, SigValid, SigBusy, SigValidOut, SigDone, SigSout, SigRx),
		log:   cfg.log.With("bench", "PISO"+strconv.Itoa(int(width))),
		last:  Sample{Cycle: -1},
	}
	bus := "[0.." + strconv.Itoa(int(width)-1) + "]"
	parts := hwsim.Parts{
		hwsim.InputN(int(width), func() uint64 { return b.data })("out" + bus + "=data" + bus),
		hwsim.Input(func() bool { return b.valid })("out=valid"),
		hwsim.Input(func() bool { return b.rst })("out=rst"),
		hwlib.Not("in=rst, out=rst_n"),
		hwlib.PISO(int(width), piso.WithLogger(b.log))(
			"data" + bus + "=data" + bus + ", valid=valid, rst_n=rst_n, " +
				"sout=sout, valid_out=valid_out, busy=busy, done=done"),
		hwlib.DFF("in=sout, out=rx"),
	}
	for _, n := range b.trace.Names() {
		parts = append(parts, hwsim.Output(b.trace.Probe(n))("in="+n))
	}
	c, err := hwsim.NewCircuit(cfg.workers, cfg.spc, parts, hwsim.WithLogger(b.log))
	if err != nil {
		return nil, errors.Wrap(err, "build bench circuit")
	}
	b.c = c
	// stop on the falling edge, ready to change inputs.
	c.Tick()
	return b, nil
}

// Dispose releases the circuit resources.
//
func (b *Bench) Dispose() { b.c.Dispose() }

// Circuit returns the simulated circuit.
//
func (b *Bench) Circuit() *hwsim.Circuit { return b.c }

// Trace returns the signal trace.
//
func (b *Bench) Trace() *Trace { return b.trace }

func (b *Bench) Width() uint { return b.width }

func (b *Bench) Cycle(data uint64, valid bool) Sample {
	b.data, b.valid = data, valid
	b.c.Tock()
	b.c.Tick()
	b.trace.Sample()
	b.last = Sample{
		Cycle:    b.last.Cycle + 1,
		Data:     data,
		Valid:    valid,
		Reset:    b.rst,
		Serial:   b.trace.Value(SigSout),
		ValidOut: b.trace.Value(SigValidOut),
		Busy:     b.trace.Value(SigBusy),
		Done:     b.trace.Value(SigDone),
	}
	return b.last
}

// SetReset sets the host side reset line. It takes effect within the next
// few simulation steps, independently of the clock.
//
func (b *Bench) SetReset(asserted bool) { b.rst = asserted }

func (b *Bench) ResetPulse(cycles int) {
	if cycles < 1 {
		cycles = 1
	}
	b.log.Debug("reset pulse", "cycles", cycles)
	b.rst = true
	Idle(b, cycles)
	b.rst = false
}

func (b *Bench) Last() Sample { return b.last }

// Send sends a word. See the package level Send function.
//
func (b *Bench) Send(word uint64) ([]bool, error) {
	bits, err := Send(b, word)
	if err != nil {
		return bits, err
	}
	b.log.Info("word sent", "word", word, "bits", BitString(bits), "cycle", b.last.Cycle)
	return bits, nil
}
