// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"io"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

type signal struct {
	order int
	cur   atomic.Bool
	hist  []bool
}

// Trace records the state of named signals once per clock cycle.
//
// Probes update the current value of their signal on every simulation step,
// possibly from several simulation goroutines at once. Sample appends the
// current values to the signal histories; it must not be called while the
// simulation is stepping.
//
type Trace struct {
	signals *xsync.MapOf[string, *signal]
	n       atomic.Int64
	cycles  int
}

// NewTrace returns a new Trace. The given signal names are registered in
// order, and will be rendered first.
//
func NewTrace(names ...string) *Trace {
	t := &Trace{signals: xsync.NewMapOf[string, *signal]()}
	for _, n := range names {
		t.signal(n)
	}
	return t
}

func (t *Trace) signal(name string) *signal {
	s, _ := t.signals.LoadOrCompute(name, func() *signal {
		return &signal{
			order: int(t.n.Add(1)),
			hist:  make([]bool, t.cycles),
		}
	})
	return s
}

// Set sets the current value of the named signal. Only one goroutine should
// set a given signal.
//
func (t *Trace) Set(name string, v bool) {
	t.signal(name).cur.Store(v)
}

// Probe returns a function that sets the named signal. It can be used with
// hwsim.Output.
//
func (t *Trace) Probe(name string) func(bool) {
	s := t.signal(name)
	return func(v bool) { s.cur.Store(v) }
}

// Value returns the current value of the named signal.
//
func (t *Trace) Value(name string) bool {
	if s, ok := t.signals.Load(name); ok {
		return s.cur.Load()
	}
	return false
}

// Sample records the current value of all signals.
//
func (t *Trace) Sample() {
	t.signals.Range(func(_ string, s *signal) bool {
		s.hist = append(s.hist, s.cur.Load())
		return true
	})
	t.cycles++
}

// Cycles returns the number of samples.
//
func (t *Trace) Cycles() int { return t.cycles }

// Bits returns the recorded history of the named signal.
//
func (t *Trace) Bits(name string) []bool {
	s, ok := t.signals.Load(name)
	if !ok {
		return nil
	}
	return append([]bool(nil), s.hist...)
}

// Names returns the signal names in rendering order.
//
func (t *Trace) Names() []string {
	type entry struct {
		name  string
		order int
	}
	var es []entry
	t.signals.Range(func(n string, s *signal) bool {
		es = append(es, entry{n, s.order})
		return true
	})
	sort.Slice(es, func(i, j int) bool { return es[i].order < es[j].order })
	names := make([]string, len(es))
	for i := range es {
		names[i] = es[i].name
	}
	return names
}

// Render writes an ASCII waveform of the recorded signals, one line per signal
// and one character per cycle:
//
//	busy       _--------_
//	sout       _____-___
//
func (t *Trace) Render(w io.Writer) error {
	names := t.Names()
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteString(strings.Repeat(" ", width-len(n)+2))
		for _, v := range t.Bits(n) {
			if v {
				b.WriteByte('-')
			} else {
				b.WriteByte('_')
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
