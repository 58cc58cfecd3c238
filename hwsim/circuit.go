// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/db47h/piso/logger"
	"github.com/pkg/errors"
)

// Constant wire names. These wires are always available and can be used as
// inputs by any part.
//
const (
	False = "false"
	True  = "true"
	Clk   = "clk"
)

const (
	cstFalse = iota
	cstTrue
	cstClk
	cstCount
)

// An Option configures a Circuit.
//
type Option func(c *Circuit)

// WithLogger sets the circuit logger.
//
func WithLogger(l logger.Logger) Option {
	return func(c *Circuit) { c.log = l }
}

// Circuit is a runnable circuit simulation.
//
type Circuit struct {
	s0    []bool // wire states frame #0
	s1    []bool // wire states frame #1
	cs    []Component
	wires map[string]int
	tpc   uint // steps per clock cycle
	tick  uint

	wc  []chan struct{}
	wg  sync.WaitGroup
	log logger.Logger
}

// NewCircuit builds a new circuit based on the given parts.
//
// workers is the number of goroutines used to update the state of the Circuit
// each step of the simulation. If less or equal to 0, the value of GOMAXPROCS
// will be used.
//
// stepsPerCycle is the number of simulation steps per clock cycle. It is
// rounded up to the next power of two, with a minimum of 2. The clock must
// run slow enough for outputs of clocked parts to propagate through
// combinational parts before the next rising edge.
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
//
func NewCircuit(workers int, stepsPerCycle uint, parts Parts, opts ...Option) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	if stepsPerCycle < 2 {
		stepsPerCycle = 2
	}
	stepsPerCycle--
	stepsPerCycle |= stepsPerCycle >> 1
	stepsPerCycle |= stepsPerCycle >> 2
	stepsPerCycle |= stepsPerCycle >> 4
	stepsPerCycle |= stepsPerCycle >> 8
	stepsPerCycle |= stepsPerCycle >> 16
	stepsPerCycle |= stepsPerCycle >> 32
	stepsPerCycle++

	c := &Circuit{
		wires: map[string]int{False: cstFalse, True: cstTrue, Clk: cstClk},
		tpc:   stepsPerCycle,
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = logger.GetLogger()
	}

	ups, err := c.mount(parts)
	if err != nil {
		return nil, err
	}
	ups = append(ups, updClock)
	c.cs = ups
	c.s0 = make([]bool, len(c.wires))
	c.s1 = make([]bool, len(c.wires))
	c.s0[cstTrue], c.s1[cstTrue] = true, true
	c.s0[cstClk] = true

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	for len(ups) > 0 {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		c.wc = append(c.wc, wc)
		go worker(c, ups[:size], wc)
		ups = ups[size:]
	}

	c.log.Debug("circuit ready",
		"parts", len(parts), "wires", len(c.wires), "components", len(c.cs),
		"workers", len(c.wc), "spc", c.tpc)
	return c, nil
}

// mount allocates wires for all part connections and mounts the parts.
//
func (c *Circuit) mount(parts Parts) ([]Component, error) {
	var ups []Component
	// wire number -> driving pin
	driven := make(map[int]string)

	for _, p := range parts {
		isIn := make(map[string]bool, len(p.Inputs))
		for _, n := range p.Inputs {
			isIn[n] = true
		}
		isOut := make(map[string]bool, len(p.Outputs))
		for _, n := range p.Outputs {
			isOut[n] = true
		}

		s := &Socket{m: make(map[string]int, len(p.Inputs)+len(p.Outputs))}
		for _, cn := range p.Conns {
			if !isIn[cn.PP] && !isOut[cn.PP] {
				return nil, errors.Errorf("invalid pin name %s for part %s", cn.PP, p.Name)
			}
			if _, ok := s.m[cn.PP]; ok {
				return nil, errors.Errorf("%s.%s: pin connected more than once", p.Name, cn.PP)
			}
			w := c.wire(cn.CP)
			if isOut[cn.PP] {
				if w < cstCount {
					return nil, errors.Errorf("%s.%s: output pin connected to constant %s", p.Name, cn.PP, cn.CP)
				}
				if d, ok := driven[w]; ok {
					return nil, errors.Errorf("%s.%s: wire %s already driven by %s", p.Name, cn.PP, cn.CP, d)
				}
				driven[w] = p.Name + "." + cn.PP
			}
			s.m[cn.PP] = w
		}
		// unconnected inputs read false, unconnected outputs get a private wire.
		for _, n := range p.Inputs {
			if _, ok := s.m[n]; !ok {
				s.m[n] = cstFalse
			}
		}
		for _, n := range p.Outputs {
			if _, ok := s.m[n]; !ok {
				w := c.wire(p.Name + "." + n + "#" + strconv.Itoa(len(c.wires)))
				driven[w] = p.Name + "." + n
				s.m[n] = w
			}
		}
		ups = append(ups, p.Mount(s)...)
	}

	var floating []string
	for n, w := range c.wires {
		if _, ok := driven[w]; !ok && w >= cstCount {
			floating = append(floating, n)
		}
	}
	if len(floating) > 0 {
		sort.Strings(floating)
		return nil, errors.Errorf("wire %s not connected to any output", floating[0])
	}
	return ups, nil
}

// wire returns the number of the named wire, allocating it if necessary.
//
func (c *Circuit) wire(name string) int {
	n, ok := c.wires[name]
	if !ok {
		n = len(c.wires)
		c.wires[name] = n
	}
	return n
}

func updClock(c *Circuit) {
	tick := c.tick + 1
	if tick&(c.tpc-1) == 0 {
		c.s1[cstClk] = true
	} else if tick&(c.tpc/2-1) == 0 {
		c.s1[cstClk] = false
	} else {
		c.s1[cstClk] = c.s0[cstClk]
	}
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
//
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for {
		_, ok := <-wc
		if !ok {
			c.wg.Done()
			return
		}
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
}

// Wire returns the number of the named wire.
//
func (c *Circuit) Wire(name string) (int, bool) {
	n, ok := c.wires[name]
	return n, ok
}

// Wires returns the wire count, including constant wires.
//
func (c *Circuit) Wires() int { return len(c.wires) }

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint {
	return c.tick
}

// SPC returns the stepsPerCycle value.
//
func (c *Circuit) SPC() uint {
	return c.tpc
}

// AtTick returns true if the current step is at the beginning of a clock cycle
// (rising edge of Clk).
//
func (c *Circuit) AtTick() bool {
	return c.tick&(c.tpc-1) == 0
}

// AtTock returns true if the current step is at the beginning of the second
// half of a clock cycle (falling edge of Clk).
//
func (c *Circuit) AtTock() bool {
	return (c.tick+c.tpc/2)&(c.tpc-1) == 0
}

// Get returns the state of wire n.
//
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state of wire n for the next step.
//
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Toggle toggles the state of wire n.
//
func (c *Circuit) Toggle(n int) {
	c.s1[n] = !c.s0[n]
}

// GetUint64 returns the state of the given wires as a word. pins[0] is the
// least significant bit.
//
func (c *Circuit) GetUint64(pins []int) uint64 {
	var v uint64
	for bit, n := range pins {
		if c.s0[n] {
			v |= 1 << uint(bit)
		}
	}
	return v
}

// SetUint64 sets the given wires to the bits of v. pins[0] is the least
// significant bit.
//
func (c *Circuit) SetUint64(pins []int, v uint64) {
	for bit, n := range pins {
		c.s1[n] = v&(1<<uint(bit)) != 0
	}
}

// Step advances the simulation by one step.
//
func (c *Circuit) Step() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}

	c.wg.Wait()
	c.tick++
	c.s0, c.s1 = c.s1, c.s0
}

// Tick runs the simulation until the beginning of the next half clock cycle.
//
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock runs the simulation until the beginning of the next clock cycle.
//
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
//
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }
