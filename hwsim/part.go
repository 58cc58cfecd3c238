// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"github.com/pkg/errors"
)

// A Component updates the state of some wires in a circuit. It is called
// once per simulation step.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query the socket
// for the wire numbers assigned to the part's pins and return closures around
// them.
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Use BusPins to generate bus pin names.
	Inputs []string
	// Output pin names.
	Outputs []string
	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart wraps p with the given connections into a Part. It panics if the
// connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	cs, err := ParseConnections(connections)
	if err != nil {
		panic(errors.Wrap(err, p.Name))
	}
	return Part{p, cs}
}

// A NewPartFn is a function that takes a connection string and returns a new
// Part. See ParseConnections for the syntax of connection strings.
//
type NewPartFn func(connections string) Part

// A Part wraps a part specification together with its connections in a
// circuit.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a slice of parts.
//
type Parts []Part

// A Socket maps a part's pin names to wire numbers in a circuit.
//
type Socket struct {
	m map[string]int
}

// Pin returns the wire number connected to the given pin.
// It panics if the pin does not exist.
//
func (s *Socket) Pin(name string) int {
	n, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return n
}

// Bus returns the wire numbers connected to the pins of the given bus.
// It panics if any of the bus pins does not exist.
//
func (s *Socket) Bus(name string, bits int) []int {
	pins := make([]int, bits)
	for i := range pins {
		pins[i] = s.Pin(BusPinName(name, i))
	}
	return pins
}
