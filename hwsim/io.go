// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
)

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() bool) NewPartFn {
	p := &PartSpec{
		Name:    "Input",
		Outputs: []string{"out"},
		Mount: func(s *Socket) []Component {
			out := s.Pin("out")
			return []Component{
				func(c *Circuit) { c.Set(out, f()) },
			}
		}}
	return p.NewPart
}

// Output creates an output or probe. f is called with the state of the input
// pin on every simulation step. f may be called concurrently with other
// components.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(bool)) NewPartFn {
	p := &PartSpec{
		Name:   "Output",
		Inputs: []string{"in"},
		Mount: func(s *Socket) []Component {
			in := s.Pin("in")
			return []Component{
				func(c *Circuit) { f(c.Get(in)) },
			}
		}}
	return p.NewPart
}

// InputN creates an input bus of the given bits size.
//
//	Outputs: out[bits]
//	Function: out = f()
//
func InputN(bits int, f func() uint64) NewPartFn {
	p := &PartSpec{
		Name:    "Input" + strconv.Itoa(bits),
		Outputs: BusPins(bits, "out"),
		Mount: func(s *Socket) []Component {
			pins := s.Bus("out", bits)
			return []Component{
				func(c *Circuit) { c.SetUint64(pins, f()) },
			}
		}}
	return p.NewPart
}

// OutputN creates an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(uint64)) NewPartFn {
	p := &PartSpec{
		Name:   "Output" + strconv.Itoa(bits),
		Inputs: BusPins(bits, "in"),
		Mount: func(s *Socket) []Component {
			pins := s.Bus("in", bits)
			return []Component{
				func(c *Circuit) { f(c.GetUint64(pins)) },
			}
		}}
	return p.NewPart
}
