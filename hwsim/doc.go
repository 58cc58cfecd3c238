// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwsim is a naive clocked circuit simulator.

A circuit is a set of parts connected by named wires. Each part is mounted
once into a Socket that maps its pin names to wire numbers, and returns
the Components that update its outputs. Every simulation step runs all
components against the wire states of the previous step, so each component
adds one step of propagation delay.

The clock wire Clk is driven by the circuit itself. It rises every
stepsPerCycle steps. Clocked parts check AtTick to detect the rising edge:

	dff := &hwsim.PartSpec{
		Name:    "DFF",
		Inputs:  []string{"in"},
		Outputs: []string{"out"},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			in, out := s.Pin("in"), s.Pin("out")
			var q bool
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					if c.AtTick() {
						q = c.Get(in)
					}
					c.Set(out, q)
				}}
		}}

Parts are connected with connection strings of the form "pin=wire, ...",
where buses can be expanded with ranges: "data[0..7]=word[0..7]".
*/
package hwsim
