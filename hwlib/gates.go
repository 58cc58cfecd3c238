// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of parts for hwsim circuits.
//
package hwlib

import (
	"github.com/db47h/piso/hwsim"
)

// common pin names
const (
	pIn       = "in"
	pOut      = "out"
	pData     = "data"
	pValid    = "valid"
	pRstN     = "rst_n"
	pSout     = "sout"
	pValidOut = "valid_out"
	pBusy     = "busy"
	pDone     = "done"
)

var notGate = &hwsim.PartSpec{
	Name:    "NOT",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []hwsim.Component{
			func(c *hwsim.Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) hwsim.Part {
	return notGate.NewPart(w)
}
