// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/piso"
	"github.com/db47h/piso/hwsim"
)

// PISO returns a parallel-in serial-out serializer for words of the given
// width, built around a piso.Serializer. It panics if width is out of range.
//
//	Inputs: data[width], valid, rst_n
//	Outputs: sout, valid_out, busy, done
//	Function: on the rising edge of clk, tick the serializer with data and
//	          valid. rst_n low resets the serializer on any step, not only on
//	          clock edges. Outputs follow the serializer state.
//
// rst_n is active low: an unconnected rst_n holds the part in reset. Connect
// it to true if the part does not need to be reset.
//
func PISO(width int, opts ...piso.Option) hwsim.NewPartFn {
	if _, err := piso.New(uint(width), opts...); err != nil {
		panic(err)
	}
	p := &hwsim.PartSpec{
		Name:    "PISO" + strconv.Itoa(width),
		Inputs:  append(hwsim.BusPins(width, pData), pValid, pRstN),
		Outputs: []string{pSout, pValidOut, pBusy, pDone},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			ser, _ := piso.New(uint(width), opts...)
			data, valid, rstN := s.Bus(pData, width), s.Pin(pValid), s.Pin(pRstN)
			sout, vout, busy, done := s.Pin(pSout), s.Pin(pValidOut), s.Pin(pBusy), s.Pin(pDone)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					if c.Get(rstN) {
						ser.ReleaseReset()
					} else {
						ser.AssertReset()
					}
					if c.AtTick() {
						ser.Tick(c.GetUint64(data), c.Get(valid))
					}
					c.Set(sout, ser.SerialBit())
					c.Set(vout, ser.ValidOut())
					c.Set(busy, ser.Busy())
					c.Set(done, ser.Done())
				}}
		}}
	return p.NewPart
}
