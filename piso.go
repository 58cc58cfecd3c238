// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package piso

import (
	"fmt"

	"github.com/db47h/piso/logger"
	"github.com/pkg/errors"
)

// MaxWidth is the widest word a Serializer can handle.
//
const MaxWidth = 64

// ErrWidth is returned by New for word widths outside [1, MaxWidth].
//
var ErrWidth = errors.New("invalid word width")

// An Option configures a Serializer.
//
type Option func(s *Serializer)

// WithLogger sets the logger used to report transfer events. Events are
// logged at debug level.
//
func WithLogger(l logger.Logger) Option {
	return func(s *Serializer) {
		s.log = l
	}
}

// A Serializer shifts out fixed width parallel words one bit per clock tick,
// least significant bit first.
//
// State is only mutated through Tick and the reset methods. All outputs are
// combinational functions of the current state.
//
type Serializer struct {
	width uint
	mask  uint64

	data       uint64 // shift register, bit 0 is the current output bit
	cnt        uint   // bits consumed for the current word, 0..width
	inProgress bool
	rst        bool // reset line asserted

	log logger.Logger
}

// New returns a new Serializer for words of the given width in bits.
// The returned Serializer is in its reset state.
//
func New(width uint, opts ...Option) (*Serializer, error) {
	if width < 1 || width > MaxWidth {
		return nil, errors.Wrapf(ErrWidth, "width %d", width)
	}
	s := &Serializer{width: width, mask: ^uint64(0) >> (MaxWidth - width)}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.GetLogger()
	}
	s.log = s.log.With("width", width)
	return s, nil
}

// Width returns the word width.
//
func (s *Serializer) Width() uint { return s.width }

// Data returns the contents of the shift register.
//
func (s *Serializer) Data() uint64 { return s.data }

// Count returns the value of the bit counter.
//
func (s *Serializer) Count() uint { return s.cnt }

// Done returns true on the single tick where the last bit of the current word
// is being driven.
//
func (s *Serializer) Done() bool { return s.cnt == s.width }

// SerialBit returns the output bit, bit 0 of the shift register.
// Its value is only meaningful while Busy returns true.
//
func (s *Serializer) SerialBit() bool { return s.data&1 != 0 }

// ValidOut returns true while SerialBit carries a bit of the current word.
//
func (s *Serializer) ValidOut() bool { return s.inProgress }

// Busy returns true while a transfer is in progress. New words presented to
// Tick while busy are ignored.
//
func (s *Serializer) Busy() bool { return s.inProgress }

// InReset returns true if the reset line is asserted.
//
func (s *Serializer) InReset() bool { return s.rst }

// AssertReset asserts the reset line. The serializer is reset immediately,
// regardless of clock ticks, and stays in reset until ReleaseReset is called.
//
func (s *Serializer) AssertReset() {
	if !s.rst {
		s.log.Debug("reset asserted")
	}
	s.rst = true
	s.clear()
}

// ReleaseReset releases the reset line.
//
func (s *Serializer) ReleaseReset() {
	if s.rst {
		s.log.Debug("reset released")
	}
	s.rst = false
}

// Reset pulses the reset line.
//
func (s *Serializer) Reset() {
	s.AssertReset()
	s.ReleaseReset()
}

func (s *Serializer) clear() {
	s.data = 0
	s.cnt = 0
	s.inProgress = false
}

// Tick advances the serializer by one clock cycle with the given inputs.
//
// data is only sampled if valid is true and the serializer is not busy. Bits
// above the word width are ignored.
//
func (s *Serializer) Tick(data uint64, valid bool) {
	switch {
	case s.rst:
		s.clear()
	case !s.inProgress && valid:
		s.data = data & s.mask
		s.inProgress = true
		// the bit driven during the accept cycle counts as sent.
		s.cnt = 1
		s.log.Debug("word accepted", "data", s.data)
	case s.inProgress && s.cnt < s.width:
		if valid {
			s.log.Debug("word ignored while busy", "data", data&s.mask)
		}
		s.data >>= 1
		s.cnt++
	case s.Done():
		if valid {
			s.log.Debug("word ignored while busy", "data", data&s.mask)
		}
		s.inProgress = false
		s.cnt = 0
		s.log.Debug("transfer complete")
	}
}

// String returns a description of the serializer state.
//
func (s *Serializer) String() string {
	return fmt.Sprintf("PISO%d{data: %#x, cnt: %d, busy: %v, rst: %v}", s.width, s.data, s.cnt, s.inProgress, s.rst)
}
