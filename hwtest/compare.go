// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"math/rand"
	"testing"
)

// Compare drives h1 and h2 with the same random stimulus for the given number
// of cycles and fails t on the first cycle where their outputs differ. Both
// harnesses must have the same width.
//
// The stimulus includes words presented while busy and occasional reset
// pulses.
//
func Compare(t *testing.T, h1, h2 Harness, cycles int, seed int64) {
	t.Helper()

	if h1.Width() != h2.Width() {
		t.Fatalf("width mismatch: %d != %d", h1.Width(), h2.Width())
	}
	mask := ^uint64(0) >> (64 - h1.Width())
	rnd := rand.New(rand.NewSource(seed))

	h1.ResetPulse(1)
	h2.ResetPulse(1)
	for i := 0; i < cycles; i++ {
		if rnd.Intn(64) == 0 {
			n := rnd.Intn(3) + 1
			h1.ResetPulse(n)
			h2.ResetPulse(n)
			continue
		}
		data, valid := rnd.Uint64()&mask, rnd.Intn(3) == 0
		s1, s2 := h1.Cycle(data, valid), h2.Cycle(data, valid)
		if s1.Serial != s2.Serial || s1.ValidOut != s2.ValidOut || s1.Busy != s2.Busy || s1.Done != s2.Done {
			t.Fatalf("cycle %d: data=%#x valid=%v\nexpected %+v\ngot      %+v", i, data, valid, s1, s2)
		}
	}
}
