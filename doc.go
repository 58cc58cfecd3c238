// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package piso implements a parallel-in serial-out serializer.

A Serializer accepts a W bit word together with a valid strobe and shifts it
out on a single line, least significant bit first, one bit per clock tick.
Busy (and its alias ValidOut) is asserted from the tick the word is accepted
through the tick its last bit is driven.

Timing for W = 4 and the word 0b0110, observed after each tick:

	tick   valid   SerialBit   Busy   Count
	0      1       0           1      1     accept
	1      0       1           1      2
	2      0       1           1      3
	3      0       0           1      4     Done
	4      0       -           0      0     complete

The tick following completion may accept a new word, so back to back
transfers of W bit words take W+1 ticks each.

Reset is asynchronous: AssertReset clears the state at once, and the state
stays cleared until ReleaseReset, whatever happens on the clock.

Subpackages provide a clocked circuit simulator (hwsim), a parts library
with the serializer as a circuit part (hwlib) and test benches (hwtest).
*/
package piso
