package piso_test

import (
	"fmt"

	"github.com/db47h/piso"
)

func Example() {
	s, err := piso.New(8)
	if err != nil {
		panic(err)
	}
	s.Reset()

	s.Tick(0x10, true)
	for s.Busy() {
		if s.SerialBit() {
			fmt.Print("1")
		} else {
			fmt.Print("0")
		}
		s.Tick(0, false)
	}
	fmt.Println()

	// Output:
	// 00001000
}
