// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command pisosim shifts words out of a simulated PISO serializer and prints
// the resulting bit streams, LSB first.
//
//	pisosim -width 8 -wave 0x10 0x80 0x07
//
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/db47h/piso/hwtest"
	"github.com/db47h/piso/logger"
)

func main() {
	var (
		width   = flag.Uint("width", 8, "word width in bits (1-64)")
		spc     = flag.Uint("spc", 8, "simulation steps per clock cycle")
		workers = flag.Int("workers", 1, "simulation goroutines, 0 for GOMAXPROCS")
		gap     = flag.Int("gap", 0, "idle cycles between words")
		level   = flag.String("log-level", "warn", "log level: debug, info, warn, error")
		wave    = flag.Bool("wave", false, "print the signal waveforms")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] word...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	lv, ok := logger.ParseLevel(*level)
	if !ok || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	log := logger.NewSlogWriter(os.Stderr, lv, false)

	words := make([]uint64, flag.NArg())
	for i, arg := range flag.Args() {
		w, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			log.Fatal("invalid word", "word", arg, "error", err)
		}
		words[i] = w
	}

	b, err := hwtest.NewBench(*width,
		hwtest.WithStepsPerCycle(*spc),
		hwtest.WithWorkers(*workers),
		hwtest.WithLogger(log))
	if err != nil {
		log.Fatal("cannot build bench", "error", err)
	}
	defer b.Dispose()

	mask := ^uint64(0) >> (64 - *width)
	b.ResetPulse(1)
	for _, w := range words {
		if w&^mask != 0 {
			log.Warn("word truncated", "word", w, "width", *width)
		}
		bits, err := b.Send(w)
		if err != nil {
			b.Dispose()
			log.Fatal("send failed", "word", w, "error", err)
		}
		fmt.Printf("%#x\t%s\n", w&mask, hwtest.BitString(bits))
		hwtest.Idle(b, *gap)
	}

	if *wave {
		fmt.Println()
		if err := b.Trace().Render(os.Stdout); err != nil {
			log.Error("render failed", "error", err)
		}
	}
}
