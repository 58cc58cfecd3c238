// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Connection connects a part pin to a circuit wire.
//
type Connection struct {
	PP string // part pin
	CP string // circuit wire
}

// BusPinName returns the name of pin i in the given bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// BusPins returns the pin names of the given buses:
//
//	BusPins(2, "a", "b") // []string{"a[0]", "a[1]", "b[0]", "b[1]"}
//
func BusPins(bits int, names ...string) []string {
	b := make([]string, 0, len(names)*bits)
	for _, n := range names {
		for i := 0; i < bits; i++ {
			b = append(b, BusPinName(n, i))
		}
	}
	return b
}

// ParseConnections parses a connection string. The syntax is a comma
// separated list of pin=wire pairs. Pins and wires can be single pins
// ("a", "bus[3]") or bus ranges ("bus[0..7]"):
//
//	"a=x, data[0..3]=word[4..7], rst_n=true"
//
// A range on the pin side connected to a single wire connects all pins in the
// range to that wire.
//
func ParseConnections(s string) ([]Connection, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var cs []Connection
	for _, item := range strings.Split(s, ",") {
		i := strings.IndexByte(item, '=')
		if i < 0 {
			return nil, errors.Errorf("missing '=' in connection %q", strings.TrimSpace(item))
		}
		pp, err := expandRange(strings.TrimSpace(item[:i]))
		if err != nil {
			return nil, err
		}
		cp, err := expandRange(strings.TrimSpace(item[i+1:]))
		if err != nil {
			return nil, err
		}
		switch {
		case len(pp) == len(cp):
			for i := range pp {
				cs = append(cs, Connection{pp[i], cp[i]})
			}
		case len(cp) == 1:
			for i := range pp {
				cs = append(cs, Connection{pp[i], cp[0]})
			}
		default:
			return nil, errors.Errorf("pin count mismatch in connection %q", strings.TrimSpace(item))
		}
	}
	return cs, nil
}

func expandRange(name string) ([]string, error) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		if err := checkIdent(name); err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	bus := name[:i]
	if err := checkIdent(bus); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, "]") {
		return nil, errors.Errorf("no terminating ] in %q", name)
	}
	idx := name[i+1 : len(name)-1]
	j := strings.Index(idx, "..")
	if j < 0 {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return nil, errors.Errorf("invalid pin index in %q", name)
		}
		return []string{BusPinName(bus, n)}, nil
	}
	start, err := strconv.Atoi(idx[:j])
	if err != nil || start < 0 {
		return nil, errors.Errorf("invalid range start in %q", name)
	}
	end, err := strconv.Atoi(idx[j+2:])
	if err != nil || end < start {
		return nil, errors.Errorf("invalid range end in %q", name)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}

func checkIdent(name string) error {
	if name == "" {
		return errors.New("empty pin name")
	}
	for i, r := range name {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return errors.Errorf("invalid character %q in pin name %q", r, name)
		}
	}
	return nil
}
