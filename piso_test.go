package piso_test

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/db47h/piso"
	"github.com/db47h/piso/logger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSerializer(t *testing.T, width uint) *piso.Serializer {
	t.Helper()
	s, err := piso.New(width)
	require.NoError(t, err)
	return s
}

// send presents v for one tick then ticks until busy drops. It returns the
// serial bits observed after each tick while busy.
func send(t *testing.T, s *piso.Serializer, v uint64) []bool {
	t.Helper()
	var bits []bool
	s.Tick(v, true)
	for i := uint(0); s.Busy(); i++ {
		if i > s.Width() {
			t.Fatalf("still busy after %d ticks", i)
		}
		bits = append(bits, s.SerialBit())
		s.Tick(0, false)
	}
	return bits
}

func lsbFirst(v uint64, width uint) []bool {
	bits := make([]bool, width)
	for i := range bits {
		bits[i] = v&(1<<uint(i)) != 0
	}
	return bits
}

func TestNew(t *testing.T) {
	tests := []struct {
		width uint
		err   bool
	}{
		{0, true},
		{1, false},
		{8, false},
		{64, false},
		{65, true},
	}
	for _, tt := range tests {
		s, err := piso.New(tt.width)
		if tt.err {
			assert.Error(t, err, "width %d", tt.width)
			assert.Equal(t, piso.ErrWidth, errors.Cause(err))
			assert.Nil(t, s)
			continue
		}
		require.NoError(t, err, "width %d", tt.width)
		assert.Equal(t, tt.width, s.Width())
		assert.False(t, s.Busy())
		assert.False(t, s.InReset())
		assert.Zero(t, s.Count())
		assert.Zero(t, s.Data())
	}
}

func TestSerializer_scenarios(t *testing.T) {
	td := []struct {
		name string
		word uint64
		bits []bool
	}{
		{"0x10", 0x10, []bool{false, false, false, false, true, false, false, false}},
		{"0x80", 0x80, []bool{false, false, false, false, false, false, false, true}},
		{"0x07", 0x07, []bool{true, true, true, false, false, false, false, false}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			s := newSerializer(t, 8)
			s.Reset()
			s.Tick(d.word, true)
			require.True(t, s.Busy())
			var bits []bool
			for i := 0; i < 8; i++ {
				require.True(t, s.Busy(), "busy dropped early at tick %d", i)
				bits = append(bits, s.SerialBit())
				s.Tick(0, false)
			}
			assert.Equal(t, d.bits, bits)
			assert.False(t, s.Busy())
			assert.False(t, s.ValidOut())
		})
	}
}

func TestSerializer_backToBack(t *testing.T) {
	s := newSerializer(t, 8)
	s.Reset()
	assert.Equal(t, lsbFirst(0x80, 8), send(t, s, 0x80))
	require.False(t, s.Busy())
	// busy has fallen: the very next tick must accept.
	s.Tick(0x07, true)
	require.True(t, s.Busy())
	assert.Equal(t, uint(1), s.Count())
	assert.True(t, s.SerialBit())
}

func TestSerializer_validOnCompletionTick(t *testing.T) {
	s := newSerializer(t, 4)
	s.Tick(0xF, true)
	for i := 0; i < 3; i++ {
		s.Tick(0, false)
	}
	require.True(t, s.Done())

	// completion wins over the new word
	s.Tick(0x5, true)
	assert.False(t, s.Busy())
	assert.Zero(t, s.Count())

	s.Tick(0x5, true)
	assert.True(t, s.Busy())
	assert.Equal(t, uint64(0x5), s.Data())
}

func TestSerializer_roundTrip(t *testing.T) {
	f := func(v uint64, w uint8) bool {
		width := uint(w)%piso.MaxWidth + 1
		s, err := piso.New(width)
		if err != nil {
			return false
		}
		s.Reset()
		v &= ^uint64(0) >> (piso.MaxWidth - width)
		s.Tick(v, true)
		// busy for the accept tick plus width-1 shift ticks and the
		// completion tick.
		for i := uint(0); i < width; i++ {
			if !s.Busy() || !s.ValidOut() || s.SerialBit() != (v&(1<<i) != 0) {
				return false
			}
			if s.Done() != (i == width-1) {
				return false
			}
			s.Tick(0, false)
		}
		return !s.Busy() && s.Count() == 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestSerializer_busyMasking(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := rand.Uint64() & 0xFFFF
		s := newSerializer(t, 16)
		s.Tick(v, true)
		var bits []bool
		for s.Busy() {
			bits = append(bits, s.SerialBit())
			// hammer the input with other words
			s.Tick(rand.Uint64(), true)
		}
		require.Equal(t, lsbFirst(v, 16), bits, "word %#x", v)
	}
}

func TestSerializer_idle(t *testing.T) {
	s := newSerializer(t, 8)
	s.Reset()
	want := s.String()
	for i := 0; i < 50; i++ {
		s.Tick(rand.Uint64(), false)
		require.Equal(t, want, s.String())
	}
}

func TestSerializer_counterBound(t *testing.T) {
	for _, width := range []uint{1, 2, 3, 8, 13, 64} {
		s := newSerializer(t, width)
		for i := 0; i < 2000; i++ {
			switch rand.Intn(50) {
			case 0:
				s.Reset()
			default:
				s.Tick(rand.Uint64(), rand.Intn(3) == 0)
			}
			require.LessOrEqual(t, s.Count(), width)
			if !s.Busy() {
				require.Zero(t, s.Count())
				require.False(t, s.Done())
			}
			require.Equal(t, s.Done(), s.Count() == width)
			require.Equal(t, s.Busy(), s.ValidOut())
		}
	}
}

func TestSerializer_reset(t *testing.T) {
	s := newSerializer(t, 8)
	s.Tick(0xFF, true)
	s.Tick(0, false)
	require.True(t, s.Busy())

	// asynchronous: takes effect without a tick
	s.AssertReset()
	assert.True(t, s.InReset())
	assert.False(t, s.Busy())
	assert.False(t, s.ValidOut())
	assert.Zero(t, s.Data())
	assert.Zero(t, s.Count())

	// held reset wins over accept
	for i := 0; i < 3; i++ {
		s.Tick(0xAA, true)
		assert.False(t, s.Busy())
		assert.Zero(t, s.Data())
	}

	s.ReleaseReset()
	assert.False(t, s.InReset())
	s.Tick(0xAA, true)
	assert.True(t, s.Busy())
	assert.Equal(t, uint64(0xAA), s.Data())

	// pulse
	s.Reset()
	assert.False(t, s.InReset())
	assert.False(t, s.Busy())
	assert.Zero(t, s.Data())
}

func TestSerializer_edgeWidths(t *testing.T) {
	s := newSerializer(t, 1)
	assert.Equal(t, []bool{true}, send(t, s, 1))
	assert.Equal(t, []bool{false}, send(t, s, 0))

	s = newSerializer(t, 64)
	v := uint64(0x8000000000000001)
	assert.Equal(t, lsbFirst(v, 64), send(t, s, v))
}

func TestSerializer_mask(t *testing.T) {
	s := newSerializer(t, 4)
	s.Tick(0xF5, true)
	assert.Equal(t, uint64(0x5), s.Data())
	for s.Busy() {
		s.Tick(0, false)
	}
	assert.Equal(t, lsbFirst(0x3, 4), send(t, s, 0x13))
}

func TestSerializer_logging(t *testing.T) {
	ml := logger.NewMockLogger()
	ml.On("With", mock.Anything).Return(ml)
	ml.On("Debug", mock.Anything, mock.Anything).Return()

	s, err := piso.New(2, piso.WithLogger(ml))
	require.NoError(t, err)

	s.Reset()
	s.Tick(0x3, true)
	s.Tick(0x1, true)
	s.Tick(0, false)

	ml.AssertCalled(t, "With", []any{"width", uint(2)})
	ml.AssertCalled(t, "Debug", "reset asserted", mock.Anything)
	ml.AssertCalled(t, "Debug", "reset released", mock.Anything)
	ml.AssertCalled(t, "Debug", "word accepted", []any{"data", uint64(0x3)})
	ml.AssertCalled(t, "Debug", "word ignored while busy", []any{"data", uint64(0x1)})
	ml.AssertCalled(t, "Debug", "transfer complete", mock.Anything)
}
