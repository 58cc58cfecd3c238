package hwsim_test

import (
	"testing"

	hw "github.com/db47h/piso/hwsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConnections(t *testing.T) {
	td := []struct {
		in  string
		out []hw.Connection
		err string
	}{
		{"", nil, ""},
		{"  ", nil, ""},
		{"a=b", []hw.Connection{{"a", "b"}}, ""},
		{" in = x , out=y", []hw.Connection{{"in", "x"}, {"out", "y"}}, ""},
		{"bus[2]=w", []hw.Connection{{"bus[2]", "w"}}, ""},
		{"d[0..2]=w[5..7]", []hw.Connection{{"d[0]", "w[5]"}, {"d[1]", "w[6]"}, {"d[2]", "w[7]"}}, ""},
		{"d[0..1]=false", []hw.Connection{{"d[0]", "false"}, {"d[1]", "false"}}, ""},
		{"rst_n=true, sel=clk", []hw.Connection{{"rst_n", "true"}, {"sel", "clk"}}, ""},
		{"a", nil, `missing '=' in connection "a"`},
		{"a=b,", nil, `missing '=' in connection ""`},
		{"=b", nil, "empty pin name"},
		{"a=", nil, "empty pin name"},
		{"a-b=c", nil, `invalid character '-' in pin name "a-b"`},
		{"0a=c", nil, `invalid character '0' in pin name "0a"`},
		{"a[1=c", nil, `no terminating ] in "a[1"`},
		{"a[x]=c", nil, `invalid pin index in "a[x]"`},
		{"a[..2]=c", nil, `invalid range start in "a[..2]"`},
		{"a[3..1]=c", nil, `invalid range end in "a[3..1]"`},
		{"a[0..2]=c[0..1]", nil, `pin count mismatch in connection "a[0..2]=c[0..1]"`},
		{"a=c[0..1]", nil, `pin count mismatch in connection "a=c[0..1]"`},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			cs, err := hw.ParseConnections(d.in)
			if d.err != "" {
				require.Error(t, err)
				assert.Equal(t, d.err, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, d.out, cs)
		})
	}
}

func TestBusPins(t *testing.T) {
	assert.Equal(t, []string{"a[0]", "a[1]", "b[0]", "b[1]"}, hw.BusPins(2, "a", "b"))
	assert.Empty(t, hw.BusPins(0, "a"))
	assert.Equal(t, "data[12]", hw.BusPinName("data", 12))
}

func TestPartSpec_NewPart(t *testing.T) {
	p := hw.Input(func() bool { return true })
	assert.NotPanics(t, func() { p("out=x") })
	assert.PanicsWithError(t, `Input: missing '=' in connection "out"`, func() { p("out") })
}
