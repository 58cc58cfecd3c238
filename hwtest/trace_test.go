package hwtest_test

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/db47h/piso/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	tr := hwtest.NewTrace("a", "b")
	tr.Set("a", true)
	tr.Sample()
	tr.Set("a", false)
	tr.Set("cc", true)
	tr.Sample()

	assert.Equal(t, 2, tr.Cycles())
	assert.Equal(t, []string{"a", "b", "cc"}, tr.Names())
	assert.Equal(t, []bool{true, false}, tr.Bits("a"))
	assert.Equal(t, []bool{false, false}, tr.Bits("b"))
	assert.Equal(t, []bool{false, true}, tr.Bits("cc"))
	assert.Nil(t, tr.Bits("none"))
	assert.True(t, tr.Value("cc"))
	assert.False(t, tr.Value("none"))

	var b strings.Builder
	require.NoError(t, tr.Render(&b))
	assert.Equal(t, "a   -_\nb   __\ncc  _-\n", b.String())
}

func TestTrace_probe(t *testing.T) {
	tr := hwtest.NewTrace()
	p := tr.Probe("x")
	p(true)
	tr.Sample()
	p(false)
	tr.Sample()
	assert.Equal(t, []bool{true, false}, tr.Bits("x"))
}

func TestTrace_concurrent(t *testing.T) {
	tr := hwtest.NewTrace()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				tr.Set(n, j&1 == 0)
			}
		}("s" + strconv.Itoa(i))
	}
	wg.Wait()
	tr.Sample()
	assert.Len(t, tr.Names(), 8)
	for _, n := range tr.Names() {
		assert.Equal(t, []bool{false}, tr.Bits(n), n)
	}
}
