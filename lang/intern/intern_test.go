package intern_test

import (
	"testing"

	"github.com/nox-lang/nox/lang/intern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDedup(t *testing.T) {
	p := intern.NewPool(0)

	id1 := p.Intern("hello")
	id2 := p.Intern("world")
	id3 := p.Intern("hello")

	assert.Equal(t, id1, id3, "interning the same string twice must return the same ID")
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, len("helloworld"), p.Size())
}

func TestInternLookup(t *testing.T) {
	p := intern.NewPool(0)

	ids := make([]intern.ID, 0, 4)
	for _, s := range []string{"foo", "bar", "baz", "foo"} {
		ids = append(ids, p.Intern(s))
	}

	require.Equal(t, ids[0], ids[3])
	assert.Equal(t, "foo", p.Lookup(ids[0]))
	assert.Equal(t, "bar", p.Lookup(ids[1]))
	assert.Equal(t, "baz", p.Lookup(ids[2]))
}

func TestInternEmptyString(t *testing.T) {
	p := intern.NewPool(0)
	id := p.Intern("")
	assert.Equal(t, "", p.Lookup(id))
	id2 := p.Intern("x")
	assert.Equal(t, "x", p.Lookup(id2))
}
