package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patc/internal/convert"
)

func TestRegistryLookup(t *testing.T) {
	reg := convert.NewRegistry[event]()
	require.NoError(t, reg.Register(convert.Const[event]("Hello"), "hello"))
	require.NoError(t, reg.Register(convert.Func(func(e event) string { return e.name }), "msg", "m", "message"))

	f, ok := reg.Lookup("m")
	require.True(t, ok)
	conv, err := f(nil)
	require.NoError(t, err)
	assert.Equal(t, "bob", conv.Convert(event{"bob"}))

	_, ok = reg.Lookup("unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{"hello", "m", "message", "msg"}, reg.Names())
	assert.Equal(t, 4, reg.Len())
}

func TestRegistryRejectsBadInput(t *testing.T) {
	reg := convert.NewRegistry[event]()
	assert.Error(t, reg.Register(nil, "x"))
	assert.Error(t, reg.Register(convert.Const[event]("x")))
	assert.Error(t, reg.Register(convert.Const[event]("x"), ""))
	assert.Panics(t, func() { reg.MustRegister(nil, "x") })
}

func TestRegistryOverrideAndClone(t *testing.T) {
	base := convert.NewRegistry[event]()
	base.MustRegister(convert.Const[event]("one"), "n")

	layered := base.Clone()
	layered.MustRegister(convert.Const[event]("two"), "n")

	f, _ := base.Lookup("n")
	c, _ := f(nil)
	assert.Equal(t, "one", c.Convert(event{}))

	f, _ = layered.Lookup("n")
	c, _ = f(nil)
	assert.Equal(t, "two", c.Convert(event{}))
}

func TestRegistrySuggest(t *testing.T) {
	reg := convert.NewRegistry[event]()
	for _, w := range []string{"level", "logger", "msg", "date"} {
		reg.MustRegister(convert.Const[event](w), w)
	}
	assert.Equal(t, []string{"level"}, reg.Suggest("levl"))
	assert.Equal(t, []string{"msg"}, reg.Suggest("mgs"))
	assert.Empty(t, reg.Suggest("zzzzzz"))
}
