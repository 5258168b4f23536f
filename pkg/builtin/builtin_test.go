package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/toolbelt/pkg/tool"
)

func TestRegister_InstallsAllBuiltins(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg))

	for _, id := range []string{"echo", "add", "upper", "now"} {
		assert.NotNil(t, reg.Get(id), "missing builtin %s", id)
	}
	assert.Equal(t, 4, reg.Len())
}

func TestRegister_NilRegistry(t *testing.T) {
	assert.Error(t, Register(nil))
}

func TestRegister_TwiceFailsOnDuplicate(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg))
	assert.ErrorIs(t, Register(reg), tool.ErrDuplicateTool)
}

func TestBuiltin_Echo(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg))

	out, err := reg.ExecuteByName(context.Background(), "echo", map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestBuiltin_Add(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg))

	out, err := reg.ExecuteByName(context.Background(), "add", map[string]any{"a": 2.0, "b": 3.0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out)
}

func TestBuiltin_UpperIsAsync(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg))

	upper := reg.Get("upper")
	require.NotNil(t, upper)
	assert.True(t, upper.IsAsync())

	out, err := reg.Execute(context.Background(), upper, map[string]any{"text": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)
}

func TestBuiltin_NowDefaultsToUTC(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg))

	out, err := reg.ExecuteByName(context.Background(), "now", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = reg.ExecuteByName(context.Background(), "now", map[string]any{"tz": "Not/AZone"})
	assert.Error(t, err)
}

func TestBuiltin_SearchFindsAddByKeyword(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg))

	results := reg.Search("addition")
	require.NotEmpty(t, results)
	assert.Equal(t, "add", results[0].ID())
}
