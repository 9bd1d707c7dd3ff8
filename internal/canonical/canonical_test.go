package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Basic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int64", int64(-18000), "-18000"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"array", []any{1, "a", false}, `[1,"a",false]`},
		{"simple object", map[string]any{"a": 1}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshal_SortedKeys(t *testing.T) {
	obj := map[string]any{
		"status":      "SUCCESS",
		"facility_id": "FAC_001",
		"dst":         false,
		"nested":      map[string]any{"b": 1, "a": 2},
	}

	result, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"dst":false,"facility_id":"FAC_001","nested":{"a":2,"b":1},"status":"SUCCESS"}`, string(result))
}

func TestMarshal_UTF16Ordering(t *testing.T) {
	// U+10000 encodes as the surrogate pair 0xD800 0xDC00, which sorts
	// before U+E000 in UTF-16 but after it in UTF-8.
	obj := map[string]any{
		"\uE000":     1,
		"\U00010000": 2,
	}

	result, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(result))
}

func TestMarshal_NoHTMLEscape(t *testing.T) {
	result, err := Marshal("clocks <jump> from 02:00 & 03:00")
	require.NoError(t, err)
	assert.Equal(t, `"clocks <jump> from 02:00 & 03:00"`, string(result))
	assert.NotContains(t, string(result), `\u003c`)
	assert.NotContains(t, string(result), `\u0026`)
}

func TestMarshal_LineSeparators(t *testing.T) {
	result, err := Marshal("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(result))

	// A literal backslash followed by u2028 text must stay escaped.
	result, err = Marshal(`a\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028"`, string(result))
}

func TestMarshal_NFC(t *testing.T) {
	// "a" + combining acute accent normalizes to U+00E1.
	result, err := Marshal("Sa\u0301o Paulo")
	require.NoError(t, err)
	assert.Equal(t, "\"S\u00e1o Paulo\"", string(result))
}

func TestMarshal_RejectsFloatsAndNull(t *testing.T) {
	_, err := Marshal(5.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")

	_, err = Marshal(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null is forbidden")

	_, err = Marshal(map[string]any{"offset": 5.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `value for key "offset"`)

	_, err = Marshal([]any{"ok", nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")
}

func TestMarshal_UnsupportedType(t *testing.T) {
	_, err := Marshal(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}
