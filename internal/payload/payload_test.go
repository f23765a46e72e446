package payload

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/parityscope/parityscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCanonicalKey covers canonical keys, aliases, and rejects.
func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected schema.SubgroupKey
		ok       bool
	}{
		{name: "canonical passes through", raw: "white_pct", expected: schema.KeyWhite, ok: true},
		{name: "bare race alias", raw: "black", expected: schema.KeyBlack, ok: true},
		{name: "prefixed race alias", raw: "race_asian", expected: schema.KeyAsian, ok: true},
		{name: "aian underscore variant", raw: "ai_an_pct", expected: schema.KeyAIAN, ok: true},
		{name: "case insensitive alias", raw: "Female", expected: schema.KeyFemale, ok: true},
		{name: "whitespace trimmed", raw: "  male_pct ", expected: schema.KeyMale, ok: true},
		{name: "age alias", raw: "age_65_plus", expected: schema.KeyAge65, ok: true},
		{name: "unknown key", raw: "hispanic_pct", ok: false},
		{name: "empty key", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := CanonicalKey(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, key)
			}
		})
	}
}

// TestCoerceValue covers fraction passthrough, percent rescaling, and the
// out-of-range rejections.
func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected *float64
	}{
		{name: "fraction passes", value: 0.42, expected: fptr(0.42)},
		{name: "zero passes", value: 0.0, expected: fptr(0.0)},
		{name: "one passes", value: 1.0, expected: fptr(1.0)},
		{name: "percent rescaled", value: 42.0, expected: fptr(0.42)},
		{name: "hundred percent rescaled", value: 100.0, expected: fptr(1.0)},
		{name: "just above one rescaled", value: 1.5, expected: fptr(0.015)},
		{name: "above hundred dropped", value: 101.0, expected: nil},
		{name: "negative dropped", value: -0.1, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceValue(tt.value)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-12)
		})
	}
}

// TestDecode exercises the tolerant JSON boundary.
func TestDecode(t *testing.T) {
	t.Run("well formed payload", func(t *testing.T) {
		preds, err := Decode(strings.NewReader(`{
			"white_pct": 0.62,
			"black": 14.6,
			"female_pct": null
		}`))
		require.NoError(t, err)

		require.NotNil(t, preds.Get(schema.KeyWhite))
		assert.Equal(t, 0.62, *preds.Get(schema.KeyWhite))
		require.NotNil(t, preds.Get(schema.KeyBlack))
		assert.InDelta(t, 0.146, *preds.Get(schema.KeyBlack), 1e-12)
		assert.Nil(t, preds.Get(schema.KeyFemale))
	})

	t.Run("unknown keys dropped", func(t *testing.T) {
		preds, err := Decode(strings.NewReader(`{"hispanic_pct": 0.2, "male_pct": 0.5}`))
		require.NoError(t, err)
		assert.Len(t, preds, 1)
		require.NotNil(t, preds.Get(schema.KeyMale))
	})

	t.Run("non-numeric values become absent", func(t *testing.T) {
		preds, err := Decode(strings.NewReader(`{"white_pct": "a lot", "black_pct": {"x": 1}}`))
		require.NoError(t, err)
		assert.Len(t, preds, 2)
		assert.Nil(t, preds.Get(schema.KeyWhite))
		assert.Nil(t, preds.Get(schema.KeyBlack))
	})

	t.Run("out of range values become absent", func(t *testing.T) {
		preds, err := Decode(strings.NewReader(`{"white_pct": 250, "asian_pct": -3}`))
		require.NoError(t, err)
		assert.Nil(t, preds.Get(schema.KeyWhite))
		assert.Nil(t, preds.Get(schema.KeyAsian))
	})

	t.Run("non-object payload fails", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`[1, 2, 3]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a JSON object")
	})
}

// TestApplySetValues exercises the strict --set override path.
func TestApplySetValues(t *testing.T) {
	base := schema.Proportions{schema.KeyWhite: fptr(0.62)}

	t.Run("override existing value", func(t *testing.T) {
		preds, err := ApplySetValues(base, []string{"white_pct=0.5"})
		require.NoError(t, err)
		require.NotNil(t, preds.Get(schema.KeyWhite))
		assert.Equal(t, 0.5, *preds.Get(schema.KeyWhite))

		// The input payload is untouched.
		assert.Equal(t, 0.62, *base.Get(schema.KeyWhite))
	})

	t.Run("alias and percent coercion", func(t *testing.T) {
		preds, err := ApplySetValues(nil, []string{"female=47.8"})
		require.NoError(t, err)
		require.NotNil(t, preds.Get(schema.KeyFemale))
		assert.InDelta(t, 0.478, *preds.Get(schema.KeyFemale), 1e-12)
	})

	t.Run("null marks subgroup unknown", func(t *testing.T) {
		preds, err := ApplySetValues(base, []string{"white_pct=null"})
		require.NoError(t, err)
		assert.Nil(t, preds.Get(schema.KeyWhite))
	})

	t.Run("empty value marks subgroup unknown", func(t *testing.T) {
		preds, err := ApplySetValues(base, []string{"white_pct="})
		require.NoError(t, err)
		assert.Nil(t, preds.Get(schema.KeyWhite))
	})

	t.Run("missing equals sign fails", func(t *testing.T) {
		_, err := ApplySetValues(nil, []string{"white_pct"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
	})

	t.Run("unknown key fails", func(t *testing.T) {
		_, err := ApplySetValues(nil, []string{"hispanic_pct=0.2"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown subgroup key")
	})

	t.Run("non-numeric value fails", func(t *testing.T) {
		_, err := ApplySetValues(nil, []string{"white_pct=lots"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid value")
	})
}

// TestMarshalPayload checks the history serialization round-trips and
// keeps nulls distinct from zeros.
func TestMarshalPayload(t *testing.T) {
	preds := schema.Proportions{
		schema.KeyWhite:  fptr(0.62),
		schema.KeyFemale: nil,
	}

	out := MarshalPayload(preds)

	var decoded map[string]*float64
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.NotNil(t, decoded["white_pct"])
	assert.Equal(t, 0.62, *decoded["white_pct"])
	val, present := decoded["female_pct"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func fptr(v float64) *float64 {
	return &v
}
