// Package payload parses predictions payloads from upstream enrollment
// models into canonical subgroup proportions. The boundary is tolerant:
// aliases are canonicalized, percent-scale values are coerced to
// fractions, and anything non-numeric or out of range becomes an absent
// value rather than an error.
package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/schema"
)

// keyAliases maps the subgroup spellings observed across upstream
// pipeline revisions onto the canonical keys.
var keyAliases = map[string]schema.SubgroupKey{
	// race
	"white":      schema.KeyWhite,
	"race_white": schema.KeyWhite,
	"black":      schema.KeyBlack,
	"race_black": schema.KeyBlack,
	"asian":      schema.KeyAsian,
	"race_asian": schema.KeyAsian,
	"aian":       schema.KeyAIAN,
	"ai_an":      schema.KeyAIAN,
	"ai_an_pct":  schema.KeyAIAN,
	// sex
	"female":     schema.KeyFemale,
	"sex_female": schema.KeyFemale,
	"male":       schema.KeyMale,
	"sex_male":   schema.KeyMale,
	// age
	"age65":          schema.KeyAge65,
	"age_65_plus":    schema.KeyAge65,
	"age65_plus_pct": schema.KeyAge65,
}

// CanonicalKey resolves a raw payload key to its canonical form.
// The second return is false when the key is not recognized.
func CanonicalKey(raw string) (schema.SubgroupKey, bool) {
	key := schema.SubgroupKey(strings.TrimSpace(raw))
	if schema.IsCanonicalKey(key) {
		return key, true
	}
	if alias, ok := keyAliases[strings.ToLower(string(key))]; ok {
		return alias, true
	}
	return "", false
}

// CoerceValue normalizes a numeric prediction to a fraction in [0,1].
// Values in [0,1] pass through; values in (1,100] are treated as
// percents and divided by 100; everything else is absent (nil).
func CoerceValue(v float64) *float64 {
	switch {
	case v >= 0 && v <= 1:
		return &v
	case v > 1 && v <= 100:
		frac := v / 100.0
		return &frac
	default:
		return nil
	}
}

// LoadFile reads a predictions payload from a JSON file, or stdin when
// path is "-".
func LoadFile(path string) (schema.Proportions, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open predictions file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}
	return Decode(reader)
}

// Decode parses a JSON object of subgroup key to number-or-null into
// canonical proportions. Unknown keys are dropped with a warning so a
// renamed upstream field cannot silently masquerade as a subgroup.
// Non-numeric values (strings, objects) become absent, never errors.
func Decode(r io.Reader) (schema.Proportions, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("predictions payload is not a JSON object: %w", err)
	}

	preds := make(schema.Proportions, len(raw))
	for rawKey, rawVal := range raw {
		key, ok := CanonicalKey(rawKey)
		if !ok {
			contract.LogWarn(fmt.Sprintf("ignoring unknown subgroup key %q", rawKey), nil)
			continue
		}

		var num *float64
		if err := json.Unmarshal(rawVal, &num); err != nil || num == nil {
			// null, string, or other non-numeric value: unscored
			preds[key] = nil
			continue
		}
		preds[key] = CoerceValue(*num)
	}

	return preds, nil
}

// ApplySetValues merges --set key=value overrides over a payload.
// The value "null" (or an empty value) marks the subgroup as explicitly
// unknown. Unknown keys and malformed pairs are errors here, since the
// user typed them by hand.
func ApplySetValues(preds schema.Proportions, pairs []string) (schema.Proportions, error) {
	if preds == nil {
		preds = make(schema.Proportions)
	} else {
		preds = preds.Clone()
	}

	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid --set %q. expected key=value", pair)
		}

		key, ok := CanonicalKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown subgroup key %q in --set", name)
		}

		value = strings.TrimSpace(value)
		if value == "" || strings.EqualFold(value, "null") {
			preds[key] = nil
			continue
		}

		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for --set %s: %w", value, key, err)
		}
		preds[key] = CoerceValue(num)
	}

	return preds, nil
}

// Load combines a payload file (optional) with --set overrides.
func Load(path string, setValues []string) (schema.Proportions, error) {
	var preds schema.Proportions
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		preds = loaded
	}
	return ApplySetValues(preds, setValues)
}

// MarshalPayload serializes proportions for history recording. Map keys
// marshal in sorted order, so identical payloads produce identical bytes.
func MarshalPayload(preds schema.Proportions) string {
	ordered := make(map[string]*float64, len(preds))
	for k, v := range preds {
		ordered[string(k)] = v
	}
	data, err := json.Marshal(ordered)
	if err != nil {
		return "{}"
	}
	return string(data)
}
