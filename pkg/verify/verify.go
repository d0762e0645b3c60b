// Package verify checks that a rewritten TOML document still means the same
// thing as the original.
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/BurntSushi/toml"
)

// Sentinel errors for verification failures.
var (
	// ErrSemanticChange indicates the two documents decode to different data.
	ErrSemanticChange = errors.New("semantic change")

	// ErrDecode indicates one of the documents is not valid TOML.
	ErrDecode = errors.New("invalid TOML")
)

// Equivalent decodes before and after and reports whether they hold the
// same data. It returns nil when they do, an error wrapping
// ErrSemanticChange naming the first differing top-level key when they
// don't, and an error wrapping ErrDecode when either fails to decode.
func Equivalent(before, after []byte) error {
	left, err := decode("original", before)
	if err != nil {
		return err
	}
	right, err := decode("rewritten", after)
	if err != nil {
		return err
	}

	if reflect.DeepEqual(left, right) {
		return nil
	}

	// NaN never equals itself under DeepEqual; the canonical encoding
	// spells it the same way on both sides.
	if encoded := canonical(left); encoded != nil && bytes.Equal(encoded, canonical(right)) {
		return nil
	}

	return fmt.Errorf("%w: key %q", ErrSemanticChange, firstDifference(left, right))
}

// Decode parses data into a generic map. It is exported for callers that
// only want validity checking.
func Decode(data []byte) (map[string]any, error) {
	return decode("document", data)
}

func decode(label string, data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	if _, err := toml.Decode(string(data), &doc); err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %s document: line %d: %s",
				ErrDecode, label, parseErr.Position.Line, parseErr.Message)
		}
		return nil, fmt.Errorf("%w: %s document: %w", ErrDecode, label, err)
	}
	return doc, nil
}

// canonical returns doc encoded with sorted keys, or nil if encoding fails.
func canonical(doc map[string]any) []byte {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil
	}
	return buf.Bytes()
}

func firstDifference(left, right map[string]any) string {
	keys := slices.Sorted(maps.Keys(left))
	for key := range right {
		if _, ok := left[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		if !reflect.DeepEqual(left[key], right[key]) {
			return key
		}
	}
	return ""
}
