package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RatingKind tags the wire shape an average rating arrived in.
type RatingKind int

const (
	// RatingAbsent covers a missing field and an explicit null.
	RatingAbsent RatingKind = iota
	RatingNumber
	RatingString
	// RatingNested is {"average_rating": "..."}.
	RatingNested
)

// ZeroRating is the normalized value shown for an unrated or unknown recipe.
const ZeroRating = "0.0"

// Rating is an average rating as sent by the API. The API uses several
// shapes for the same value; UnmarshalJSON records which one was seen and
// Normalize turns any of them into the single display string.
type Rating struct {
	Kind   RatingKind
	Number float64
	// Text holds the string form, or the nested field for RatingNested.
	Text string
}

func RatingFromNumber(f float64) Rating { return Rating{Kind: RatingNumber, Number: f} }
func RatingFromString(s string) Rating  { return Rating{Kind: RatingString, Text: s} }

// NeedsFetch reports whether the value must be re-read from the ratings
// endpoint: absent, null, numeric zero or the literal "0.0". Zero is taken
// to mean "not computed yet".
func (r Rating) NeedsFetch() bool {
	switch r.Kind {
	case RatingAbsent:
		return true
	case RatingNumber:
		return r.Number == 0
	case RatingString:
		return r.Text == ZeroRating
	default:
		return false
	}
}

// Normalize returns the decimal string every view renders. Falsy values
// (absent, zero, empty string, missing nested field) become ZeroRating.
func (r Rating) Normalize() string {
	switch r.Kind {
	case RatingNumber:
		if r.Number == 0 {
			return ZeroRating
		}
		return strconv.FormatFloat(r.Number, 'f', -1, 64)
	case RatingString, RatingNested:
		if r.Text == "" {
			return ZeroRating
		}
		return r.Text
	default:
		return ZeroRating
	}
}

// Normalized returns r re-tagged as a string rating holding Normalize().
func (r Rating) Normalized() Rating {
	return RatingFromString(r.Normalize())
}

func (r Rating) String() string { return r.Normalize() }

func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Rating{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RatingFromString(s)
		return nil
	case '{':
		var nested struct {
			AverageRating json.RawMessage `json:"average_rating"`
		}
		if err := json.Unmarshal(b, &nested); err != nil {
			return err
		}
		inner, err := scalarText(nested.AverageRating)
		if err != nil {
			return fmt.Errorf("nested average_rating: %w", err)
		}
		*r = Rating{Kind: RatingNested, Text: inner}
		return nil
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("average_rating: %w", err)
		}
		*r = RatingFromNumber(f)
		return nil
	}
}

func (r Rating) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RatingNumber:
		return json.Marshal(r.Number)
	case RatingString:
		return json.Marshal(r.Text)
	case RatingNested:
		return json.Marshal(map[string]string{"average_rating": r.Text})
	default:
		return []byte("null"), nil
	}
}

// scalarText reads a JSON string or number as text. Null, absent and zero
// give "".
func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", err
	}
	if f == 0 {
		return "", nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
