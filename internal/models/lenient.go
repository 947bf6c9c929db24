package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Generated plans come from a text model, so numbers sometimes arrive as
// strings ("60 seconds") and short strings as bare numbers (reps: 10). The
// types below accept both spellings and always encode in their canonical form.

var (
	errLenientValue = errors.New("value must be a string, number or boolean")
	errLenientRange = errors.New("number is out of range")
)

// FlexInt decodes a JSON number or a string with a leading number.
type FlexInt int

// FlexFloat decodes a JSON number or a string with a leading number.
type FlexFloat float64

// FlexString decodes a JSON string, number or boolean into text.
type FlexString string

func (value *FlexInt) UnmarshalJSON(data []byte) error {
	number, err := decodeLenientNumber(data)
	if err != nil {
		return err
	}
	rounded := math.Round(number)
	if rounded >= float64(math.MaxInt) || rounded < float64(math.MinInt) {
		return errLenientRange
	}
	*value = FlexInt(rounded)
	return nil
}

func (value *FlexFloat) UnmarshalJSON(data []byte) error {
	number, err := decodeLenientNumber(data)
	if err != nil {
		return err
	}
	*value = FlexFloat(number)
	return nil
}

func (value *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*value = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*value = FlexString(text)
	case '{', '[':
		return errLenientValue
	default:
		*value = FlexString(string(trimmed))
	}
	return nil
}

func (value FlexString) String() string {
	return string(value)
}

func decodeLenientNumber(data []byte) (float64, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0, err
		}
		return leadingNumber(text), nil
	case '{', '[':
		return 0, errLenientValue
	case 't', 'f':
		return 0, errLenientValue
	}

	var number float64
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return 0, err
	}
	return number, nil
}

// NumberFromText reads the number a form value or generated text starts with.
func NumberFromText(text string) float64 {
	return leadingNumber(text)
}

// leadingNumber reads "8-12" as 8 and "about 60s" as 0.
func leadingNumber(text string) float64 {
	candidate := strings.TrimSpace(text)
	end := 0
	seenDot := false
	for end < len(candidate) {
		character := candidate[end]
		if character >= '0' && character <= '9' {
			end++
			continue
		}
		if character == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		if character == '-' && end == 0 {
			end++
			continue
		}
		break
	}

	number, err := strconv.ParseFloat(strings.TrimSuffix(candidate[:end], "."), 64)
	if err != nil {
		return 0
	}
	return number
}
