package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var errInvalidQuantity = errors.New("quantity must contain digits")

// QuantityInput accepts a JSON number or a string. Strings keep only their
// digit characters, so "300 g" reads as 300.
type QuantityInput struct {
	Value float64
	Set   bool
}

func (q *QuantityInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = QuantityInput{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		digits := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) && r < unicode.MaxASCII {
				return r
			}
			return -1
		}, s)
		if digits == "" {
			return errInvalidQuantity
		}
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return errInvalidQuantity
		}
		*q = QuantityInput{Value: v, Set: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errInvalidQuantity
	}
	*q = QuantityInput{Value: v, Set: true}
	return nil
}

// Ptr returns nil when the quantity was not sent.
func (q QuantityInput) Ptr() *float64 {
	if !q.Set {
		return nil
	}
	v := q.Value
	return &v
}
