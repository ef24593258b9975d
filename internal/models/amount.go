package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a transaction amount that accepts either a JSON number or a
// numeric string ("50"), the two shapes clients actually send. Anything
// else fails to unmarshal, so malformed amounts are never persisted.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a number or a numeric string")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = Amount(f)
	return nil
}
