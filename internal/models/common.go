// server/internal/models/common.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt is a quantity value that tolerates sloppy client input: numbers,
// numeric strings, or garbage. Anything unparsable (or non-positive)
// decodes as 1.
type FlexInt int

func (q *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)

	n, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			n = int(f)
		} else {
			n = 1
		}
	}
	if n < 1 {
		n = 1
	}
	*q = FlexInt(n)
	return nil
}

func (q FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(q))
}
