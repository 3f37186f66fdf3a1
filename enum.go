package cadence

import (
	"encoding/json"
	"strconv"
	"strings"
)

// enum is satisfied by the package's closed integer enums.
type enum interface {
	~int
	IsValid() bool
}

// parseEnum resolves s, ignoring case and surrounding space, against the
// names table (indexed by value, "" for unused slots) or as a decimal value.
func parseEnum[T enum](s string, names []string) (T, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		v := T(n)
		return v, v.IsValid()
	}
	for i, name := range names {
		if name != "" && strings.EqualFold(s, name) {
			return T(i), true
		}
	}
	return 0, false
}

// enumText extracts the text of a JSON string or number.
func enumText(data []byte) (string, bool) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, true
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		return strconv.Itoa(n), true
	}
	return "", false
}
