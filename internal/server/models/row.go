package models

import (
	"fmt"
	"strconv"
)

// Row is one result row keyed by column name, as returned by the raw query
// path. Its shape depends entirely on what the executed SQL selected.
type Row map[string]any

// String renders column col as text; missing columns yield "".
func (r Row) String(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int64 reads column col as an integer, returning 0 when it is absent or
// not numeric.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// User projects the account columns of r.
func (r Row) User() *User {
	return &User{
		ID:       r.Int64("id"),
		Username: r.String("username"),
		Email:    r.String("email"),
		Role:     Role(r.String("role")),
	}
}
