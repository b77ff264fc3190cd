package storage

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// TimeoutForever marks a record that never expires.
const TimeoutForever int64 = 0

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

func nowMillis() int64 {
	return now().UnixMilli()
}

// Atom is the single persisted record shape.
// Timestamps are epoch milliseconds; Timeout is absolute, or TimeoutForever.
type Atom struct {
	Value    string `json:"value"`
	CreateAt int64  `json:"createAt"`
	UpdateAt int64  `json:"updateAt"`
	Timeout  int64  `json:"timeout"`
}

// NewAtom stamps a fresh record with the current time.
func NewAtom(value any, timeout int64) Atom {
	ts := nowMillis()
	return Atom{
		Value:    Stringify(value),
		CreateAt: ts,
		UpdateAt: ts,
		Timeout:  timeout,
	}
}

// Update replaces the value and bumps UpdateAt. The timeout is optional;
// when omitted the previous expiry is kept.
func (a *Atom) Update(value any, timeout ...int64) *Atom {
	a.Value = Stringify(value)
	a.UpdateAt = nowMillis()
	if len(timeout) > 0 {
		a.Timeout = timeout[0]
	}
	return a
}

// Expired reports whether the record is past its timeout at the given instant.
func (a Atom) Expired(at time.Time) bool {
	return a.Timeout != TimeoutForever && at.UnixMilli() > a.Timeout
}

// ExpiredNow reports whether the record is past its timeout on the package clock,
// the same instant Unit.Get checks against.
func (a Atom) ExpiredNow() bool {
	return a.Expired(now())
}

// String encodes the record as JSON with a fixed field order.
func (a Atom) String() string {
	// Marshalling a struct of a string and three ints cannot fail.
	b, _ := json.Marshal(a)
	return string(b)
}

// IsAtom reports whether a decoded JSON value has the record shape:
// an object with a string value and non-negative numeric timestamps.
func IsAtom(raw any) bool {
	obj, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := obj["value"].(string); !ok {
		return false
	}
	for _, field := range []string{"createAt", "updateAt", "timeout"} {
		if _, ok := millis(obj[field]); !ok {
			return false
		}
	}
	return true
}

// ParseAtom decodes a backend payload. Anything that is not valid JSON or
// not shaped like a record yields ok == false.
func ParseAtom(data string) (Atom, bool) {
	// Numbers stay json.Number so int64 timestamps decode exactly.
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil || dec.More() {
		return Atom{}, false
	}
	if !IsAtom(raw) {
		return Atom{}, false
	}

	obj := raw.(map[string]any)
	createAt, _ := millis(obj["createAt"])
	updateAt, _ := millis(obj["updateAt"])
	timeout, _ := millis(obj["timeout"])
	return Atom{
		Value:    obj["value"].(string),
		CreateAt: createAt,
		UpdateAt: updateAt,
		Timeout:  timeout,
	}, true
}

// millis accepts numbers that fit a non-negative int64.
func millis(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return floatMillis(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, i >= 0
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatMillis(f)
	case int64:
		return n, n >= 0
	case int:
		return int64(n), n >= 0
	default:
		return 0, false
	}
}

func floatMillis(f float64) (int64, bool) {
	// float64(math.MaxInt64) rounds up to 2^63, which no longer fits.
	if f < 0 || f >= math.MaxInt64 || math.IsNaN(f) {
		return 0, false
	}
	return int64(f), true
}
