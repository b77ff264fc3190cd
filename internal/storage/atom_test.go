package storage

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func freezeClock(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	base := at
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })
	return &base
}

func TestIsAtom(t *testing.T) {
	valid := map[string]any{"value": "v", "createAt": 1.0, "updateAt": 2.0, "timeout": 0.0}
	require.True(t, IsAtom(valid))

	cases := map[string]any{
		"nil":              nil,
		"string":           "hello",
		"number":           42.0,
		"array":            []any{"v", 1.0, 2.0, 0.0},
		"missing value":    map[string]any{"createAt": 1.0, "updateAt": 2.0, "timeout": 0.0},
		"null value":       map[string]any{"value": nil, "createAt": 1.0, "updateAt": 2.0, "timeout": 0.0},
		"numeric value":    map[string]any{"value": 1.0, "createAt": 1.0, "updateAt": 2.0, "timeout": 0.0},
		"negative timeout": map[string]any{"value": "v", "createAt": 1.0, "updateAt": 2.0, "timeout": -1.0},
		"string createAt":  map[string]any{"value": "v", "createAt": "1", "updateAt": 2.0, "timeout": 0.0},
		"missing updateAt": map[string]any{"value": "v", "createAt": 1.0, "timeout": 0.0},
		"foreign object":   map[string]any{"foo": 1.0},
		"huge timeout":     map[string]any{"value": "v", "createAt": 1.0, "updateAt": 1.0, "timeout": 1e300},
		"timeout of 2^63":  map[string]any{"value": "v", "createAt": 1.0, "updateAt": 1.0, "timeout": 9223372036854775808.0},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			require.False(t, IsAtom(raw))
		})
	}
}

func TestNewAtom_StampsBothTimes(t *testing.T) {
	freezeClock(t, time.UnixMilli(1_700_000_000_000))

	a := NewAtom(42, TimeoutForever)
	require.Equal(t, "42", a.Value)
	require.Equal(t, int64(1_700_000_000_000), a.CreateAt)
	require.Equal(t, a.CreateAt, a.UpdateAt)
	require.Equal(t, TimeoutForever, a.Timeout)
}

func TestAtomUpdate_TimeoutOptional(t *testing.T) {
	clock := freezeClock(t, time.UnixMilli(1000))
	a := NewAtom("v1", 5000)

	*clock = clock.Add(time.Second)
	a.Update("v2")
	require.Equal(t, "v2", a.Value)
	require.Equal(t, int64(5000), a.Timeout)
	require.Equal(t, int64(1000), a.CreateAt)
	require.Equal(t, int64(2000), a.UpdateAt)

	a.Update(true, TimeoutForever)
	require.Equal(t, "true", a.Value)
	require.Equal(t, TimeoutForever, a.Timeout)
}

func TestAtomString_FieldOrder(t *testing.T) {
	a := Atom{Value: "x", CreateAt: 1, UpdateAt: 2, Timeout: 3}
	require.Equal(t, `{"value":"x","createAt":1,"updateAt":2,"timeout":3}`, a.String())

	parsed, ok := ParseAtom(a.String())
	require.True(t, ok)
	require.Equal(t, a, parsed)
}

func TestParseAtom_RejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"", "not json", `"hello"`, `{"foo":1}`, `[1,2]`, `null`, `{"value":"v"`,
		`{"value":"v","createAt":1,"updateAt":1e300,"timeout":1e300}`,
	} {
		_, ok := ParseAtom(data)
		require.False(t, ok, data)
	}
}

func TestAtomExpired(t *testing.T) {
	a := Atom{Timeout: 1000}
	require.False(t, a.Expired(time.UnixMilli(1000)))
	require.True(t, a.Expired(time.UnixMilli(1001)))

	forever := Atom{Timeout: TimeoutForever}
	require.False(t, forever.Expired(time.Now().Add(100*365*24*time.Hour)))
}

func TestParseAtom_LargestTimestamps(t *testing.T) {
	largest, ok := ParseAtom(`{"value":"v","createAt":1,"updateAt":1,"timeout":9223372036854775807}`)
	require.True(t, ok)
	require.Equal(t, int64(math.MaxInt64), largest.Timeout)

	_, ok = ParseAtom(`{"value":"v","createAt":1,"updateAt":1,"timeout":9223372036854775808}`)
	require.False(t, ok)


	a, ok := ParseAtom(`{"value":"v","createAt":0,"updateAt":9007199254740991,"timeout":9007199254740991}`)
	require.True(t, ok)
	require.Equal(t, int64(9007199254740991), a.Timeout)
	require.False(t, a.Expired(time.Now()))
}

func TestAtomExpiredNow_FollowsClock(t *testing.T) {
	clock := freezeClock(t, time.UnixMilli(1000))
	a := Atom{Timeout: 1500}
	require.False(t, a.ExpiredNow())

	*clock = time.UnixMilli(1501)
	require.True(t, a.ExpiredNow())
}
