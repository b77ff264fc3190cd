package storage

import (
	"errors"
	"math"
	"strings"
	"time"
)

// ErrNegativeTimeout is returned by Set when the expiry instant is below zero.
var ErrNegativeTimeout = errors.New("storage: negative timeout")

// unsetPath is joined in place of a missing path so existing keys stay readable.
const unsetPath = "undefined"

// Backend is the synchronous string key-value medium units are layered on.
type Backend interface {
	// GetItem returns the stored string and whether the key exists.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	// RemoveItem deletes the key. Removing a missing key is not an error.
	RemoveItem(key string) error
}

// Instance holds either a backend handle or a function producing one.
// It is resolved on every operation and never cached.
type Instance struct {
	backend Backend
	factory func() Backend
}

// Direct wraps a fixed backend.
func Direct(b Backend) Instance {
	return Instance{backend: b}
}

// Deferred wraps a function called each time a backend is needed.
func Deferred(fn func() Backend) Instance {
	return Instance{factory: fn}
}

func (i Instance) resolve() Backend {
	if i.factory != nil {
		return i.factory()
	}
	return i.backend
}

// BaseConfig is shared by every unit of a namespace.
type BaseConfig struct {
	// Path prefixes each key. An empty path is keyed as "undefined".
	Path     string
	Instance Instance
}

// Unit returns the unit bound to key under this configuration.
func (c BaseConfig) Unit(key string) *Unit {
	return NewUnit(c, key)
}

// Unit binds one logical key to a backend and applies expiry on read.
// It holds no mutable state and may be shared.
type Unit struct {
	base BaseConfig
	key  string
}

// NewUnit creates a unit for key.
func NewUnit(base BaseConfig, key string) *Unit {
	return &Unit{base: base, key: key}
}

// Key returns the composite backend key, path + "/" + key.
func (u *Unit) Key() string {
	path := u.base.Path
	if path == "" {
		path = unsetPath
	}
	return strings.Join([]string{path, u.key}, "/")
}

// Atom reads the stored record regardless of expiry.
// ok is false when the key is missing or its payload is not a record.
func (u *Unit) Atom() (Atom, bool, error) {
	data, found, err := u.base.Instance.resolve().GetItem(u.Key())
	if err != nil {
		return Atom{}, false, err
	}
	if !found {
		return Atom{}, false, nil
	}
	atom, ok := ParseAtom(data)
	return atom, ok, nil
}

// Get returns the value when present and not expired.
// Expired records are left in the backend.
func (u *Unit) Get() (string, bool, error) {
	atom, ok, err := u.Atom()
	if err != nil || !ok {
		return "", false, err
	}
	if atom.Expired(now()) {
		return "", false, nil
	}
	return atom.Value, true, nil
}

// Set writes value with an absolute expiry in epoch milliseconds
// (TimeoutForever for none). An existing record, expired or not, keeps its CreateAt.
// The read-modify-write is not atomic against other writers of the same backend.
func (u *Unit) Set(value any, timeout int64) error {
	if timeout < 0 {
		return ErrNegativeTimeout
	}

	atom, ok, err := u.Atom()
	if err != nil {
		return err
	}
	if ok {
		atom.Update(value, timeout)
	} else {
		atom = NewAtom(value, timeout)
	}

	return u.base.Instance.resolve().SetItem(u.Key(), atom.String())
}

// Remove deletes the backend entry.
func (u *Unit) Remove() error {
	return u.base.Instance.resolve().RemoveItem(u.Key())
}

// ExpireIn converts a relative TTL into an absolute timeout for Set.
// Non-positive durations mean TimeoutForever; partial milliseconds round up.
func ExpireIn(d time.Duration) int64 {
	if d <= 0 {
		return TimeoutForever
	}
	ms := d.Milliseconds()
	if d%time.Millisecond != 0 {
		ms++
	}
	return ExpireInMillis(ms)
}

// ExpireInMillis is ExpireIn for a TTL in milliseconds. Instants past the
// int64 range saturate at math.MaxInt64 instead of wrapping.
func ExpireInMillis(ms int64) int64 {
	if ms <= 0 {
		return TimeoutForever
	}
	base := now().UnixMilli()
	if ms > math.MaxInt64-base {
		return math.MaxInt64
	}
	return base + ms
}
