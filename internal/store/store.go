// Package store provides the key/value persistence the session saves its
// profile and meal log into. Values are opaque strings; a missing key is
// reported through the found flag, never as an error.
package store

import "context"

// KV is a string key/value store.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Prefixed namespaces every key of an underlying store.
type Prefixed struct {
	kv     KV
	prefix string
}

var _ KV = (*Prefixed)(nil)

// WithPrefix returns a view of kv where every key is prefixed, e.g.
// "user/7/" + "meals-data".
func WithPrefix(kv KV, prefix string) *Prefixed {
	return &Prefixed{kv: kv, prefix: prefix}
}

func (p *Prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *Prefixed) Set(ctx context.Context, key, value string) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}
