// Package secret holds key material in wrappers that are zeroed on Close and
// that never print their contents through %v, %s, or JSON marshaling.
package secret

import "crypto/subtle"

// Material is a byte slice that is wiped on Close. It must not be copied
// after construction; callers needing a copy should call Bytes and copy that
// themselves, understanding the copy is then their responsibility to zero.
type Material struct {
	data   []byte
	closed bool
}

// New takes ownership of data and wraps it. The caller must not retain or
// mutate data after this call.
func New(data []byte) *Material {
	return &Material{data: data}
}

// Zero allocates a new all-zero Material of length n.
func Zero(n int) *Material {
	return &Material{data: make([]byte, n)}
}

// Bytes returns the underlying buffer. The returned slice aliases internal
// state and becomes invalid after Close.
func (m *Material) Bytes() []byte {
	if m == nil || m.closed {
		return nil
	}
	return m.data
}

// Len reports the length of the wrapped material.
func (m *Material) Len() int {
	if m == nil || m.closed {
		return 0
	}
	return len(m.data)
}

// Close overwrites the buffer with zeros and marks the wrapper unusable.
// Close is idempotent.
func (m *Material) Close() {
	if m == nil || m.closed {
		return
	}
	zero := make([]byte, len(m.data))
	subtle.ConstantTimeCopy(1, m.data, zero)
	m.data = nil
	m.closed = true
}

// String deliberately does not expose the wrapped bytes, so that a stray
// %v or log field does not leak key material.
func (m *Material) String() string {
	return "secret.Material{...}"
}
