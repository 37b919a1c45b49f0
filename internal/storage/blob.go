package storage

import "io"

// Store archives uploaded quiz sources, so the markdown a caller sent
// stays available next to the wire record derived from it.
type Store interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
