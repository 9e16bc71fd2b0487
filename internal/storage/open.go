package storage

import (
	"fmt"
	"strings"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Open returns the store for backend together with its close function.
func Open(backend Backend, path string) (KV, func() error, error) {
	noop := func() error { return nil }
	switch Backend(strings.ToLower(string(backend))) {
	case BackendSQLite:
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case BackendFile:
		return NewFileStore(path), noop, nil
	case BackendMemory, "":
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
