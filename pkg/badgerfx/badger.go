package badgerfx

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// SeekEnd is appended to a prefix to start a reverse iteration after its last key.
const SeekEnd = byte(0xFF)

func New(config Config, logger *zapLogger) (*badger.DB, error) {
	if !config.InMemory {
		if err := os.MkdirAll(config.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create BadgerDB directory: %w", err)
		}
	}

	opts := config.Build().
		WithLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	return db, nil
}
