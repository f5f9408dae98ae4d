package badgerfx

// Entity is a value stored under its own key with optional secondary index keys.
// Index entries hold the entity key as their value.
type Entity interface {
	StorageKey() string
	StorageIndexes() []string
	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
