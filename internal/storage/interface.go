package storage

// Provider persists the single progress document for one device
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Document
	// ReadDocument returns errors.ErrNotFound when nothing has been written yet
	ReadDocument() ([]byte, error)
	WriteDocument(data []byte) error

	// Utils
	GetConfigPath() string
	Kind() string
}
