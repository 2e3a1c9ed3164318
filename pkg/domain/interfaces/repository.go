package interfaces

// Repository aggregates the external data collaborators of the engine:
// the organizational event store and the directory.
type Repository interface {
	EventStore() EventStore
	Directory() Directory

	// Close releases underlying client connections
	Close() error
}
