package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Store() StoreRepository

	Close() error
}
