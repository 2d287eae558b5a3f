package memory

import (
	"sync"

	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
)

// Store guarda todo en memoria (dev/tests). Los tres repos comparten el mismo
// mutex: registrar un escaneo y actualizar last_seen de la mascota es una
// sola operación.
type Store struct {
	mu sync.RWMutex

	pets map[string]pets.Pet

	scans      []scans.ScanEvent // orden de inserción = orden por id
	nextScanID int64

	contacts      []contacts.Contact
	nextContactID int64
}

func NewStore() *Store {
	return &Store{
		pets: make(map[string]pets.Pet),
	}
}

func (s *Store) Pets() pets.Repository {
	return &petRepo{s: s}
}

func (s *Store) Scans() scans.Repository {
	return &scanRepo{s: s}
}

func (s *Store) Contacts() contacts.Repository {
	return &contactRepo{s: s}
}
