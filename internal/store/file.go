// Package store contains all persistence logic for Tripfolio.
// The itinerary lives in a single flat JSON file; no business logic lives
// here — only file I/O and type mapping.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pkordes/tripfolio/internal/domain"
)

// ItineraryStore defines the persistence operations for the destination
// collection. The service layer depends on this interface, not the concrete
// file implementation, which allows the service to be unit-tested with a mock.
type ItineraryStore interface {
	// Save writes the entire ordered collection, fully overwriting any
	// previously persisted content.
	Save(destinations []domain.Destination) error

	// Load reads the persisted collection in file order.
	// A missing file is not an error: it returns (nil, nil).
	// An unreadable or structurally invalid file returns an error wrapping
	// domain.ErrPersistence.
	Load() ([]domain.Destination, error)
}

// File is the flat-file implementation of ItineraryStore.
type File struct {
	path string
}

// NewFile constructs a File store persisting to the given path
// (conventionally "itineraries.json").
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path this store persists to.
func (f *File) Path() string {
	return f.path
}

// Save writes the collection as an indented JSON array of six-key records.
// The write goes to a uniquely named temp file in the same directory and is
// then renamed over the target, so a crash mid-write cannot leave a truncated
// itinerary file behind.
func (f *File) Save(destinations []domain.Destination) error {
	if destinations == nil {
		destinations = []domain.Destination{}
	}
	data, err := json.MarshalIndent(destinations, "", "  ")
	if err != nil {
		return fmt.Errorf("store.File.Save: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(f.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store.File.Save: write temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store.File.Save: rename: %w", err)
	}
	return nil
}

// Load reads and decodes the persisted collection.
func (f *File) Load() ([]domain.Destination, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store.File.Load: %w: %v", domain.ErrPersistence, err)
	}

	var destinations []domain.Destination
	if err := json.Unmarshal(data, &destinations); err != nil {
		return nil, fmt.Errorf("store.File.Load: %w: decode %s: %v", domain.ErrPersistence, f.path, err)
	}
	return destinations, nil
}
