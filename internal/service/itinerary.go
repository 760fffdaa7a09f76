// Package service contains the business logic for Tripfolio.
// The Itinerary service owns the in-memory destination collection, enforces
// match semantics, and orchestrates store calls. No file I/O lives here —
// it depends on the store interface, not the implementation.
package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkordes/tripfolio/internal/domain"
	"github.com/pkordes/tripfolio/internal/store"
)

// Itinerary manages the full ordered collection of destinations for one
// session. Insertion order is preserved and duplicate cities are allowed.
// The collection is the sole source of truth: accessors hand out copies, so
// no caller can mutate it from outside.
//
// A mutex serializes access so the HTTP surface can share one instance; the
// contract is still a single session, not multi-user storage.
type Itinerary struct {
	mu           sync.Mutex
	destinations []domain.Destination
	store        store.ItineraryStore
}

// NewItinerary constructs an empty Itinerary backed by the provided store.
func NewItinerary(s store.ItineraryStore) *Itinerary {
	return &Itinerary{store: s}
}

// Add appends a destination to the end of the collection. It always succeeds.
func (it *Itinerary) Add(d domain.Destination) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.destinations = append(it.destinations, d)
}

// Remove deletes every destination whose city matches (case-insensitive,
// exact). It reports whether at least one entry was removed; no match is a
// reported outcome, not an error.
func (it *Itinerary) Remove(city string) bool {
	it.mu.Lock()
	defer it.mu.Unlock()

	kept := it.destinations[:0]
	removed := false
	for _, d := range it.destinations {
		if strings.EqualFold(d.City, city) {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	it.destinations = kept
	return removed
}

// Update applies the partial update to every destination whose city matches
// (case-insensitive, exact) and reports whether at least one was found.
// All matching entries are validated against the update before any is
// committed, so a validation failure mutates nothing.
func (it *Itinerary) Update(city string, u domain.Update) (bool, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	var matches []int
	for i, d := range it.destinations {
		if strings.EqualFold(d.City, city) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return false, nil
	}

	// Build every candidate first: either the whole update lands or none of it.
	updated := make([]domain.Destination, len(matches))
	for j, i := range matches {
		candidate := it.destinations[i]
		if err := candidate.Apply(u); err != nil {
			return true, fmt.Errorf("service.Itinerary.Update: %w", err)
		}
		updated[j] = candidate
	}
	for j, i := range matches {
		it.destinations[i] = updated[j]
	}
	return true, nil
}

// Search returns the ordered subsequence of destinations whose city, country,
// or any activity contains term (case-insensitive substring). The empty term
// matches everything, so Search("") is equivalent to List.
func (it *Itinerary) Search(term string) []domain.Destination {
	it.mu.Lock()
	defer it.mu.Unlock()

	needle := strings.ToLower(term)
	results := []domain.Destination{}
	for _, d := range it.destinations {
		if matches(d, needle) {
			results = append(results, copyOf(d))
		}
	}
	return results
}

// List returns a copy of the full collection in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (it *Itinerary) List() []domain.Destination {
	it.mu.Lock()
	defer it.mu.Unlock()

	out := make([]domain.Destination, 0, len(it.destinations))
	for _, d := range it.destinations {
		out = append(out, copyOf(d))
	}
	return out
}

// Len returns the current number of destinations.
func (it *Itinerary) Len() int {
	it.mu.Lock()
	defer it.mu.Unlock()
	return len(it.destinations)
}

// At returns a copy of the destination at the given 0-based position.
// Positional indices are only meaningful against the listing the caller just
// produced; the second return is false when the index is out of range.
func (it *Itinerary) At(i int) (domain.Destination, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if i < 0 || i >= len(it.destinations) {
		return domain.Destination{}, false
	}
	return copyOf(it.destinations[i]), true
}

// Save persists the entire collection through the store.
func (it *Itinerary) Save() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	if err := it.store.Save(it.destinations); err != nil {
		return fmt.Errorf("service.Itinerary.Save: %w", err)
	}
	return nil
}

// Load replaces the collection with the persisted one, in file order.
// A missing file yields an empty collection and no error. An unreadable or
// structurally invalid file ALSO resets the collection to empty, discarding
// any prior in-memory state, and returns the diagnostic for the caller to
// report.
func (it *Itinerary) Load() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	destinations, err := it.store.Load()
	if err != nil {
		it.destinations = nil
		return fmt.Errorf("service.Itinerary.Load: %w", err)
	}
	it.destinations = destinations
	return nil
}

// matches reports whether needle (already lowercased) is a substring of the
// destination's city, country, or any of its activities.
func matches(d domain.Destination, needle string) bool {
	if strings.Contains(strings.ToLower(d.City), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Country), needle) {
		return true
	}
	for _, a := range d.Activities {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}

// copyOf returns a deep copy: the activities slice must not be shared with
// callers, or an external append/assignment could mutate the collection.
func copyOf(d domain.Destination) domain.Destination {
	out := d
	out.Activities = append([]string(nil), d.Activities...)
	return out
}
