package moneymetrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Store keeps named datasets.
//
// A dataset is any value that can be encoded in JSON. The Store never shares
// memory with its callers: values are encoded into a private canonical JSON
// form when they are stored, and decoded into a fresh value each time they are
// read. Callers are free to modify what they get.
type Store struct {
	datasets map[string]json.RawMessage
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{datasets: make(map[string]json.RawMessage)}
}

// Put stores a copy of value under name.
//
// If a dataset already exists with that name, Put fails with ErrDuplicateName
// unless overwrite is true. The empty name is reserved for screens without a
// dataset and is rejected with ErrInvalidName.
func (s *Store) Put(name string, value any, overwrite bool) error {
	if name == "" {
		return fmt.Errorf("cannot store dataset: empty name: %w", ErrInvalidName)
	}
	if _, exists := s.datasets[name]; exists && !overwrite {
		return fmt.Errorf("cannot store dataset %q: %w", name, ErrDuplicateName)
	}
	raw, err := canonical(value)
	if err != nil {
		return fmt.Errorf("cannot store dataset %q: %w: %w", name, ErrParse, err)
	}
	s.datasets[name] = raw
	return nil
}

// Delete removes the dataset called name. Deleting an unknown dataset does nothing.
func (s *Store) Delete(name string) {
	delete(s.datasets, name)
}

// Get returns a copy of the dataset called name, or false if it does not exist.
//
// The copy is made of the generic JSON types (map[string]any, []any, string,
// bool, nil) with numbers decoded as json.Number so that no digit is lost.
func (s *Store) Get(name string) (any, bool) {
	raw, ok := s.datasets[name]
	if !ok {
		return nil, false
	}
	v, err := decodeValue(raw)
	if err != nil {
		// raw values have been produced by json.Marshal.
		panic(fmt.Sprintf("corrupted dataset %q: %v", name, err))
	}
	return v, true
}

// Decode decodes the dataset called name into dst. It returns false if the
// dataset does not exist.
func (s *Store) Decode(name string, dst any) (bool, error) {
	raw, ok := s.datasets[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("cannot decode dataset %q: %w: %w", name, ErrParse, err)
	}
	return true, nil
}

// Raw returns a copy of the JSON encoding of the dataset called name, or nil
// if it does not exist.
func (s *Store) Raw(name string) json.RawMessage {
	raw, ok := s.datasets[name]
	if !ok {
		return nil
	}
	return bytes.Clone(raw)
}

// Has reports whether a dataset called name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.datasets[name]
	return ok
}

// Len returns the number of datasets.
func (s *Store) Len() int { return len(s.datasets) }

// Names returns the sorted list of dataset names.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.datasets))
}

// All iterates over all datasets in name order, yielding a copy of their JSON
// encoding.
func (s *Store) All() iter.Seq2[string, json.RawMessage] {
	return func(yield func(string, json.RawMessage) bool) {
		for _, name := range s.Names() {
			if !yield(name, bytes.Clone(s.datasets[name])) {
				return
			}
		}
	}
}

// canonical returns the compact JSON encoding of v.
// A json.RawMessage is validated and compacted.
func canonical(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// decodeValue decodes raw into generic JSON types, keeping numbers as json.Number.
func decodeValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
