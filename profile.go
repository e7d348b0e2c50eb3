package moneymetrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
)

// ProfileVersion is the version written in new profiles, and the version of
// a profile document that does not say.
const ProfileVersion = 1

// Profile is a snapshot of datasets and screens that can be saved to a file,
// shared and loaded later.
//
// Screens refer to datasets by name. A screen may refer to a dataset that is
// not in the profile.
type Profile struct {
	Version  int
	Datasets map[string]json.RawMessage
	Screens  []Screen
}

// NewProfile creates an empty profile at the current version.
func NewProfile() *Profile {
	return &Profile{
		Version:  ProfileVersion,
		Datasets: make(map[string]json.RawMessage),
		Screens:  make([]Screen, 0),
	}
}

// Document is the JSON representation of a Profile.
type Document struct {
	Version  int                        `json:"version"`
	Datasets map[string]json.RawMessage `json:"datasets"`
	Screens  []Screen                   `json:"screens"`
}

// UnmarshalJSON decodes a document, a missing version defaults to ProfileVersion.
func (d *Document) UnmarshalJSON(data []byte) error {
	type document Document // without methods.
	doc := document{Version: ProfileVersion}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*d = Document(doc)
	return nil
}

// ToDocument returns a copy of the profile as a Document.
func (p *Profile) ToDocument() Document {
	doc := Document{
		Version:  p.Version,
		Datasets: make(map[string]json.RawMessage, len(p.Datasets)),
		Screens:  make([]Screen, 0, len(p.Screens)),
	}
	for name, raw := range p.Datasets {
		doc.Datasets[name] = bytes.Clone(raw)
	}
	for _, s := range p.Screens {
		doc.Screens = append(doc.Screens, s.clone())
	}
	return doc
}

// FromDocument creates a profile from a document.
//
// Missing datasets and screens are empty. Dataset values are stored in compact
// form. References from screens to datasets are not checked.
func FromDocument(doc Document) (*Profile, error) {
	p := NewProfile()
	p.Version = doc.Version
	for name, raw := range doc.Datasets {
		value, err := canonical(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid dataset %q: %w: %w", name, ErrParse, err)
		}
		p.Datasets[name] = value
	}
	for _, s := range doc.Screens {
		p.Screens = append(p.Screens, s.clone())
	}
	return p, nil
}

// Equal reports whether two profiles have the same version, datasets and screens.
func (p *Profile) Equal(o *Profile) bool {
	return p.Version == o.Version &&
		maps.EqualFunc(p.Datasets, o.Datasets, func(a, b json.RawMessage) bool { return bytes.Equal(a, b) }) &&
		slices.EqualFunc(p.Screens, o.Screens, Screen.Equal)
}

// Save writes the profile as an indented JSON file.
func (p *Profile) Save(path string) error {
	data, err := json.MarshalIndent(p.ToDocument(), "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode profile: %w: %w", ErrParse, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write profile %q: %w: %w", path, ErrIO, err)
	}
	log.Debug().Str("path", path).Int("datasets", len(p.Datasets)).Int("screens", len(p.Screens)).Msg("save-profile")
	return nil
}

// LoadProfile reads a profile from a JSON file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read profile %q: %w: %w", path, ErrIO, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse profile %q: %w: %w", path, ErrParse, err)
	}
	p, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot load profile %q: %w", path, err)
	}
	log.Debug().Str("path", path).Int("version", p.Version).Int("datasets", len(p.Datasets)).Int("screens", len(p.Screens)).Msg("load-profile")
	return p, nil
}
