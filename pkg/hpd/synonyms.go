package hpd

import (
	_ "embed"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hpdgraph/pkg/errors"
)

//go:embed synonyms.toml
var defaultSynonyms []byte

// Synonyms maps name variants to a canonical display string.
type Synonyms struct {
	canonical map[string]string
}

type synonymFile struct {
	Entity []struct {
		Canonical string   `toml:"canonical"`
		Names     []string `toml:"names"`
	} `toml:"entity"`
}

// DefaultSynonyms returns the built-in synonym table.
func DefaultSynonyms() *Synonyms {
	s, err := ParseSynonyms(defaultSynonyms)
	if err != nil {
		panic("hpd: embedded synonyms.toml: " + err.Error())
	}
	return s
}

// LoadSynonyms reads a synonym table in TOML form from path.
func LoadSynonyms(path string) (*Synonyms, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "synonyms %s", path)
	}
	if err != nil {
		return nil, err
	}
	return ParseSynonyms(data)
}

// ParseSynonyms decodes a TOML synonym table:
//
//	[[entity]]
//	canonical = "PINNACLE"
//	names = ["DAVID ROSE", "DAVID RADONCIC"]
//
// A name claimed by two different entities is an error.
func ParseSynonyms(data []byte) (*Synonyms, error) {
	var f synonymFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode synonyms")
	}
	s := &Synonyms{canonical: make(map[string]string)}
	for _, e := range f.Entity {
		if e.Canonical == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "synonym entity without canonical name")
		}
		for _, name := range e.Names {
			if prev, ok := s.canonical[name]; ok && prev != e.Canonical {
				return nil, errors.New(errors.ErrCodeInvalidInput, "name %q maps to both %q and %q", name, prev, e.Canonical)
			}
			s.canonical[name] = e.Canonical
		}
	}
	return s, nil
}

// Resolve returns the canonical form of name, or name itself.
func (s *Synonyms) Resolve(name string) string {
	if c, ok := s.canonical[name]; ok {
		return c
	}
	return name
}

// Len returns the number of known variants.
func (s *Synonyms) Len() int { return len(s.canonical) }
