package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kailas-cloud/iskwet/internal/domain"
	"github.com/kailas-cloud/iskwet/internal/domain/word"
)

// Predicate selects words during a scan.
type Predicate func(w *word.Word) bool

// Store is an immutable in-memory snapshot of a dictionary file.
// It is never modified after loading, so it is safe for concurrent use without locking.
// Every word handed out is a deep copy.
type Store struct {
	words    []word.Word
	source   string
	loadedAt time.Time
}

// Load reads and parses the dictionary file at path.
// Any read or parse failure is returned; no partial store is ever produced.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}

	s, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	s.source = path
	return s, nil
}

// LoadReader parses a dictionary document from r.
// The document must be a single JSON object whose "words" key holds an array of complete words.
func LoadReader(r io.Reader) (*Store, error) {
	dec := json.NewDecoder(r)

	var file fileDTO
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDictionary, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after top-level object", domain.ErrInvalidDictionary)
	}
	if file.Words == nil {
		return nil, fmt.Errorf("%w: missing field %q", domain.ErrInvalidDictionary, "words")
	}

	words := make([]word.Word, 0, len(*file.Words))
	for i := range *file.Words {
		w, err := (*file.Words)[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: word %d: %w", domain.ErrInvalidDictionary, i, err)
		}
		words = append(words, w)
	}

	return &Store{words: words, loadedAt: time.Now()}, nil
}

// New builds a store from words already in memory. The slice is copied.
func New(words []word.Word) *Store {
	s := &Store{words: make([]word.Word, len(words)), loadedAt: time.Now()}
	for i := range words {
		s.words[i] = words[i].Clone()
	}
	return s
}

// Len returns the number of words in the snapshot.
func (s *Store) Len() int { return len(s.words) }

// Source returns the path the store was loaded from, empty for in-memory stores.
func (s *Store) Source() string { return s.source }

// LoadedAt returns when the snapshot was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// Words returns a copy of every word in dictionary order.
func (s *Store) Words() []word.Word {
	return s.FindAll(func(*word.Word) bool { return true })
}

// Find returns the first word, in dictionary order, that satisfies pred.
func (s *Store) Find(pred Predicate) (word.Word, bool) {
	for i := range s.words {
		if pred(&s.words[i]) {
			return s.words[i].Clone(), true
		}
	}
	return word.Word{}, false
}

// FindAll returns every word that satisfies pred, in dictionary order.
// The result is empty, never nil, when nothing matches.
func (s *Store) FindAll(pred Predicate) []word.Word {
	out := make([]word.Word, 0)
	for i := range s.words {
		if pred(&s.words[i]) {
			out = append(out, s.words[i].Clone())
		}
	}
	return out
}

// Get returns the word whose identifier equals uuid (case-sensitive).
func (s *Store) Get(_ context.Context, uuid string) (word.Word, error) {
	w, ok := s.Find(func(w *word.Word) bool { return w.UUID == uuid })
	if !ok {
		return word.Word{}, fmt.Errorf("uuid %q: %w", uuid, domain.ErrWordNotFound)
	}
	return w, nil
}

// SearchDefinitions returns the words listing def among their definitions for lang.
// Words without lang are skipped.
func (s *Store) SearchDefinitions(_ context.Context, lang, def string) ([]word.Word, error) {
	return s.FindAll(func(w *word.Word) bool { return w.HasDefinition(lang, def) }), nil
}
