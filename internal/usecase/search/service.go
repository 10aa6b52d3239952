package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/iskwet/internal/domain"
	"github.com/kailas-cloud/iskwet/internal/domain/word"
	logpkg "github.com/kailas-cloud/iskwet/internal/logger"
)

// Operation names used for metrics and logs.
const (
	OpGet          = "get"
	OpByDefinition = "by_definition"
)

// Service answers word lookups against the dictionary snapshot.
type Service struct {
	repo     Repository
	recorder Recorder
}

// New creates a search service. A nil recorder disables lookup metrics.
func New(repo Repository, recorder Recorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// Get returns the word with the given identifier.
// Returns domain.ErrWordNotFound when no word carries it.
func (s *Service) Get(ctx context.Context, uuid string) (word.Word, error) {
	if uuid == "" {
		return word.Word{}, fmt.Errorf("%w: uuid is required", domain.ErrInvalidQuery)
	}

	w, err := s.repo.Get(ctx, uuid)
	switch {
	case errors.Is(err, domain.ErrWordNotFound):
		s.record(OpGet, "miss", 0)
		logpkg.FromContext(ctx).Debug("word not found", zap.String("uuid", uuid))
		return word.Word{}, fmt.Errorf("get word: %w", err)
	case err != nil:
		s.record(OpGet, "error", 0)
		return word.Word{}, fmt.Errorf("get word %q: %w", uuid, err)
	}

	s.record(OpGet, "hit", 1)
	return w, nil
}

// ByDefinition returns the words that list def among their definitions for lang, in dictionary order.
// An empty result is not an error.
func (s *Service) ByDefinition(ctx context.Context, lang, def string) ([]word.Word, error) {
	if lang == "" {
		return nil, fmt.Errorf("%w: language is required", domain.ErrInvalidQuery)
	}
	if def == "" {
		return nil, fmt.Errorf("%w: word is required", domain.ErrInvalidQuery)
	}

	words, err := s.repo.SearchDefinitions(ctx, lang, def)
	if err != nil {
		s.record(OpByDefinition, "error", 0)
		return nil, fmt.Errorf("search definitions: %w", err)
	}
	if words == nil {
		words = []word.Word{}
	}

	result := "hit"
	if len(words) == 0 {
		result = "miss"
	}
	s.record(OpByDefinition, result, len(words))
	logpkg.FromContext(ctx).Debug("definition search",
		zap.String("lang", lang),
		zap.String("word", def),
		zap.Int("matches", len(words)),
	)
	return words, nil
}

func (s *Service) record(op, result string, n int) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordLookup(op, result, n)
}
