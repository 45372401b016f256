// Package feedback maps user ratings onto score adjustments and persists
// them as a flat JSON file keyed by lower-cased idea title.
package feedback

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Store holds user ratings in [0,5] keyed case-insensitively by idea title.
type Store struct {
	path    string
	ratings map[string]float64
}

// Load creates a store backed by the mapping file at path. A missing or
// corrupt file yields an empty store; load failures are never fatal.
func Load(path string) *Store {
	s := &Store{path: path, ratings: make(map[string]float64)}
	if path == "" {
		return s
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		zap.L().Warn("feedback: ignoring corrupt feedback file",
			zap.String("path", path), zap.Error(err))
		return s
	}
	for title, rating := range raw {
		s.ratings[strings.ToLower(title)] = rating
	}
	return s
}

// Adjustment converts the stored rating for a title into a score delta in
// [-5, +5] by centering at 2.5. Unknown titles contribute nothing.
func (s *Store) Adjustment(title string) float64 {
	rating, ok := s.ratings[strings.ToLower(title)]
	if !ok {
		return 0
	}
	return (rating - 2.5) * 2
}

// Record stores or overwrites the rating for a title.
func (s *Store) Record(title string, rating float64) error {
	if rating < 0 || rating > 5 {
		return eris.Errorf("feedback: rating %.1f out of range [0,5]", rating)
	}
	s.ratings[strings.ToLower(title)] = rating
	return nil
}

// Len reports the number of stored ratings.
func (s *Store) Len() int {
	return len(s.ratings)
}

// Persist writes the full mapping to path, falling back to the path the
// store was loaded from. This is the one operation here that fails loudly:
// persisting with no known target is an error, not a silent skip.
func (s *Store) Persist(path string) error {
	target := path
	if target == "" {
		target = s.path
	}
	if target == "" {
		return eris.New("feedback: no persistence path specified")
	}

	data, err := json.MarshalIndent(s.ratings, "", "  ")
	if err != nil {
		return eris.Wrap(err, "feedback: marshal ratings")
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return eris.Wrapf(err, "feedback: write %s", target)
	}
	return nil
}
