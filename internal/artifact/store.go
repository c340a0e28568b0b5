// Package artifact is the persistence boundary for trained resolver state.
// The vectorizer, classifier, answer list and manifest are written together
// and read together; a partially present set is invalid and fails fast.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runsage/runsage/internal/resolver"
	"github.com/runsage/runsage/pkg/models"
)

const (
	vectorizerFile = "vectorizer.json"
	classifierFile = "classifier.json"
	answersFile    = "answers.json"
	manifestFile   = "manifest.json"
)

var artifactFiles = []string{vectorizerFile, classifierFile, answersFile, manifestFile}

var (
	// ErrNotFound means no artifact set exists yet.
	ErrNotFound = errors.New("no trained model found (run 'runsage train' first)")
	// ErrPartial means some but not all artifacts are present; the set is
	// corrupt and must be regenerated by retraining.
	ErrPartial = errors.New("model artifacts are incomplete; retrain to regenerate them")
)

// Store reads and writes one artifact directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the artifact directory path
func (s *Store) Dir() string {
	return s.dir
}

// Save persists a trained resolver and its manifest. The set is written to a
// temporary directory and renamed into place so a failed run never leaves a
// partially written artifact set behind.
func (s *Store) Save(res *resolver.Resolver, man *models.Manifest) error {
	vec, clf, answers := res.State()

	tmp := s.dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return fmt.Errorf("failed to clear temp dir: %w", err)
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}

	parts := []struct {
		file string
		data interface{}
	}{
		{vectorizerFile, vec},
		{classifierFile, clf},
		{answersFile, answers},
		{manifestFile, man},
	}
	for _, p := range parts {
		if err := writeJSON(filepath.Join(tmp, p.file), p.data); err != nil {
			os.RemoveAll(tmp)
			return err
		}
	}

	if err := os.RemoveAll(s.dir); err != nil {
		os.RemoveAll(tmp)
		return fmt.Errorf("failed to replace artifact dir: %w", err)
	}
	if err := os.Rename(tmp, s.dir); err != nil {
		return fmt.Errorf("failed to move artifacts into place: %w", err)
	}

	return nil
}

// Load reads a persisted resolver and manifest. Missing artifacts yield
// ErrNotFound, a partial set yields ErrPartial, and corrupt contents are
// surfaced as decode errors; serving must not start in any of those cases.
func (s *Store) Load() (*resolver.Resolver, *models.Manifest, error) {
	present := 0
	for _, f := range artifactFiles {
		if _, err := os.Stat(filepath.Join(s.dir, f)); err == nil {
			present++
		}
	}
	if present == 0 {
		return nil, nil, fmt.Errorf("%w (looked in %s)", ErrNotFound, s.dir)
	}
	if present < len(artifactFiles) {
		return nil, nil, fmt.Errorf("%w (%d of %d files in %s)", ErrPartial, present, len(artifactFiles), s.dir)
	}

	var vec resolver.Vectorizer
	if err := readJSON(filepath.Join(s.dir, vectorizerFile), &vec); err != nil {
		return nil, nil, err
	}
	var clf resolver.Classifier
	if err := readJSON(filepath.Join(s.dir, classifierFile), &clf); err != nil {
		return nil, nil, err
	}
	var answers []string
	if err := readJSON(filepath.Join(s.dir, answersFile), &answers); err != nil {
		return nil, nil, err
	}
	var man models.Manifest
	if err := readJSON(filepath.Join(s.dir, manifestFile), &man); err != nil {
		return nil, nil, err
	}

	res, err := resolver.FromState(&vec, &clf, answers)
	if err != nil {
		return nil, nil, fmt.Errorf("artifacts in %s are inconsistent: %w", s.dir, err)
	}

	return res, &man, nil
}

// LoadManifest reads only the manifest, used for staleness checks without
// loading the whole model.
func (s *Store) LoadManifest() (*models.Manifest, error) {
	if _, err := os.Stat(filepath.Join(s.dir, manifestFile)); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w (looked in %s)", ErrNotFound, s.dir)
	}

	var man models.Manifest
	if err := readJSON(filepath.Join(s.dir, manifestFile), &man); err != nil {
		return nil, err
	}
	return &man, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
