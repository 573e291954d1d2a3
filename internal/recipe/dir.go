package recipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
	"gopkg.in/yaml.v3"
)

// LoadFile reads one YAML recipe. A missing id defaults to the file name
// without its extension.
func LoadFile(path string) (*domain.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}

	var r domain.Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if r.ID == "" {
		r.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if r.Name == "" {
		r.Name = r.ID
	}
	return &r, nil
}

// LoadDir reads every *.yaml and *.yml file in dir into a memory source.
// Files that fail to parse are skipped and reported in the returned error;
// the source still holds every recipe that loaded.
func LoadDir(dir string, log *logger.Logger) (*MemorySource, error) {
	src := NewMemorySource(log)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return src, fmt.Errorf("reading recipe dir: %w", err)
	}

	var errs []error
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		r, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Warn("skipping recipe %s: %v", e.Name(), err)
			errs = append(errs, err)
			continue
		}
		src.Add(r)
	}

	log.Debug("loaded %d recipes from %s", src.Len(), dir)
	return src, errors.Join(errs...)
}

// Compile-time interface check.
var _ domain.RecipeSource = Chain(nil)

// Chain searches several sources in order. Earlier sources win when two
// hold the same ID.
type Chain []domain.RecipeSource

// List merges the summaries of every source.
func (c Chain) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	return c.collect(func(s domain.RecipeSource) ([]domain.RecipeSummary, error) {
		return s.List(ctx)
	})
}

// Search merges the search results of every source.
func (c Chain) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	return c.collect(func(s domain.RecipeSource) ([]domain.RecipeSummary, error) {
		return s.Search(ctx, query)
	})
}

// Get returns the recipe from the first source that has it.
func (c Chain) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	for _, s := range c {
		r, err := s.Get(ctx, id)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("recipe %q: %w", id, domain.ErrNotFound)
}

func (c Chain) collect(fn func(domain.RecipeSource) ([]domain.RecipeSummary, error)) ([]domain.RecipeSummary, error) {
	seen := make(map[string]bool)
	var out []domain.RecipeSummary
	for _, s := range c {
		list, err := fn(s)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
	}
	sortSummaries(out)
	return out, nil
}
