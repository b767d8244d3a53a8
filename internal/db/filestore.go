package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/marcus/aba-directory/internal/models"
	"go.uber.org/zap"
)

// FileStore backs both collaborators with flat JSON files under dir. When the
// filesystem turns out to be read-only, writes degrade to the in-memory cache
// and the process keeps serving; the failure is logged, not propagated.
type FileStore struct {
	dir    string
	logger *zap.Logger

	mu        sync.Mutex
	providers []models.Provider
	posts     []models.BlogPost
	loaded    bool
}

func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

func (f *FileStore) providersPath() string { return filepath.Join(f.dir, "providers.json") }
func (f *FileStore) postsPath() string     { return filepath.Join(f.dir, "posts.json") }

// load reads both files once. Missing files mean an empty dataset, not an
// error.
func (f *FileStore) load() {
	if f.loaded {
		return
	}
	f.loaded = true

	if data, err := os.ReadFile(f.providersPath()); err == nil {
		if err := json.Unmarshal(data, &f.providers); err != nil {
			f.logger.Warn("malformed providers file, starting empty",
				zap.String("path", f.providersPath()), zap.Error(err))
		}
	}
	if data, err := os.ReadFile(f.postsPath()); err == nil {
		if err := json.Unmarshal(data, &f.posts); err != nil {
			f.logger.Warn("malformed posts file, starting empty",
				zap.String("path", f.postsPath()), zap.Error(err))
		}
	}
}

// persist writes v to path, falling back silently to the in-memory cache on
// failure (read-only deployments).
func (f *FileStore) persist(path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		f.logger.Error("failed to encode snapshot", zap.String("path", path), zap.Error(err))
		return
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		f.logger.Warn("filesystem not writable, keeping in-memory only",
			zap.String("path", path), zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		f.logger.Warn("filesystem not writable, keeping in-memory only",
			zap.String("path", path), zap.Error(err))
	}
}

func (f *FileStore) LoadAll(ctx context.Context) ([]models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	out := make([]models.Provider, len(f.providers))
	copy(out, f.providers)
	return out, nil
}

func (f *FileStore) ReplaceAll(ctx context.Context, providers []models.Provider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	f.providers = make([]models.Provider, len(providers))
	copy(f.providers, providers)
	f.persist(f.providersPath(), f.providers)
	return nil
}

func (f *FileStore) List(ctx context.Context) ([]models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	out := make([]models.BlogPost, len(f.posts))
	copy(out, f.posts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *FileStore) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	for _, post := range f.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return models.BlogPost{}, ErrNotFound
}

func (f *FileStore) GetByID(ctx context.Context, id string) (models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	for _, post := range f.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return models.BlogPost{}, ErrNotFound
}

func (f *FileStore) Create(ctx context.Context, post models.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	for _, existing := range f.posts {
		if existing.Slug == post.Slug {
			return fmt.Errorf("slug %q already exists", post.Slug)
		}
	}
	f.posts = append(f.posts, post)
	f.persist(f.postsPath(), f.posts)
	return nil
}

func (f *FileStore) Update(ctx context.Context, post models.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	for i := range f.posts {
		if f.posts[i].ID == post.ID {
			f.posts[i] = post
			f.persist(f.postsPath(), f.posts)
			return nil
		}
	}
	return ErrNotFound
}

func (f *FileStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			f.persist(f.postsPath(), f.posts)
			return nil
		}
	}
	return ErrNotFound
}
