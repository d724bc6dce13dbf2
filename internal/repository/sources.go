package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"sync"
)

// SourceRepository abstracts persistence of per-user news channel lists.
// Get returns os.ErrNotExist for users that never configured anything.
type SourceRepository interface {
	Get(ctx context.Context, userID int64) ([]string, error)
	Save(ctx context.Context, userID int64, channels []string) error
}

// FileSourceRepository stores channel lists in a JSON file mapping
// string-encoded user ids to arrays of channel names. Every mutation rewrites
// the whole file.
type FileSourceRepository struct {
	path string
	mu   sync.Mutex
	data map[string][]string
}

// NewFileSourceRepository loads the sources file or starts empty if it does
// not exist yet.
func NewFileSourceRepository(path string) (*FileSourceRepository, error) {
	r := &FileSourceRepository{path: path, data: map[string][]string{}}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileSourceRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()
	return json.NewDecoder(file).Decode(&r.data)
}

func (r *FileSourceRepository) saveLocked() error {
	file, err := os.Create(r.path)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r.data)
}

// Get returns a copy of the user's channel list or os.ErrNotExist.
func (r *FileSourceRepository) Get(ctx context.Context, userID int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	channels, ok := r.data[strconv.FormatInt(userID, 10)]
	if !ok {
		return nil, os.ErrNotExist
	}
	out := make([]string, len(channels))
	copy(out, channels)
	return out, nil
}

// Save replaces the user's channel list and persists the file.
func (r *FileSourceRepository) Save(ctx context.Context, userID int64, channels []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]string, len(channels))
	copy(stored, channels)
	r.data[strconv.FormatInt(userID, 10)] = stored
	return r.saveLocked()
}
