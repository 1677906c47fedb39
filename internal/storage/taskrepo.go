package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// TaskRepository loads and saves the whole task collection under one key.
type TaskRepository interface {
	// Load returns ErrNotFound when nothing is stored, and a wrapped decode
	// error when the stored payload is malformed.
	Load() ([]models.Task, error)
	// Save overwrites the stored collection.
	Save(tasks []models.Task) error
	// Clear removes the stored collection and its id high-water mark.
	Clear() error
	// Size returns the encoded size of the stored collection in bytes.
	Size() (int, error)
	// LoadHighWater returns the highest task id ever assigned, or 0 when no
	// mark is stored.
	LoadHighWater() (int, error)
	// SaveHighWater records id as the highest task id ever assigned.
	SaveHighWater(id int) error
}

// metaSuffix names the sibling key that holds collection metadata.
const metaSuffix = ".meta"

type collectionMeta struct {
	LastID int `json:"lastId"`
}

type kvTaskRepository struct {
	kv    KVStore
	codec Codec
	key   string
}

// NewTaskRepository creates a TaskRepository that stores the collection in kv
// under key, encoded with codec.
func NewTaskRepository(kv KVStore, codec Codec, key string) TaskRepository {
	if key == "" {
		key = models.DefaultStorageKey
	}
	return &kvTaskRepository{kv: kv, codec: codec, key: key}
}

func (r *kvTaskRepository) Load() ([]models.Task, error) {
	data, err := r.kv.Get(r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	records, err := r.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(records))
	for _, rec := range records {
		t, err := FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("loading tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *kvTaskRepository) Save(tasks []models.Task) error {
	records := make([]TaskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = ToRecord(t)
	}

	data, err := r.codec.Encode(records)
	if err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	if err := r.kv.Put(r.key, data); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (r *kvTaskRepository) Clear() error {
	if err := r.kv.Delete(r.key); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	if err := r.kv.Delete(r.key + metaSuffix); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	return nil
}

func (r *kvTaskRepository) LoadHighWater() (int, error) {
	data, err := r.kv.Get(r.key + metaSuffix)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("loading id high-water mark: %w", err)
	}

	var meta collectionMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return 0, fmt.Errorf("loading id high-water mark: %w", err)
	}
	if meta.LastID < 0 {
		return 0, fmt.Errorf("loading id high-water mark: negative id %d", meta.LastID)
	}
	return meta.LastID, nil
}

func (r *kvTaskRepository) SaveHighWater(id int) error {
	data, err := json.Marshal(collectionMeta{LastID: id})
	if err != nil {
		return fmt.Errorf("saving id high-water mark: %w", err)
	}
	if err := r.kv.Put(r.key+metaSuffix, data); err != nil {
		return fmt.Errorf("saving id high-water mark: %w", err)
	}
	return nil
}

func (r *kvTaskRepository) Size() (int, error) {
	data, err := r.kv.Get(r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("measuring tasks: %w", err)
	}
	return len(data), nil
}
