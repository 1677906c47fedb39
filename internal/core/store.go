package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// ErrNoStoredTasks is returned by a PersistenceAdapter when nothing has been
// persisted yet.
var ErrNoStoredTasks = errors.New("no stored tasks")

// PersistenceAdapter is the durability contract the store delegates to.
// Defining it here keeps core independent of the storage package.
type PersistenceAdapter interface {
	// Load returns ErrNoStoredTasks when nothing is stored. Any other error
	// means the stored payload could not be read or parsed.
	Load() ([]models.Task, error)
	// Save overwrites the stored collection.
	Save(tasks []models.Task) error
}

// HighWaterStore is implemented by adapters that persist the highest task id
// ever assigned next to the collection. Without it deleted ids are retired
// only for the lifetime of the store.
type HighWaterStore interface {
	// LoadHighWater returns 0 when no mark has been stored.
	LoadHighWater() (int, error)
	SaveHighWater(id int) error
}

// Listener receives a fresh snapshot after every successful mutation. The
// slice belongs to the listener.
type Listener func(snapshot []models.Task)

// TaskStore owns the canonical task collection.
//
// Every successful mutation persists the whole collection and then notifies
// listeners synchronously, in registration order. Listeners must not call
// mutating methods on the store they are subscribed to.
type TaskStore interface {
	Snapshot() []models.Task
	Subscribe(l Listener) string
	Unsubscribe(token string) bool
	Add(draft models.TaskDraft) (models.Task, error)
	Update(id int, patch models.TaskPatch) bool
	Delete(id int) bool
	GetByID(id int) (models.Task, bool)
	AddSubtask(taskID int, title string) bool
	ToggleSubtask(taskID, subtaskID int) bool
	// Import appends the valid tasks under fresh ids in one mutation and
	// returns them; invalid tasks are skipped.
	Import(tasks []models.Task) []models.Task
	// PersistErr returns the most recent write-through failure, or nil once a
	// later write succeeds.
	PersistErr() error
}

type subscription struct {
	token    string
	listener Listener
}

type taskStore struct {
	persist PersistenceAdapter
	clock   Clock
	logger  EventLogger

	// notifyMu serializes mutate, persist and notify so that listeners see
	// mutations in order. mu guards the fields below it.
	notifyMu    sync.Mutex
	mu          sync.Mutex
	tasks       []models.Task
	lastID      int
	savedID     int
	subscribers []subscription
	persistErr  error
}

// NewTaskStore loads the collection through persist and returns a store
// that owns it. An absent or unreadable collection is replaced by the seed
// tasks, which are persisted immediately. clock and logger may be nil.
func NewTaskStore(persist PersistenceAdapter, clock Clock, logger EventLogger) TaskStore {
	if clock == nil {
		clock = SystemClock{}
	}
	s := &taskStore{persist: persist, clock: clock, logger: logger}
	s.load()
	return s
}

func (s *taskStore) load() {
	s.lastID = s.loadHighWater()
	s.savedID = s.lastID

	tasks, err := s.persist.Load()
	if err == nil {
		err = checkLoaded(tasks)
	}
	if err == nil {
		s.tasks = tasks
		s.lastID = max(s.lastID, maxTaskID(tasks))
		return
	}

	if !errors.Is(err, ErrNoStoredTasks) {
		s.logEvent(LevelWarn, "store.load_failed", map[string]any{"error": err.Error()})
	}
	seed := SeedTasks(s.clock.Now())
	if s.lastID > 0 {
		for i := range seed {
			seed[i].ID = s.lastID + 1 + i
		}
	}
	s.tasks = seed
	s.lastID = max(s.lastID, maxTaskID(seed))
	s.save(s.tasks)
	s.logEvent(LevelInfo, "store.seeded", map[string]any{"count": len(s.tasks)})
}

func (s *taskStore) loadHighWater() int {
	hw, ok := s.persist.(HighWaterStore)
	if !ok {
		return 0
	}
	id, err := hw.LoadHighWater()
	if err != nil {
		s.logEvent(LevelWarn, "store.load_failed", map[string]any{"error": err.Error()})
		return 0
	}
	return id
}

// checkLoaded rejects a persisted collection that breaks the store's
// invariants; the caller treats it like an unparseable payload.
func checkLoaded(tasks []models.Task) error {
	seen := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		if t.ID <= 0 {
			return fmt.Errorf("stored task has invalid id %d", t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("stored tasks share id %d", t.ID)
		}
		seen[t.ID] = true
		if err := t.Validate(); err != nil {
			return fmt.Errorf("stored task %d: %w", t.ID, err)
		}
	}
	return nil
}

func (s *taskStore) Snapshot() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

func (s *taskStore) Subscribe(l Listener) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, subscription{token: token, listener: l})
	return token
}

func (s *taskStore) Unsubscribe(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub.token == token {
			next := make([]subscription, 0, len(s.subscribers)-1)
			next = append(next, s.subscribers[:i]...)
			next = append(next, s.subscribers[i+1:]...)
			s.subscribers = next
			return true
		}
	}
	return false
}

func (s *taskStore) GetByID(id int) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.tasks, id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

func (s *taskStore) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

func (s *taskStore) Add(draft models.TaskDraft) (models.Task, error) {
	var added models.Task
	err := s.mutate(func(current []models.Task) ([]models.Task, error) {
		task := models.Task{
			ID:             s.nextID(current),
			Title:          draft.Title,
			Description:    draft.Description,
			DueDate:        draft.DueDate,
			CreatedDate:    s.clock.Now(),
			Priority:       draft.Priority,
			Status:         draft.Status,
			Category:       draft.Category,
			Tags:           append([]string{}, draft.Tags...),
			EstimatedHours: draft.EstimatedHours,
			ActualHours:    draft.ActualHours,
			Subtasks:       append([]models.Subtask{}, draft.Subtasks...),
		}
		task = task.Clone()
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("adding task: %w", err)
		}

		s.lastID = task.ID
		added = task
		next := make([]models.Task, 0, len(current)+1)
		next = append(next, current...)
		return append(next, task), nil
	})
	if err != nil {
		return models.Task{}, err
	}

	s.logEvent(LevelInfo, "task.created", map[string]any{"id": added.ID, "title": added.Title})
	return added.Clone(), nil
}

func (s *taskStore) Update(id int, patch models.TaskPatch) bool {
	return s.modify(id, func(t models.Task) (models.Task, bool) {
		return patch.ApplyTo(t), true
	})
}

func (s *taskStore) Delete(id int) bool {
	err := s.mutate(func(current []models.Task) ([]models.Task, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, errSkip
		}
		next := make([]models.Task, 0, len(current)-1)
		next = append(next, current[:i]...)
		return append(next, current[i+1:]...), nil
	})
	if err != nil {
		return false
	}

	s.logEvent(LevelInfo, "task.deleted", map[string]any{"id": id})
	return true
}

func (s *taskStore) AddSubtask(taskID int, title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	return s.modify(taskID, func(t models.Task) (models.Task, bool) {
		nextID := 1
		for _, st := range t.Subtasks {
			if st.ID >= nextID {
				nextID = st.ID + 1
			}
		}
		t.Subtasks = append(t.Subtasks, models.Subtask{ID: nextID, Title: title})
		return t, true
	})
}

func (s *taskStore) ToggleSubtask(taskID, subtaskID int) bool {
	return s.modify(taskID, func(t models.Task) (models.Task, bool) {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks[i].Completed = !t.Subtasks[i].Completed
				return t, true
			}
		}
		return t, false
	})
}

func (s *taskStore) Import(tasks []models.Task) []models.Task {
	if len(tasks) == 0 {
		return nil
	}

	var imported []models.Task
	err := s.mutate(func(current []models.Task) ([]models.Task, error) {
		next := make([]models.Task, 0, len(current)+len(tasks))
		next = append(next, current...)
		id := s.nextID(current)
		for _, t := range tasks {
			if t.Validate() != nil {
				continue
			}
			c := t.Clone()
			c.ID = id
			if c.CreatedDate.IsZero() {
				c.CreatedDate = s.clock.Now()
			}
			if c.Tags == nil {
				c.Tags = []string{}
			}
			if c.Subtasks == nil {
				c.Subtasks = []models.Subtask{}
			}
			next = append(next, c)
			imported = append(imported, c.Clone())
			id++
		}
		if len(imported) == 0 {
			return nil, errSkip
		}
		s.lastID = id - 1
		return next, nil
	})
	if err != nil {
		return nil
	}

	s.logEvent(LevelInfo, "task.imported", map[string]any{"count": len(imported)})
	return imported
}

// modify replaces the task with id by fn's result inside one mutation, so
// the read and the write see the same collection. fn receives a copy and
// returns false to leave the store untouched.
func (s *taskStore) modify(id int, fn func(t models.Task) (models.Task, bool)) bool {
	var before, after models.Task
	err := s.mutate(func(current []models.Task) ([]models.Task, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, errSkip
		}
		before = current[i]
		next, ok := fn(before.Clone())
		if !ok {
			return nil, errSkip
		}
		if err := next.Validate(); err != nil {
			return nil, err
		}
		after = next
		return replaceAt(current, i, after), nil
	})
	if err != nil {
		return false
	}

	s.logEvent(LevelInfo, "task.updated", map[string]any{"id": id})
	if !before.IsCompleted() && after.IsCompleted() {
		s.logEvent(LevelInfo, "task.completed", map[string]any{"id": id, "title": after.Title})
	}
	return true
}

// errSkip aborts a mutation without persisting or notifying.
var errSkip = errors.New("mutation skipped")

// mutate builds the next collection from the current one with fn, installs
// it, writes it through, and notifies subscribers. fn must not modify
// current; returning an error leaves the store untouched.
func (s *taskStore) mutate(fn func(current []models.Task) ([]models.Task, error)) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next, err := fn(s.tasks)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks = next
	s.save(next)
	subscribers := append([]subscription(nil), s.subscribers...)
	s.mu.Unlock()

	for _, sub := range subscribers {
		sub.listener(cloneTasks(next))
	}
	return nil
}

// save writes tasks through the adapter. Callers hold mu.
func (s *taskStore) save(tasks []models.Task) {
	if err := s.persist.Save(cloneTasks(tasks)); err != nil {
		s.persistErr = err
		s.logEvent(LevelError, "store.save_failed", map[string]any{"error": err.Error()})
		return
	}
	if err := s.saveHighWater(); err != nil {
		s.persistErr = err
		s.logEvent(LevelError, "store.save_failed", map[string]any{"error": err.Error()})
		return
	}
	s.persistErr = nil
}

// saveHighWater records lastID when it has grown since the last write.
// Callers hold mu.
func (s *taskStore) saveHighWater() error {
	hw, ok := s.persist.(HighWaterStore)
	if !ok || s.lastID <= s.savedID {
		return nil
	}
	if err := hw.SaveHighWater(s.lastID); err != nil {
		return fmt.Errorf("saving id high-water mark: %w", err)
	}
	s.savedID = s.lastID
	return nil
}

// nextID returns max(existing ids, highest id ever assigned) + 1 so that
// deleted ids are not handed out again.
func (s *taskStore) nextID(current []models.Task) int {
	id := maxTaskID(current)
	if s.lastID > id {
		id = s.lastID
	}
	return id + 1
}

func (s *taskStore) logEvent(level, eventType string, data map[string]any) {
	if s.logger != nil {
		_ = s.logger.LogEvent(level, eventType, data)
	}
}

func maxTaskID(tasks []models.Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}

func indexOf(tasks []models.Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func replaceAt(tasks []models.Task, i int, t models.Task) []models.Task {
	next := make([]models.Task, len(tasks))
	copy(next, tasks)
	next[i] = t
	return next
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
