package core

import (
	"fmt"
	"testing"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
	"pgregory.net/rapid"
)

func priorityGenerator() *rapid.Generator[models.Priority] {
	return rapid.SampledFrom(models.Priorities)
}

func statusGenerator() *rapid.Generator[models.TaskStatus] {
	return rapid.SampledFrom(models.Statuses)
}

func categoryGenerator() *rapid.Generator[models.Category] {
	return rapid.SampledFrom(models.Categories)
}

func draftGenerator() *rapid.Generator[models.TaskDraft] {
	return rapid.Custom(func(t *rapid.T) models.TaskDraft {
		return models.TaskDraft{
			Title:    rapid.StringMatching(`[a-z]{1,12}`).Draw(t, "title"),
			DueDate:  fixedNow.AddDate(0, 0, rapid.IntRange(-30, 30).Draw(t, "dueOffset")),
			Priority: priorityGenerator().Draw(t, "priority"),
			Status:   statusGenerator().Draw(t, "status"),
			Category: categoryGenerator().Draw(t, "category"),
			Tags:     rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 3).Draw(t, "tags"),
		}
	})
}

// Feature: smart-task-manager, Property 2: Identity Uniqueness
// For any sequence of add, update and delete operations, task ids SHALL
// remain unique and an id SHALL never be handed out again after delete.
func TestProperty_IDsUniqueAndNeverReused(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewTaskStore(&fakePersistence{tasks: []models.Task{}}, fixedClock(), nil)
		issued := map[int]bool{}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			snap := s.Snapshot()
			op := rapid.IntRange(0, 2).Draw(rt, fmt.Sprintf("op%d", i))

			switch {
			case op == 0 || len(snap) == 0:
				task, err := s.Add(draftGenerator().Draw(rt, fmt.Sprintf("draft%d", i)))
				if err != nil {
					rt.Fatalf("add failed: %v", err)
				}
				if issued[task.ID] {
					rt.Fatalf("id %d issued twice", task.ID)
				}
				issued[task.ID] = true
			case op == 1:
				target := rapid.SampledFrom(snap).Draw(rt, fmt.Sprintf("update%d", i))
				title := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, fmt.Sprintf("title%d", i))
				if !s.Update(target.ID, models.TaskPatch{Title: &title}) {
					rt.Fatalf("update of existing id %d failed", target.ID)
				}
			default:
				target := rapid.SampledFrom(snap).Draw(rt, fmt.Sprintf("delete%d", i))
				if !s.Delete(target.ID) {
					rt.Fatalf("delete of existing id %d failed", target.ID)
				}
			}

			seen := map[int]bool{}
			for _, task := range s.Snapshot() {
				if seen[task.ID] {
					rt.Fatalf("duplicate id %d in snapshot", task.ID)
				}
				seen[task.ID] = true
			}
		}
	})
}

// Feature: smart-task-manager, Property 11: Identity Across Restarts
// For any sequence of add and delete operations interleaved with reopening
// the store over the same persistence, an id SHALL never be issued twice.
func TestProperty_IDsNeverReusedAcrossRestarts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := &markedPersistence{fakePersistence: &fakePersistence{tasks: []models.Task{}}}
		s := NewTaskStore(p, fixedClock(), nil)
		issued := map[int]bool{}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			snap := s.Snapshot()
			op := rapid.IntRange(0, 2).Draw(rt, fmt.Sprintf("op%d", i))

			switch {
			case op == 0 || len(snap) == 0:
				task, err := s.Add(draftGenerator().Draw(rt, fmt.Sprintf("draft%d", i)))
				if err != nil {
					rt.Fatalf("add failed: %v", err)
				}
				if issued[task.ID] {
					rt.Fatalf("id %d issued twice", task.ID)
				}
				issued[task.ID] = true
			case op == 1:
				target := rapid.SampledFrom(snap).Draw(rt, fmt.Sprintf("delete%d", i))
				if !s.Delete(target.ID) {
					rt.Fatalf("delete of existing id %d failed", target.ID)
				}
			default:
				s = NewTaskStore(p, fixedClock(), nil)
			}
		}
	})
}

// Feature: smart-task-manager, Property 3: Notification Per Mutation
// For any sequence of successful mutations, subscribers SHALL receive
// exactly one notification per mutation whose length matches the store.
func TestProperty_NotificationPerMutation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewTaskStore(&fakePersistence{tasks: []models.Task{}}, fixedClock(), nil)
		var sizes []int
		s.Subscribe(func(snap []models.Task) { sizes = append(sizes, len(snap)) })

		mutations := 0
		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			snap := s.Snapshot()
			if len(snap) == 0 || rapid.Bool().Draw(rt, fmt.Sprintf("add%d", i)) {
				if _, err := s.Add(draftGenerator().Draw(rt, fmt.Sprintf("draft%d", i))); err != nil {
					rt.Fatalf("add failed: %v", err)
				}
			} else {
				s.Delete(snap[0].ID)
			}
			mutations++

			if len(sizes) != mutations {
				rt.Fatalf("after %d mutations got %d notifications", mutations, len(sizes))
			}
			if sizes[len(sizes)-1] != len(s.Snapshot()) {
				rt.Fatalf("notification size %d, store size %d", sizes[len(sizes)-1], len(s.Snapshot()))
			}
		}
	})
}

// Feature: smart-task-manager, Property 4: Patch Preservation
// For any existing task and any status patch, update SHALL change the
// status and leave every other field unchanged.
func TestProperty_StatusPatchPreservesOtherFields(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewTaskStore(&fakePersistence{tasks: []models.Task{}}, fixedClock(), nil)
		before, err := s.Add(draftGenerator().Draw(rt, "draft"))
		if err != nil {
			rt.Fatalf("add failed: %v", err)
		}
		status := statusGenerator().Draw(rt, "newStatus")

		if !s.Update(before.ID, models.TaskPatch{Status: &status}) {
			rt.Fatal("update failed")
		}
		after, _ := s.GetByID(before.ID)

		before.Status = status
		if after.Title != before.Title || after.Priority != before.Priority ||
			after.Category != before.Category || after.Status != before.Status ||
			!after.DueDate.Equal(before.DueDate) || !after.CreatedDate.Equal(before.CreatedDate) ||
			len(after.Tags) != len(before.Tags) {
			rt.Fatalf("unexpected task after patch: before %+v, after %+v", before, after)
		}
	})
}
