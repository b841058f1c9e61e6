// Package profile is the profile document engine.
//
// Every mutation is a read-merge-write of the single document kept for a
// user: the engine loads it (creating the canonical defaults when it is
// missing), backfills absent sections, applies one typed change, refreshes
// metadata.last_updated and writes the whole document back. There is no
// compare-and-swap: two concurrent writers for the same user race and the
// last write wins.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HendryAvila/focusmate/internal/docstore"
	"github.com/HendryAvila/focusmate/internal/logger"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// newTaskSuffix yields the random part of a task id.
var newTaskSuffix = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Recorder receives one observation per engine operation.
type Recorder interface {
	ObserveOperation(op, outcome string, d time.Duration)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder reports every operation to rec.
func WithRecorder(rec Recorder) Option {
	return func(e *Engine) { e.rec = rec }
}

// Engine owns the profile schema and all mutation paths.
// It is safe for concurrent use when its store is.
type Engine struct {
	store docstore.Store
	log   *logger.Logger
	rec   Recorder
}

// NewEngine creates an Engine over store.
func NewEngine(store docstore.Store, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{store: store, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// errNoDocument stops a mutation that must not create the document.
var errNoDocument = errors.New("no document")

// load fetches and decodes the document. found is false when the user
// has none.
func (e *Engine) load(ctx context.Context, userID string) (p *Profile, found bool, err error) {
	raw, err := e.store.Fetch(ctx, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		e.log.Error("profile fetch failed", "user", userID, "error", err)
		return nil, false, err
	}

	p = &Profile{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, false, fmt.Errorf("%w: user %q: %v", ErrCorruptDocument, userID, err)
	}
	p.normalize()
	return p, true, nil
}

func (e *Engine) save(ctx context.Context, userID string, p *Profile) error {
	p.normalize()
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile for %q: %w", userID, err)
	}
	if err := e.store.Write(ctx, userID, raw); err != nil {
		e.log.Error("profile write failed", "user", userID, "error", err)
		return err
	}
	return nil
}

// mutation changes p in memory. It reports whether anything changed;
// an unchanged profile is not written.
type mutation func(p *Profile, now time.Time) (changed bool, err error)

// mutate runs one read-merge-write cycle. When the document is missing
// it is created from defaults if create is set, otherwise errNoDocument
// is returned without writing.
func (e *Engine) mutate(ctx context.Context, userID string, create bool, fn mutation) error {
	now := timeNow().UTC()

	p, found, err := e.load(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		if !create {
			return errNoDocument
		}
		p = newDefaultProfile(now)
	}
	p.backfill(newDefaultProfile(now))

	changed, err := fn(p, now)
	if err != nil || !changed {
		return err
	}

	p.Metadata.LastUpdated = now
	return e.save(ctx, userID, p)
}

// observe starts timing op. The returned func reports it with the
// final value of *errp.
func (e *Engine) observe(op string) func(errp *error) {
	start := time.Now()
	return func(errp *error) {
		if e.rec == nil {
			return
		}
		outcome := "ok"
		if *errp != nil {
			outcome = "error"
		}
		e.rec.ObserveOperation(op, outcome, time.Since(start))
	}
}

// ─── Initialization and reads ───────────────────────────────────────────────

// Initialize creates the user's document from the canonical defaults,
// with the sections present in seed replacing the defaults whole. When a
// document already exists only its missing sections are added (from the
// seeded defaults) and last_updated is refreshed; present sections are
// left untouched. Initialize is idempotent.
func (e *Engine) Initialize(ctx context.Context, userID string, seed *Profile) (p *Profile, err error) {
	defer e.observe("initialize")(&err)
	now := timeNow().UTC()

	defaults := newDefaultProfile(now)
	if seed != nil {
		seed, err = seed.clone()
		if err != nil {
			return nil, err
		}
		defaults.adopt(seed)
	}

	p, found, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := e.save(ctx, userID, defaults); err != nil {
			return nil, err
		}
		e.log.Info("profile created", "user", userID)
		return defaults, nil
	}

	added := p.backfill(defaults)
	p.Metadata.LastUpdated = now
	if err := e.save(ctx, userID, p); err != nil {
		return nil, err
	}
	e.log.Info("profile schema refreshed", "user", userID, "backfilled", added)
	return p, nil
}

// Lookup returns the whole document, or ErrNotFound.
func (e *Engine) Lookup(ctx context.Context, userID string) (*Profile, error) {
	p, found, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetSection returns one section, or the whole document when section is
// empty. A missing document, a missing section and an unknown section
// all yield an empty object rather than an error.
func (e *Engine) GetSection(ctx context.Context, userID, section string) (v any, err error) {
	defer e.observe("get_section")(&err)

	p, found, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]any{}, nil
	}
	if section == "" {
		return p, nil
	}
	ops, ok := sectionTable[Section(section)]
	if !ok || !ops.present(p) {
		return map[string]any{}, nil
	}
	return ops.value(p), nil
}

// CurrentTasks returns the pending tasks, empty when there is no document.
func (e *Engine) CurrentTasks(ctx context.Context, userID string) (tasks []Task, err error) {
	defer e.observe("current_tasks")(&err)

	p, found, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found || p.TaskTracking == nil {
		return []Task{}, nil
	}
	return p.TaskTracking.CurrentTasks, nil
}

// ─── Section updates ────────────────────────────────────────────────────────

// UpdateSection shallow-merges data, a JSON object, into section: every
// key in data replaces the stored key, keys absent from data are kept.
// The document is created first when missing. metadata and task_tracking
// cannot be written this way.
func (e *Engine) UpdateSection(ctx context.Context, userID, section string, data json.RawMessage) (err error) {
	defer e.observe("update_section")(&err)

	ops, ok := sectionTable[Section(section)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSection, section)
	}
	if ops.merge == nil {
		return fmt.Errorf("%w: %q", ErrReadOnlySection, section)
	}

	err = e.mutate(ctx, userID, true, func(p *Profile, _ time.Time) (bool, error) {
		return true, ops.merge(p, data)
	})
	if err != nil {
		return err
	}
	e.log.Info("profile section updated", "user", userID, "section", section)
	return nil
}

func (e *Engine) updateTyped(ctx context.Context, userID string, section Section, apply func(p *Profile)) (err error) {
	defer e.observe("update_section")(&err)

	err = e.mutate(ctx, userID, true, func(p *Profile, _ time.Time) (bool, error) {
		apply(p)
		return true, nil
	})
	if err != nil {
		return err
	}
	e.log.Info("profile section updated", "user", userID, "section", string(section))
	return nil
}

func (e *Engine) UpdatePersonalInfo(ctx context.Context, userID string, patch PersonalInfoPatch) error {
	return e.updateTyped(ctx, userID, SectionPersonalInfo, func(p *Profile) { p.applyPersonalInfo(patch) })
}

func (e *Engine) UpdateDailyRoutine(ctx context.Context, userID string, patch DailyRoutinePatch) error {
	return e.updateTyped(ctx, userID, SectionDailyRoutine, func(p *Profile) { p.applyDailyRoutine(patch) })
}

func (e *Engine) UpdateProductivityInsights(ctx context.Context, userID string, patch ProductivityInsightsPatch) error {
	return e.updateTyped(ctx, userID, SectionProductivityInsights, func(p *Profile) { p.applyProductivityInsights(patch) })
}

func (e *Engine) UpdatePreferences(ctx context.Context, userID string, patch PreferencesPatch) error {
	return e.updateTyped(ctx, userID, SectionPreferences, func(p *Profile) { p.applyPreferences(patch) })
}

// UpdateHabitStreaks shallow-merges into productivity_insights.habit_streaks.
func (e *Engine) UpdateHabitStreaks(ctx context.Context, userID string, patch HabitStreaksPatch) error {
	return e.updateTyped(ctx, userID, SectionProductivityInsights, func(p *Profile) { p.applyHabitStreaks(patch) })
}

// AddHabitOrBlocker appends item to one of the habit lists unless it is
// already there. Only an added item causes a write.
func (e *Engine) AddHabitOrBlocker(ctx context.Context, userID, category, item string) (out HabitOutcome, err error) {
	defer e.observe("add_habit_or_blocker")(&err)

	if category != CategoryProcrastinationHabits && category != CategoryKnownBlockers {
		return OutcomeInvalidCategory, fmt.Errorf("%w: got %q", ErrInvalidCategory, category)
	}
	if strings.TrimSpace(item) == "" {
		return "", fmt.Errorf("%w: item is empty", ErrInvalidPayload)
	}

	out = OutcomeAlreadyPresent
	err = e.mutate(ctx, userID, true, func(p *Profile, _ time.Time) (bool, error) {
		list := &p.HabitsAndBehaviors.ProcrastinationHabits
		if category == CategoryKnownBlockers {
			list = &p.HabitsAndBehaviors.KnownBlockers
		}
		if slices.Contains(*list, item) {
			return false, nil
		}
		*list = append(*list, item)
		out = OutcomeAdded
		return true, nil
	})
	if err != nil {
		return "", err
	}
	if out == OutcomeAdded {
		e.log.Info("habit recorded", "user", userID, "category", category)
	}
	return out, nil
}

// ─── Task lifecycle ─────────────────────────────────────────────────────────

// AddTask appends a pending task with a fresh id to current_tasks.
func (e *Engine) AddTask(ctx context.Context, userID string, in NewTask) (task Task, err error) {
	defer e.observe("add_task")(&err)

	if strings.TrimSpace(in.Description) == "" {
		return Task{}, fmt.Errorf("%w: task description is empty", ErrInvalidPayload)
	}

	err = e.mutate(ctx, userID, true, func(p *Profile, now time.Time) (bool, error) {
		task = Task{
			TaskID:       newTaskID(now, p.TaskTracking.CurrentTasks),
			Description:  in.Description,
			Priority:     in.Priority,
			Status:       StatusPending,
			CreatedAt:    now,
			DueDate:      strings.TrimSpace(in.DueDate),
			LastActivity: now,
		}
		p.TaskTracking.CurrentTasks = append(p.TaskTracking.CurrentTasks, task)
		return true, nil
	})
	if err != nil {
		return Task{}, err
	}
	e.log.Info("task added", "user", userID, "task_id", task.TaskID)
	return task, nil
}

// CompleteTask moves the first current task with taskID to
// completed_tasks. It reports false, without writing, when the user has
// no document or no such pending task.
func (e *Engine) CompleteTask(ctx context.Context, userID, taskID string) (done bool, err error) {
	defer e.observe("complete_task")(&err)

	err = e.mutate(ctx, userID, false, func(p *Profile, now time.Time) (bool, error) {
		tt := p.TaskTracking
		i := slices.IndexFunc(tt.CurrentTasks, func(t Task) bool { return t.TaskID == taskID })
		if i < 0 {
			return false, nil
		}
		task := tt.CurrentTasks[i]
		tt.CurrentTasks = slices.Delete(tt.CurrentTasks, i, i+1)

		completedOn := now
		task.Status = StatusCompleted
		task.CompletedOn = &completedOn
		task.LastActivity = now
		tt.CompletedTasks = append(tt.CompletedTasks, task)
		done = true
		return true, nil
	})
	if errors.Is(err, errNoDocument) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if done {
		e.log.Info("task completed", "user", userID, "task_id", taskID)
	}
	return done, nil
}

// newTaskID derives an id from the clock, suffixed with random hex so
// two tasks created in the same second never collide.
func newTaskID(now time.Time, existing []Task) string {
	for {
		id := "task_" + now.Format("20060102_150405") + "_" + newTaskSuffix()
		taken := slices.ContainsFunc(existing, func(t Task) bool { return t.TaskID == id })
		if !taken {
			return id
		}
	}
}

// clone deep-copies p through its JSON form.
func (p *Profile) clone() (*Profile, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	out := &Profile{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return out, nil
}
