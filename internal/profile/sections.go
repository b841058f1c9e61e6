package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Section names a top-level field of the profile document.
type Section string

const (
	SectionPersonalInfo         Section = "personal_info"
	SectionDailyRoutine         Section = "daily_routine"
	SectionHabitsAndBehaviors   Section = "habits_and_behaviors"
	SectionTaskTracking         Section = "task_tracking"
	SectionProductivityInsights Section = "productivity_insights"
	SectionPreferences          Section = "preferences"
	SectionMetadata             Section = "metadata"
)

// Sections lists every section in document order.
var Sections = []Section{
	SectionPersonalInfo,
	SectionDailyRoutine,
	SectionHabitsAndBehaviors,
	SectionTaskTracking,
	SectionProductivityInsights,
	SectionPreferences,
	SectionMetadata,
}

// ParseSection reports whether name is a known section.
func ParseSection(name string) (Section, bool) {
	s := Section(name)
	_, ok := sectionTable[s]
	return s, ok
}

// sectionOps is the typed handling of one section.
type sectionOps struct {
	present func(p *Profile) bool
	// copy replaces dst's section with src's.
	copy  func(dst, src *Profile)
	value func(p *Profile) any
	// merge applies a JSON patch. Nil for engine-owned sections.
	merge func(p *Profile, raw json.RawMessage) error
}

var sectionTable = map[Section]sectionOps{
	SectionPersonalInfo: {
		present: func(p *Profile) bool { return p.PersonalInfo != nil },
		copy:    func(dst, src *Profile) { dst.PersonalInfo = src.PersonalInfo },
		value:   func(p *Profile) any { return p.PersonalInfo },
		merge:   mergeWith((*Profile).applyPersonalInfo),
	},
	SectionDailyRoutine: {
		present: func(p *Profile) bool { return p.DailyRoutine != nil },
		copy:    func(dst, src *Profile) { dst.DailyRoutine = src.DailyRoutine },
		value:   func(p *Profile) any { return p.DailyRoutine },
		merge:   mergeWith((*Profile).applyDailyRoutine),
	},
	SectionHabitsAndBehaviors: {
		present: func(p *Profile) bool { return p.HabitsAndBehaviors != nil },
		copy:    func(dst, src *Profile) { dst.HabitsAndBehaviors = src.HabitsAndBehaviors },
		value:   func(p *Profile) any { return p.HabitsAndBehaviors },
		merge:   mergeWith((*Profile).applyHabitsAndBehaviors),
	},
	SectionTaskTracking: {
		present: func(p *Profile) bool { return p.TaskTracking != nil },
		copy:    func(dst, src *Profile) { dst.TaskTracking = src.TaskTracking },
		value:   func(p *Profile) any { return p.TaskTracking },
	},
	SectionProductivityInsights: {
		present: func(p *Profile) bool { return p.ProductivityInsights != nil },
		copy:    func(dst, src *Profile) { dst.ProductivityInsights = src.ProductivityInsights },
		value:   func(p *Profile) any { return p.ProductivityInsights },
		merge:   mergeWith((*Profile).applyProductivityInsights),
	},
	SectionPreferences: {
		present: func(p *Profile) bool { return p.Preferences != nil },
		copy:    func(dst, src *Profile) { dst.Preferences = src.Preferences },
		value:   func(p *Profile) any { return p.Preferences },
		merge:   mergeWith((*Profile).applyPreferences),
	},
	SectionMetadata: {
		present: func(p *Profile) bool { return p.Metadata != nil },
		copy:    func(dst, src *Profile) { dst.Metadata = src.Metadata },
		value:   func(p *Profile) any { return p.Metadata },
	},
}

func mergeWith[T any](apply func(*Profile, T)) func(*Profile, json.RawMessage) error {
	return func(p *Profile, raw json.RawMessage) error {
		var patch T
		if err := decodePatch(raw, &patch); err != nil {
			return err
		}
		apply(p, patch)
		return nil
	}
}

// decodePatch accepts only a JSON object whose keys belong to the patch.
func decodePatch(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: expected a JSON object", ErrInvalidPayload)
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// ─── Defaults and backfill ──────────────────────────────────────────────────

func newMetadata(now time.Time) *Metadata {
	return &Metadata{CreatedAt: now, LastUpdated: now, Version: SchemaVersion}
}

// newDefaultProfile returns the canonical empty document.
func newDefaultProfile(now time.Time) *Profile {
	return &Profile{
		PersonalInfo: &PersonalInfo{},
		DailyRoutine: &DailyRoutine{WorkoutPreferences: []string{}},
		HabitsAndBehaviors: &HabitsAndBehaviors{
			ProcrastinationHabits: []string{},
			KnownBlockers:         []string{},
		},
		TaskTracking: &TaskTracking{
			CurrentTasks:   []Task{},
			CompletedTasks: []Task{},
		},
		ProductivityInsights: &ProductivityInsights{BestFocusTimes: []string{}},
		Preferences: &Preferences{
			Notifications: Notifications{PreferredChannels: []string{}},
		},
		Metadata: newMetadata(now),
	}
}

// backfill adds every section missing from p, taken from defaults.
// It returns the sections it added.
func (p *Profile) backfill(defaults *Profile) []Section {
	var added []Section
	for _, s := range Sections {
		ops := sectionTable[s]
		if !ops.present(p) {
			ops.copy(p, defaults)
			added = append(added, s)
		}
	}
	return added
}

// adopt replaces p's sections with the ones present in seed.
// Metadata is engine-owned and never adopted.
func (p *Profile) adopt(seed *Profile) {
	for _, s := range Sections {
		if s == SectionMetadata {
			continue
		}
		ops := sectionTable[s]
		if ops.present(seed) {
			ops.copy(p, seed)
		}
	}
}

// normalize replaces nil lists with empty ones so a stored document
// never carries null where a list belongs, and enforces set semantics
// on the habit lists.
func (p *Profile) normalize() {
	if r := p.DailyRoutine; r != nil {
		r.WorkoutPreferences = nonNil(r.WorkoutPreferences)
	}
	if h := p.HabitsAndBehaviors; h != nil {
		h.ProcrastinationHabits = dedupe(h.ProcrastinationHabits)
		h.KnownBlockers = dedupe(h.KnownBlockers)
	}
	if t := p.TaskTracking; t != nil {
		if t.CurrentTasks == nil {
			t.CurrentTasks = []Task{}
		}
		if t.CompletedTasks == nil {
			t.CompletedTasks = []Task{}
		}
	}
	if i := p.ProductivityInsights; i != nil {
		i.BestFocusTimes = nonNil(i.BestFocusTimes)
	}
	if pr := p.Preferences; pr != nil {
		pr.Notifications.PreferredChannels = nonNil(pr.Notifications.PreferredChannels)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// dedupe keeps the first occurrence of every entry, in order.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}

// ─── Shallow merges ─────────────────────────────────────────────────────────

func (p *Profile) applyPersonalInfo(patch PersonalInfoPatch) {
	if p.PersonalInfo == nil {
		p.PersonalInfo = &PersonalInfo{}
	}
	s := p.PersonalInfo
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Age != nil {
		s.Age = *patch.Age
	}
	if patch.Domain != nil {
		s.Domain = *patch.Domain
	}
}

func (p *Profile) applyDailyRoutine(patch DailyRoutinePatch) {
	if p.DailyRoutine == nil {
		p.DailyRoutine = &DailyRoutine{WorkoutPreferences: []string{}}
	}
	s := p.DailyRoutine
	if patch.MealTimings != nil {
		s.MealTimings = *patch.MealTimings
	}
	if patch.WorkingHours != nil {
		s.WorkingHours = *patch.WorkingHours
	}
	if patch.WorkoutPreferences != nil {
		s.WorkoutPreferences = slices.Clone(nonNil(*patch.WorkoutPreferences))
	}
}

func (p *Profile) applyHabitsAndBehaviors(patch HabitsAndBehaviorsPatch) {
	if p.HabitsAndBehaviors == nil {
		p.HabitsAndBehaviors = &HabitsAndBehaviors{ProcrastinationHabits: []string{}, KnownBlockers: []string{}}
	}
	s := p.HabitsAndBehaviors
	if patch.ProcrastinationHabits != nil {
		s.ProcrastinationHabits = dedupe(*patch.ProcrastinationHabits)
	}
	if patch.KnownBlockers != nil {
		s.KnownBlockers = dedupe(*patch.KnownBlockers)
	}
}

func (p *Profile) applyProductivityInsights(patch ProductivityInsightsPatch) {
	if p.ProductivityInsights == nil {
		p.ProductivityInsights = &ProductivityInsights{BestFocusTimes: []string{}}
	}
	s := p.ProductivityInsights
	if patch.BestFocusTimes != nil {
		s.BestFocusTimes = slices.Clone(nonNil(*patch.BestFocusTimes))
	}
	if patch.EnergyLevels != nil {
		s.EnergyLevels = *patch.EnergyLevels
	}
	if patch.HabitStreaks != nil {
		s.HabitStreaks = *patch.HabitStreaks
	}
}

// applyHabitStreaks merges one level deeper than the other patches:
// it targets productivity_insights.habit_streaks.
func (p *Profile) applyHabitStreaks(patch HabitStreaksPatch) {
	if p.ProductivityInsights == nil {
		p.ProductivityInsights = &ProductivityInsights{BestFocusTimes: []string{}}
	}
	s := &p.ProductivityInsights.HabitStreaks
	if patch.WorkoutStreakDays != nil {
		s.WorkoutStreakDays = *patch.WorkoutStreakDays
	}
	if patch.TaskCompletionStreak != nil {
		s.TaskCompletionStreak = *patch.TaskCompletionStreak
	}
}

func (p *Profile) applyPreferences(patch PreferencesPatch) {
	if p.Preferences == nil {
		p.Preferences = &Preferences{Notifications: Notifications{PreferredChannels: []string{}}}
	}
	s := p.Preferences
	if patch.Notifications != nil {
		s.Notifications = *patch.Notifications
		s.Notifications.PreferredChannels = slices.Clone(nonNil(s.Notifications.PreferredChannels))
	}
	if patch.MotivationStyle != nil {
		s.MotivationStyle = *patch.MotivationStyle
	}
}
