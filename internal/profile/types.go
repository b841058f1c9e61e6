package profile

import "time"

// Profile is the single document kept for one user.
//
// Top-level sections are pointers: a nil section means the stored
// document predates it, and the engine backfills it on the next write.
type Profile struct {
	PersonalInfo         *PersonalInfo         `json:"personal_info,omitempty"`
	DailyRoutine         *DailyRoutine         `json:"daily_routine,omitempty"`
	HabitsAndBehaviors   *HabitsAndBehaviors   `json:"habits_and_behaviors,omitempty"`
	TaskTracking         *TaskTracking         `json:"task_tracking,omitempty"`
	ProductivityInsights *ProductivityInsights `json:"productivity_insights,omitempty"`
	Preferences          *Preferences          `json:"preferences,omitempty"`
	Metadata             *Metadata             `json:"metadata,omitempty"`
}

type PersonalInfo struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Domain string `json:"domain"`
}

type DailyRoutine struct {
	MealTimings        MealTimings  `json:"meal_timings"`
	WorkingHours       WorkingHours `json:"working_hours"`
	WorkoutPreferences []string     `json:"workout_preferences"`
}

type MealTimings struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

type WorkingHours struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// HabitsAndBehaviors holds two set-like lists: no entry appears twice.
type HabitsAndBehaviors struct {
	ProcrastinationHabits []string `json:"procrastination_habits"`
	KnownBlockers         []string `json:"known_blockers"`
}

// TaskTracking is engine-owned. A task lives in exactly one of the lists.
type TaskTracking struct {
	CurrentTasks   []Task `json:"current_tasks"`
	CompletedTasks []Task `json:"completed_tasks"`
}

type ProductivityInsights struct {
	BestFocusTimes []string     `json:"best_focus_times"`
	EnergyLevels   EnergyLevels `json:"energy_levels"`
	HabitStreaks   HabitStreaks `json:"habit_streaks"`
}

type EnergyLevels struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

type HabitStreaks struct {
	WorkoutStreakDays    int `json:"workout_streak_days"`
	TaskCompletionStreak int `json:"task_completion_streak"`
}

type Preferences struct {
	Notifications   Notifications `json:"notifications"`
	MotivationStyle string        `json:"motivation_style"`
}

type Notifications struct {
	ReminderFrequency string   `json:"reminder_frequency"`
	PreferredChannels []string `json:"preferred_channels"`
}

// Metadata is engine-owned. CreatedAt and Version never change after
// the document is created.
type Metadata struct {
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
	Version     int       `json:"version"`
}

// SchemaVersion is written into every new document.
const SchemaVersion = 1

// TaskStatus is the lifecycle state of a Task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

type Task struct {
	TaskID       string     `json:"task_id"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	Status       TaskStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DueDate      string     `json:"due_date,omitempty"`
	LastActivity time.Time  `json:"last_activity"`
	CompletedOn  *time.Time `json:"completed_on,omitempty"`
}

// NewTask is the caller-supplied part of a task.
type NewTask struct {
	Description string
	Priority    string
	DueDate     string
}

// HabitOutcome reports what AddHabitOrBlocker did.
type HabitOutcome string

const (
	OutcomeAdded           HabitOutcome = "added"
	OutcomeAlreadyPresent  HabitOutcome = "already_present"
	OutcomeInvalidCategory HabitOutcome = "invalid_category"
)

// Habit categories accepted by AddHabitOrBlocker.
const (
	CategoryProcrastinationHabits = "procrastination_habits"
	CategoryKnownBlockers         = "known_blockers"
)

// Patches carry the keys of a shallow merge. A nil field is a key the
// caller did not send; a non-nil field replaces the stored value whole.

type PersonalInfoPatch struct {
	Name   *string `json:"name,omitempty"`
	Age    *int    `json:"age,omitempty"`
	Domain *string `json:"domain,omitempty"`
}

type DailyRoutinePatch struct {
	MealTimings        *MealTimings  `json:"meal_timings,omitempty"`
	WorkingHours       *WorkingHours `json:"working_hours,omitempty"`
	WorkoutPreferences *[]string     `json:"workout_preferences,omitempty"`
}

type HabitsAndBehaviorsPatch struct {
	ProcrastinationHabits *[]string `json:"procrastination_habits,omitempty"`
	KnownBlockers         *[]string `json:"known_blockers,omitempty"`
}

type ProductivityInsightsPatch struct {
	BestFocusTimes *[]string     `json:"best_focus_times,omitempty"`
	EnergyLevels   *EnergyLevels `json:"energy_levels,omitempty"`
	HabitStreaks   *HabitStreaks `json:"habit_streaks,omitempty"`
}

type HabitStreaksPatch struct {
	WorkoutStreakDays    *int `json:"workout_streak_days,omitempty"`
	TaskCompletionStreak *int `json:"task_completion_streak,omitempty"`
}

type PreferencesPatch struct {
	Notifications   *Notifications `json:"notifications,omitempty"`
	MotivationStyle *string        `json:"motivation_style,omitempty"`
}
