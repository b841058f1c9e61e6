package profiletools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/focusmate/internal/profile"
)

// sectionUpdate describes a tool that merges one object argument into
// a profile section.
type sectionUpdate struct {
	tool        string
	description string
	arg         string
	section     profile.Section
	keys        []string
	updated     string
	empty       string
}

// SectionUpdateTool handles update_personal_info, update_daily_routine,
// update_productivity_insights and update_preferences. Only keys with
// set values are merged; the rest of the section is preserved.
type SectionUpdateTool struct {
	engine      *profile.Engine
	defaultUser string
	def         sectionUpdate
}

// NewPersonalInfoTool creates the update_personal_info tool.
func NewPersonalInfoTool(engine *profile.Engine, defaultUser string) *SectionUpdateTool {
	return &SectionUpdateTool{engine: engine, defaultUser: defaultUser, def: sectionUpdate{
		tool:        "update_personal_info",
		description: "Update the user's personal information. Only the fields you pass are changed.",
		arg:         "personal_updates",
		section:     profile.SectionPersonalInfo,
		keys:        []string{"name", "age", "domain"},
		updated:     "Personal information updated",
		empty:       "No information provided to update",
	}}
}

// NewDailyRoutineTool creates the update_daily_routine tool.
func NewDailyRoutineTool(engine *profile.Engine, defaultUser string) *SectionUpdateTool {
	return &SectionUpdateTool{engine: engine, defaultUser: defaultUser, def: sectionUpdate{
		tool:        "update_daily_routine",
		description: "Update the user's daily routine. meal_timings {breakfast, lunch, dinner} and working_hours {start, end, timezone} replace the stored object whole; workout_preferences replaces the list.",
		arg:         "routine_updates",
		section:     profile.SectionDailyRoutine,
		keys:        []string{"meal_timings", "working_hours", "workout_preferences"},
		updated:     "Daily routine updated",
		empty:       "No routine information provided",
	}}
}

// NewProductivityInsightsTool creates the update_productivity_insights tool.
func NewProductivityInsightsTool(engine *profile.Engine, defaultUser string) *SectionUpdateTool {
	return &SectionUpdateTool{engine: engine, defaultUser: defaultUser, def: sectionUpdate{
		tool:        "update_productivity_insights",
		description: "Record productivity patterns: best_focus_times (list of time ranges), energy_levels {morning, afternoon, evening}, habit_streaks {workout_streak_days, task_completion_streak}.",
		arg:         "insights_updates",
		section:     profile.SectionProductivityInsights,
		keys:        []string{"best_focus_times", "energy_levels", "habit_streaks"},
		updated:     "Productivity insights updated",
		empty:       "No insights provided",
	}}
}

// NewPreferencesTool creates the update_preferences tool.
func NewPreferencesTool(engine *profile.Engine, defaultUser string) *SectionUpdateTool {
	return &SectionUpdateTool{engine: engine, defaultUser: defaultUser, def: sectionUpdate{
		tool:        "update_preferences",
		description: "Update how the user wants to be supported: notifications {reminder_frequency, preferred_channels} and motivation_style.",
		arg:         "preference_updates",
		section:     profile.SectionPreferences,
		keys:        []string{"notifications", "motivation_style"},
		updated:     "Preferences updated",
		empty:       "No preferences provided",
	}}
}

// Definition returns the MCP tool definition.
func (t *SectionUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool(t.def.tool,
		mcp.WithDescription(t.def.description),
		mcp.WithObject(t.def.arg,
			mcp.Required(),
			mcp.Description("Object with any of: "+strings.Join(t.def.keys, ", ")),
		),
		withUserID(),
	)
}

// Handle processes the tool call.
func (t *SectionUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}

	updates, err := objectArg(req, t.def.arg)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	data := pickTruthy(updates, t.def.keys...)
	if len(data) == 0 {
		return errorResult(t.def.empty), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return errorResult(fmt.Sprintf("encoding update: %v", err)), nil
	}
	if err := t.engine.UpdateSection(ctx, userID, string(t.def.section), raw); err != nil {
		return engineFailure("update "+string(t.def.section), err), nil
	}
	return respond(StatusSuccess, t.def.updated, map[string]any{
		"updated_fields": keysOf(data, t.def.keys),
	}), nil
}

// keysOf lists the keys of m in the order given by order.
func keysOf(m map[string]any, order []string) []string {
	out := make([]string, 0, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// ─── HabitStreaksTool ───────────────────────────────────────────────────────

// HabitStreaksTool handles the update_habit_streaks MCP tool.
type HabitStreaksTool struct {
	engine      *profile.Engine
	defaultUser string
}

// NewHabitStreaksTool creates a HabitStreaksTool.
func NewHabitStreaksTool(engine *profile.Engine, defaultUser string) *HabitStreaksTool {
	return &HabitStreaksTool{engine: engine, defaultUser: defaultUser}
}

// Definition returns the MCP tool definition for update_habit_streaks.
func (t *HabitStreaksTool) Definition() mcp.Tool {
	return mcp.NewTool("update_habit_streaks",
		mcp.WithDescription("Set the user's streak counters. Counters you omit keep their value."),
		mcp.WithNumber("workout_streak_days",
			mcp.Description("Consecutive days with a workout"),
		),
		mcp.WithNumber("task_completion_streak",
			mcp.Description("Consecutive days with at least one completed task"),
		),
		withUserID(),
	)
}

// Handle processes the update_habit_streaks tool call.
func (t *HabitStreaksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}

	var patch profile.HabitStreaksPatch
	if v, ok := numberArg(req, "workout_streak_days"); ok {
		patch.WorkoutStreakDays = &v
	}
	if v, ok := numberArg(req, "task_completion_streak"); ok {
		patch.TaskCompletionStreak = &v
	}
	if patch.WorkoutStreakDays == nil && patch.TaskCompletionStreak == nil {
		return errorResult("No streaks provided"), nil
	}
	if (patch.WorkoutStreakDays != nil && *patch.WorkoutStreakDays < 0) ||
		(patch.TaskCompletionStreak != nil && *patch.TaskCompletionStreak < 0) {
		return errorResult("Streaks cannot be negative"), nil
	}

	if err := t.engine.UpdateHabitStreaks(ctx, userID, patch); err != nil {
		return engineFailure("update habit streaks", err), nil
	}
	return respond(StatusSuccess, "Habit streaks updated", nil), nil
}
