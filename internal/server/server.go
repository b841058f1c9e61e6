// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it receives the profile engine and
// injects it into the tools, prompts and resources that depend on it.
// No business logic lives here, only wiring.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/focusmate/internal/profile"
	"github.com/HendryAvila/focusmate/internal/profiletools"
	"github.com/HendryAvila/focusmate/internal/prompts"
	"github.com/HendryAvila/focusmate/internal/resources"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Name is the MCP server name announced to hosts.
const Name = "focusmate"

// Options configures New.
type Options struct {
	// DefaultUserID is used by every tool called without user_id.
	DefaultUserID string
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
func New(engine *profile.Engine, opts Options) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	registerProfileTools(s, engine, opts.DefaultUserID)

	// --- Register prompts ---

	setupPrompt := prompts.NewSetupPrompt()
	s.AddPrompt(setupPrompt.Definition(), setupPrompt.Handle)

	checkinPrompt := prompts.NewCheckinPrompt()
	s.AddPrompt(checkinPrompt.Definition(), checkinPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(engine)
	s.AddResourceTemplate(resourceHandler.ProfileTemplate(), resourceHandler.HandleProfile)

	return s
}

// tool is what every profiletools handler provides.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// profileTools lists the tools in registration order.
func profileTools(engine *profile.Engine, defaultUser string) []tool {
	return []tool{
		// --- Profile ---
		profiletools.NewInitializeTool(engine, defaultUser),
		profiletools.NewGetProfileTool(engine, defaultUser),
		profiletools.NewPersonalInfoTool(engine, defaultUser),
		profiletools.NewDailyRoutineTool(engine, defaultUser),
		profiletools.NewPreferencesTool(engine, defaultUser),

		// --- Insights and habits ---
		profiletools.NewProductivityInsightsTool(engine, defaultUser),
		profiletools.NewHabitStreaksTool(engine, defaultUser),
		profiletools.NewHabitOrBlockerTool(engine, defaultUser),

		// --- Tasks ---
		profiletools.NewAddTaskTool(engine, defaultUser),
		profiletools.NewCompleteTaskTool(engine, defaultUser),
		profiletools.NewCurrentTasksTool(engine, defaultUser),
	}
}

func registerProfileTools(s *server.MCPServer, engine *profile.Engine, defaultUser string) {
	for _, t := range profileTools(engine, defaultUser) {
		s.AddTool(t.Definition(), t.Handle)
	}
}

// serverInstructions returns the system instructions that tell the AI
// how to use focusmate effectively.
func serverInstructions() string {
	return `You have access to focusmate, a productivity assistant backed by a structured user profile.

## THE PROFILE

Each user has one profile with these sections:
- personal_info: name, age, domain
- daily_routine: meal_timings, working_hours, workout_preferences
- habits_and_behaviors: procrastination_habits, known_blockers
- task_tracking: current_tasks, completed_tasks
- productivity_insights: best_focus_times, energy_levels, habit_streaks
- preferences: notifications, motivation_style

Every tool takes an optional user_id. Omit it to use the configured user.

## WORKFLOW

1. For a new user, call initialize_user_profile, then collect their details.
2. ALWAYS read the profile with get_user_profile (empty section = full profile)
   before making recommendations.
3. Tasks: add_task needs a description and a priority (due_date optional).
   Use get_current_tasks to find task ids, complete_task to close one.
4. update_personal_info, update_daily_routine, update_productivity_insights
   and update_preferences: pass only the fields that changed. Fields you
   omit keep their stored value.
5. Habits and blockers: add_habit_or_blocker with category
   procrastination_habits or known_blockers. Duplicates are reported as info.
6. Streaks: update_habit_streaks with the counters that changed.

## RESULTS

Every tool returns JSON with "status" (success, error or info) and "message".
Treat info as a soft outcome worth mentioning, not a failure.

## INTERACTION STYLE

- Be proactive in collecting profile information.
- Base recommendations on the user's focus times, energy levels and blockers.
- Offer one specific counter-measure per blocker rather than generic advice.
- Track progress: mention streaks and completed tasks when relevant.`
}
