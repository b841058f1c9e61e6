package profiletools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/focusmate/internal/profile"
)

// HabitOrBlockerTool handles the add_habit_or_blocker MCP tool.
type HabitOrBlockerTool struct {
	engine      *profile.Engine
	defaultUser string
}

// NewHabitOrBlockerTool creates a HabitOrBlockerTool.
func NewHabitOrBlockerTool(engine *profile.Engine, defaultUser string) *HabitOrBlockerTool {
	return &HabitOrBlockerTool{engine: engine, defaultUser: defaultUser}
}

// Definition returns the MCP tool definition for add_habit_or_blocker.
func (t *HabitOrBlockerTool) Definition() mcp.Tool {
	return mcp.NewTool("add_habit_or_blocker",
		mcp.WithDescription(
			"Record a procrastination habit or a productivity blocker the user mentions. "+
				"Entries are unique: recording one twice is reported as info.",
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Enum(profile.CategoryProcrastinationHabits, profile.CategoryKnownBlockers),
			mcp.Description("procrastination_habits or known_blockers"),
		),
		mcp.WithString("item",
			mcp.Required(),
			mcp.Description("The habit or blocker, e.g. 'doom scrolling'"),
		),
		withUserID(),
	)
}

// Handle processes the add_habit_or_blocker tool call.
func (t *HabitOrBlockerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}
	category := strings.TrimSpace(req.GetString("category", ""))
	item := strings.TrimSpace(req.GetString("item", ""))
	if item == "" {
		return errorResult("'item' is required"), nil
	}

	out, err := t.engine.AddHabitOrBlocker(ctx, userID, category, item)
	switch {
	case errors.Is(err, profile.ErrInvalidCategory):
		return errorResult("Category must be 'procrastination_habits' or 'known_blockers'"), nil
	case err != nil:
		return engineFailure("record "+category, err), nil
	}

	if out == profile.OutcomeAlreadyPresent {
		return respond(StatusInfo, fmt.Sprintf("'%s' already exists in %s", item, category), map[string]any{
			"outcome": string(out),
		}), nil
	}
	return respond(StatusSuccess, fmt.Sprintf("Added '%s' to %s", item, category), map[string]any{
		"outcome": string(out),
	}), nil
}
