package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// CheckinPrompt handles the productivity-checkin MCP prompt.
// It instructs the AI to read the profile before recommending anything.
type CheckinPrompt struct{}

// NewCheckinPrompt creates a CheckinPrompt.
func NewCheckinPrompt() *CheckinPrompt {
	return &CheckinPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *CheckinPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("productivity-checkin",
		mcp.WithPromptDescription(
			"Daily check-in: review your tasks, energy and blockers, "+
				"and get a plan that fits your routine.",
		),
		mcp.WithArgument("user_id",
			mcp.ArgumentDescription("Profile to review. Default: the server's configured user"),
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional topic for today, e.g. 'deep work' or 'workout consistency'"),
		),
	)
}

// Handle processes the productivity-checkin prompt request.
func (p *CheckinPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	userArg := ""
	if u := req.Params.Arguments["user_id"]; u != "" {
		userArg = fmt.Sprintf(" (user_id='%s')", u)
	}
	focus := ""
	if f := req.Params.Arguments["focus"]; f != "" {
		focus = fmt.Sprintf("\nToday I especially want help with: %s.\n", f)
	}

	return &mcp.GetPromptResult{
		Description: "Productivity check-in",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Let's do my productivity check-in%s.\n"+
						"%s\n"+
						"Please:\n"+
						"1. Run `get_user_profile` with an empty section and `get_current_tasks`\n"+
						"2. Suggest an order for my pending tasks that matches my best focus times and energy levels\n"+
						"3. Point out which of my known blockers or procrastination habits could get in the way, with one concrete counter-measure each\n"+
						"4. Ask whether I finished anything, and call `complete_task` for each task I confirm\n"+
						"5. If I mention a new habit, blocker or streak, record it",
					userArg, focus,
				)),
			},
		},
	}, nil
}
