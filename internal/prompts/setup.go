// Package prompts implements MCP prompt handlers for the productivity
// assistant.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a specific sequence of tool calls. Unlike tools
// (which the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SetupPrompt handles the profile-setup MCP prompt.
// It walks the user through filling in a new profile.
type SetupPrompt struct{}

// NewSetupPrompt creates a SetupPrompt.
func NewSetupPrompt() *SetupPrompt {
	return &SetupPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *SetupPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("profile-setup",
		mcp.WithPromptDescription(
			"Set up your productivity profile: personal info, daily routine, "+
				"and your main procrastination habit and blocker.",
		),
		mcp.WithArgument("user_id",
			mcp.ArgumentDescription("Profile to set up. Default: the server's configured user"),
		),
	)
}

// Handle processes the profile-setup prompt request.
func (p *SetupPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	target := "my profile"
	userArg := ""
	if u := req.Params.Arguments["user_id"]; u != "" {
		target = fmt.Sprintf("the profile of user '%s'", u)
		userArg = fmt.Sprintf(" with user_id='%s'", u)
	}

	return &mcp.GetPromptResult{
		Description: "Set up a productivity profile",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Help me set up %s.\n\n"+
						"Please:\n"+
						"1. Run `initialize_user_profile`%s\n"+
						"2. Ask my name, age and professional domain, then call `update_personal_info` with what I give you\n"+
						"3. Ask when I usually eat breakfast, lunch and dinner, when I start and end work, and my timezone, "+
						"then call `update_daily_routine`\n"+
						"4. Ask for my main procrastination habit and my biggest productivity blocker, "+
						"and record each with `add_habit_or_blocker`\n"+
						"5. Skip anything I leave blank, and finish with a short summary of my profile",
					target, userArg,
				)),
			},
		},
	}, nil
}
