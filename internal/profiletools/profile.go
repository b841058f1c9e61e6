package profiletools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/focusmate/internal/profile"
)

// InitializeTool handles the initialize_user_profile MCP tool.
type InitializeTool struct {
	engine      *profile.Engine
	defaultUser string
}

// NewInitializeTool creates an InitializeTool.
func NewInitializeTool(engine *profile.Engine, defaultUser string) *InitializeTool {
	return &InitializeTool{engine: engine, defaultUser: defaultUser}
}

// Definition returns the MCP tool definition for initialize_user_profile.
func (t *InitializeTool) Definition() mcp.Tool {
	return mcp.NewTool("initialize_user_profile",
		mcp.WithDescription(
			"Create the user's productivity profile with every section present. "+
				"Safe to call again: an existing profile keeps its data and only gains missing sections.",
		),
		withUserID(),
	)
}

// Handle processes the initialize_user_profile tool call.
func (t *InitializeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}

	p, err := t.engine.Initialize(ctx, userID, nil)
	if err != nil {
		return engineFailure("initialize user profile", err), nil
	}
	return respond(StatusSuccess, fmt.Sprintf("User profile initialized for %s", userID), map[string]any{
		"profile": p,
	}), nil
}

// ─── GetProfileTool ─────────────────────────────────────────────────────────

// GetProfileTool handles the get_user_profile MCP tool.
type GetProfileTool struct {
	engine      *profile.Engine
	defaultUser string
}

// NewGetProfileTool creates a GetProfileTool.
func NewGetProfileTool(engine *profile.Engine, defaultUser string) *GetProfileTool {
	return &GetProfileTool{engine: engine, defaultUser: defaultUser}
}

// Definition returns the MCP tool definition for get_user_profile.
func (t *GetProfileTool) Definition() mcp.Tool {
	sections := make([]string, 0, len(profile.Sections))
	for _, s := range profile.Sections {
		sections = append(sections, string(s))
	}
	return mcp.NewTool("get_user_profile",
		mcp.WithDescription(
			"Read the user's profile. Check it before making recommendations. "+
				"Omit section (or pass an empty string) for the full profile.",
		),
		mcp.WithString("section",
			mcp.Description("One of: "+strings.Join(sections, ", ")+". Empty for the full profile."),
		),
		withUserID(),
	)
}

// Handle processes the get_user_profile tool call. A user without a
// profile reads as empty data, not as an error.
func (t *GetProfileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}
	section := strings.TrimSpace(req.GetString("section", ""))

	data, err := t.engine.GetSection(ctx, userID, section)
	if err != nil {
		return engineFailure("read profile", err), nil
	}

	if section == "" {
		return respond(StatusSuccess, fmt.Sprintf("Profile for %s", userID), map[string]any{
			"profile": data,
		}), nil
	}
	return respond(StatusSuccess, fmt.Sprintf("Section %s for %s", section, userID), map[string]any{
		"section": section,
		"data":    data,
	}), nil
}
