// Package resources implements MCP resource handlers for user profiles.
//
// Resources provide read-only data that the host can consume for context.
// Each profile is addressed as profile://{user_id}.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/focusmate/internal/profile"
)

// ProfileScheme prefixes every profile resource URI.
const ProfileScheme = "profile://"

// Handler manages profile resource endpoints.
type Handler struct {
	engine *profile.Engine
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(engine *profile.Engine) *Handler {
	return &Handler{engine: engine}
}

// ProfileTemplate returns the MCP resource template for user profiles.
func (h *Handler) ProfileTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		ProfileScheme+"{user_id}",
		"User Productivity Profile",
		mcp.WithTemplateDescription("The full profile document of one user as JSON"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleProfile returns the profile named by the request URI.
func (h *Handler) HandleProfile(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	userID, err := userFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	p, err := h.engine.Lookup(ctx, userID)
	if errors.Is(err, profile.ErrNotFound) {
		return errorResource(req.Params.URI, fmt.Sprintf("no profile for user %q", userID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling profile: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// userFromURI extracts the user id from profile://{user_id}.
func userFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, ProfileScheme)
	if !ok {
		return "", fmt.Errorf("unsupported resource URI %q", uri)
	}
	userID, err := url.PathUnescape(strings.TrimSuffix(rest, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid user id in %q: %w", uri, err)
	}
	if userID == "" {
		return "", fmt.Errorf("missing user id in %q", uri)
	}
	return userID, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
