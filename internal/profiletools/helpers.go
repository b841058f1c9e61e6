// Package profiletools provides MCP tool handlers over the profile engine.
//
// Each tool follows the same pattern:
// - A struct with the engine and the default user id injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a JSON result
//
// Every result carries "status" (success, error or info) and "message".
// Domain failures are results with IsError set, never Go errors.
package profiletools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/focusmate/internal/profile"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInfo    = "info"
)

// withUserID adds the user_id parameter every tool accepts.
func withUserID() mcp.ToolOption {
	return mcp.WithString("user_id",
		mcp.Description("User whose profile to use. Defaults to the server's configured user."),
	)
}

// userArg resolves the user_id argument against the configured default.
func userArg(req mcp.CallToolRequest, defaultUser string) (string, bool) {
	u := strings.TrimSpace(req.GetString("user_id", ""))
	if u == "" {
		u = defaultUser
	}
	return u, u != ""
}

// objectArg reads an object argument. Hosts send either a JSON object or
// a string holding one.
func objectArg(req mcp.CallToolRequest, key string) (map[string]any, error) {
	switch v := req.GetArguments()[key].(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("'%s' must be a JSON object: %v", key, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("'%s' must be a JSON object", key)
	}
}

// pickTruthy copies the listed keys of src whose values are set.
func pickTruthy(src map[string]any, keys ...string) map[string]any {
	out := map[string]any{}
	for _, k := range keys {
		if v, ok := src[k]; ok && truthy(v) {
			out[k] = v
		}
	}
	return out
}

// truthy reports whether v carries information: zero numbers, empty
// strings and empty collections do not.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// numberArg extracts an integer argument. JSON numbers arrive as float64.
func numberArg(req mcp.CallToolRequest, key string) (int, bool) {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// respond renders the JSON envelope.
func respond(status, message string, fields map[string]any) *mcp.CallToolResult {
	body := map[string]any{"status": status, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	r := mcp.NewToolResultText(string(data))
	r.IsError = status == StatusError
	return r
}

func errorResult(message string) *mcp.CallToolResult {
	return respond(StatusError, message, nil)
}

// engineFailure maps an engine error to an error result.
func engineFailure(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, profile.ErrUnavailable) {
		return errorResult(fmt.Sprintf("failed to %s: profile store unavailable: %v", action, err))
	}
	return errorResult(fmt.Sprintf("failed to %s: %v", action, err))
}

func missingUser() *mcp.CallToolResult {
	return errorResult("'user_id' is required (no default user configured)")
}
