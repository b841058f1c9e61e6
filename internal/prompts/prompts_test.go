package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptText(t *testing.T, r *mcp.GetPromptResult) string {
	t.Helper()
	if r == nil || len(r.Messages) != 1 {
		t.Fatalf("expected one message, got %+v", r)
	}
	tc, ok := r.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", r.Messages[0].Content)
	}
	return tc.Text
}

func TestCheckinPrompt(t *testing.T) {
	p := NewCheckinPrompt()
	if p.Definition().Name != "productivity-checkin" {
		t.Errorf("name = %q", p.Definition().Name)
	}

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"user_id": "sam", "focus": "deep work"}
	r, err := p.Handle(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := promptText(t, r)
	for _, want := range []string{"get_user_profile", "get_current_tasks", "user_id='sam'", "deep work"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt should mention %q", want)
		}
	}
}

func TestCheckinPrompt_NoArguments(t *testing.T) {
	r, err := NewCheckinPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if text := promptText(t, r); strings.Contains(text, "user_id=") {
		t.Error("no user_id should be injected when none is given")
	}
}

func TestSetupPrompt(t *testing.T) {
	p := NewSetupPrompt()
	if p.Definition().Name != "profile-setup" {
		t.Errorf("name = %q", p.Definition().Name)
	}

	r, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text := promptText(t, r)
	for _, want := range []string{"initialize_user_profile", "update_personal_info", "update_daily_routine", "add_habit_or_blocker"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt should mention %q", want)
		}
	}
}
