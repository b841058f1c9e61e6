package server

import (
	"strings"
	"testing"

	"github.com/HendryAvila/focusmate/internal/docstore"
	"github.com/HendryAvila/focusmate/internal/profile"
	"github.com/HendryAvila/focusmate/internal/testutil"
)

func TestNew(t *testing.T) {
	engine := profile.NewEngine(docstore.NewMemoryStore(), testutil.NoopLogger())
	if s := New(engine, Options{DefaultUserID: "chris"}); s == nil {
		t.Fatal("expected non-nil server")
	}
}

func TestProfileTools_NamesAreUnique(t *testing.T) {
	engine := profile.NewEngine(docstore.NewMemoryStore(), testutil.NoopLogger())

	want := []string{
		"initialize_user_profile", "get_user_profile", "update_personal_info",
		"update_daily_routine", "update_preferences", "update_productivity_insights",
		"update_habit_streaks", "add_habit_or_blocker", "add_task", "complete_task",
		"get_current_tasks",
	}

	seen := map[string]bool{}
	for _, tl := range profileTools(engine, "chris") {
		name := tl.Definition().Name
		if seen[name] {
			t.Errorf("duplicate tool %q", name)
		}
		seen[name] = true
	}
	for _, name := range want {
		if !seen[name] {
			t.Errorf("missing tool %q", name)
		}
	}
	if len(seen) != len(want) {
		t.Errorf("registered %d tools, want %d", len(seen), len(want))
	}
}

func TestServerInstructions_MentionEveryTool(t *testing.T) {
	engine := profile.NewEngine(docstore.NewMemoryStore(), testutil.NoopLogger())
	instr := serverInstructions()
	for _, tl := range profileTools(engine, "") {
		if name := tl.Definition().Name; !strings.Contains(instr, name) {
			t.Errorf("instructions do not mention %q", name)
		}
	}
}
