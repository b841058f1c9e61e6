package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/focusmate/internal/docstore"
	"github.com/HendryAvila/focusmate/internal/profile"
	"github.com/HendryAvila/focusmate/internal/testutil"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "show", "seed", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "focusmate "))
}

func TestSeedAndShow_EndToEnd(t *testing.T) {
	t.Setenv("FOCUSMATE_STORE_BACKEND", "sqlite")
	t.Setenv("FOCUSMATE_SQLITE_DIR", t.TempDir())
	t.Setenv("FOCUSMATE_DEFAULT_USER_ID", "sam")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"seed"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Example profile ready for sam")

	out.Reset()
	root = newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"show"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Name: Sam Rivera")
	assert.Contains(t, out.String(), "Blockers: lack of clarity in task; frequent context switching; low energy after meals")
}

func TestShow_NoProfile(t *testing.T) {
	t.Setenv("FOCUSMATE_STORE_BACKEND", "sqlite")
	t.Setenv("FOCUSMATE_SQLITE_DIR", t.TempDir())

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"show", "ghost"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "No profile found for ghost")
}

func TestShow_RequiresUser(t *testing.T) {
	t.Setenv("FOCUSMATE_STORE_BACKEND", "memory")
	t.Setenv("FOCUSMATE_DEFAULT_USER_ID", "")

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"show"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOCUSMATE_DEFAULT_USER_ID")
}

func TestWriteSummary(t *testing.T) {
	e := profile.NewEngine(docstore.NewMemoryStore(), testutil.NoopLogger())
	ctx := context.Background()

	_, err := e.Initialize(ctx, "sam", exampleProfile())
	require.NoError(t, err)
	task, err := e.AddTask(ctx, "sam", profile.NewTask{Description: "Finish ETL pipeline testing", Priority: "high", DueDate: "2025-07-06"})
	require.NoError(t, err)
	p, err := e.Lookup(ctx, "sam")
	require.NoError(t, err)

	var out bytes.Buffer
	writeSummary(&out, "sam", p)
	text := out.String()

	assert.Contains(t, text, "Meals: breakfast 08:00, lunch 13:00, dinner 20:00")
	assert.Contains(t, text, "Current: 1")
	assert.Contains(t, text, "["+task.TaskID+"] Finish ETL pipeline testing (high, due 2025-07-06)")
	assert.Contains(t, text, "Streaks: workout 5 days, task completion 3")
	assert.Contains(t, text, "schema v1")
}

func TestWriteSummary_SkipsEmptyFields(t *testing.T) {
	var out bytes.Buffer
	writeSummary(&out, "new", &profile.Profile{PersonalInfo: &profile.PersonalInfo{Name: "New"}})

	assert.Contains(t, out.String(), "Name: New")
	assert.NotContains(t, out.String(), "Age:")
	assert.NotContains(t, out.String(), "Tasks:")
}
