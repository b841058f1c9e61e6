package profiletools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/focusmate/internal/profile"
)

// AddTaskTool handles the add_task MCP tool.
type AddTaskTool struct {
	engine      *profile.Engine
	defaultUser string
}

// NewAddTaskTool creates an AddTaskTool.
func NewAddTaskTool(engine *profile.Engine, defaultUser string) *AddTaskTool {
	return &AddTaskTool{engine: engine, defaultUser: defaultUser}
}

// Definition returns the MCP tool definition for add_task.
func (t *AddTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Add a pending task to the user's task list. Returns the generated task_id."),
		mcp.WithString("task_description",
			mcp.Required(),
			mcp.Description("What needs to be done"),
		),
		mcp.WithString("priority",
			mcp.Required(),
			mcp.Description("Task priority, e.g. high, medium, low"),
		),
		mcp.WithString("due_date",
			mcp.Description("Optional due date, e.g. 2025-07-06"),
		),
		withUserID(),
	)
}

// Handle processes the add_task tool call.
func (t *AddTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}

	description := strings.TrimSpace(req.GetString("task_description", ""))
	if description == "" {
		return errorResult("'task_description' is required"), nil
	}

	task, err := t.engine.AddTask(ctx, userID, profile.NewTask{
		Description: description,
		Priority:    strings.TrimSpace(req.GetString("priority", "")),
		DueDate:     req.GetString("due_date", ""),
	})
	if err != nil {
		return engineFailure("add task", err), nil
	}
	return respond(StatusSuccess, fmt.Sprintf("Task '%s' added with ID: %s", description, task.TaskID), map[string]any{
		"task_id": task.TaskID,
		"task":    task,
	}), nil
}

// ─── CompleteTaskTool ───────────────────────────────────────────────────────

// CompleteTaskTool handles the complete_task MCP tool.
type CompleteTaskTool struct {
	engine      *profile.Engine
	defaultUser string
}

// NewCompleteTaskTool creates a CompleteTaskTool.
func NewCompleteTaskTool(engine *profile.Engine, defaultUser string) *CompleteTaskTool {
	return &CompleteTaskTool{engine: engine, defaultUser: defaultUser}
}

// Definition returns the MCP tool definition for complete_task.
func (t *CompleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a current task as completed. Use get_current_tasks to find its task_id."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID returned by add_task"),
		),
		withUserID(),
	)
}

// Handle processes the complete_task tool call.
func (t *CompleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}
	taskID := strings.TrimSpace(req.GetString("task_id", ""))
	if taskID == "" {
		return errorResult("'task_id' is required"), nil
	}

	done, err := t.engine.CompleteTask(ctx, userID, taskID)
	if err != nil {
		return engineFailure("complete task", err), nil
	}
	if !done {
		return respond(StatusError, fmt.Sprintf("Failed to complete task %s - task not found", taskID), map[string]any{
			"completed": false,
		}), nil
	}
	return respond(StatusSuccess, fmt.Sprintf("Task %s marked as completed", taskID), map[string]any{
		"completed": true,
	}), nil
}

// ─── CurrentTasksTool ───────────────────────────────────────────────────────

// CurrentTasksTool handles the get_current_tasks MCP tool.
type CurrentTasksTool struct {
	engine      *profile.Engine
	defaultUser string
}

// NewCurrentTasksTool creates a CurrentTasksTool.
func NewCurrentTasksTool(engine *profile.Engine, defaultUser string) *CurrentTasksTool {
	return &CurrentTasksTool{engine: engine, defaultUser: defaultUser}
}

// Definition returns the MCP tool definition for get_current_tasks.
func (t *CurrentTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_current_tasks",
		mcp.WithDescription("List the user's pending tasks with their ids, priorities and due dates."),
		withUserID(),
	)
}

// Handle processes the get_current_tasks tool call.
func (t *CurrentTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userArg(req, t.defaultUser)
	if !ok {
		return missingUser(), nil
	}

	tasks, err := t.engine.CurrentTasks(ctx, userID)
	if err != nil {
		return engineFailure("read current tasks", err), nil
	}
	return respond(StatusSuccess, fmt.Sprintf("%d current task(s)", len(tasks)), map[string]any{
		"current_tasks": tasks,
		"count":         len(tasks),
	}), nil
}
