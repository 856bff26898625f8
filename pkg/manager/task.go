package manager

import (
	"io"
	"maps"
	"slices"
	"strings"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	TaskGithubStar  = "github_star"
	TaskGithubIssue = "github_issue"
)

func builtinTasks() []schema.Task {
	return []schema.Task{
		{
			Name:        TaskGithubStar,
			Description: "Star a repository on GitHub",
			App:         "github",
			Instruction: `Star the repository "composiohq/composio"`,
			Tools: schema.ToolFilter{
				Apps: []string{"github"},
				Tags: []string{"important"},
			},
		},
		{
			Name:        TaskGithubIssue,
			Description: "Create an issue on GitHub",
			App:         "github",
			System:      "You are a helpful assistant that creates GitHub issues.",
			Instruction: "Create an issue with the title 'Sample Issue' in the repo anonthedev/break. Use only the provided tools.",
			Tools: schema.ToolFilter{
				Actions: []string{"GITHUB_ISSUES_CREATE"},
			},
			Message: "Issue has been created successfully",
		},
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LoadTasks reads tasks from a YAML document, replacing any existing tasks
// with the same name
func (m *Manager) LoadTasks(r io.Reader) error {
	tasks, err := schema.ReadTasks(r)
	if err != nil {
		return toolset.ErrBadParameter.Withf("tasks: %v", err)
	}

	// Validate all the tasks before adding any
	for i := range tasks {
		if err := validateTask(&tasks[i]); err != nil {
			return err
		}
	}
	for _, task := range tasks {
		if err := m.addTask(task); err != nil {
			return err
		}
	}
	return nil
}

// ListTasks returns the tasks sorted by name
func (m *Manager) ListTasks() *schema.ListTasksResponse {
	m.RLock()
	defer m.RUnlock()

	names := slices.Sorted(maps.Keys(m.tasks))
	result := make([]schema.Task, 0, len(names))
	for _, name := range names {
		result = append(result, m.tasks[name])
	}
	return &schema.ListTasksResponse{
		Count: uint(len(result)),
		Body:  result,
	}
}

// Task returns a task by name
func (m *Manager) Task(name string) (*schema.Task, error) {
	m.RLock()
	defer m.RUnlock()
	if task, exists := m.tasks[name]; !exists {
		return nil, toolset.ErrNotFound.Withf("task %q", name)
	} else {
		return types.Ptr(task), nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (m *Manager) addTask(task schema.Task) error {
	if err := validateTask(&task); err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	m.tasks[task.Name] = task
	return nil
}

// validateTask checks the task, and takes the app from the tool filter when
// the task does not name one
func validateTask(task *schema.Task) error {
	task.Name = strings.TrimSpace(task.Name)
	if !types.IsIdentifier(task.Name) {
		return toolset.ErrBadParameter.Withf("invalid task name %q", task.Name)
	}
	if task.App == "" && len(task.Tools.Apps) == 1 {
		task.App = task.Tools.Apps[0]
	}
	task.App = strings.ToLower(strings.TrimSpace(task.App))
	switch {
	case task.App == "":
		return toolset.ErrBadParameter.Withf("task %q: app is required", task.Name)
	case strings.TrimSpace(task.Instruction) == "":
		return toolset.ErrBadParameter.Withf("task %q: instruction is required", task.Name)
	case task.Tools.IsEmpty():
		return toolset.ErrBadParameter.Withf("task %q: tools require apps or actions", task.Name)
	}
	return nil
}
