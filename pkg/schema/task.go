package schema

import (
	"errors"
	"io"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Task is an instruction for the model, together with the app the entity
// needs to have connected and the tools the model may use
type Task struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	App         string     `json:"app" yaml:"app"`
	Model       string     `json:"model,omitempty" yaml:"model,omitempty"`
	System      string     `json:"system,omitempty" yaml:"system,omitempty"`
	Instruction string     `json:"instruction" yaml:"instruction"`
	Tools       ToolFilter `json:"tools" yaml:"tools"`
	Message     string     `json:"message,omitempty" yaml:"message,omitempty"` // Returned on success
}

// taskFile is the document layout for a file of tasks
type taskFile struct {
	Tasks []Task `yaml:"tasks"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ReadTasks decodes a YAML document with a top-level "tasks" list. An empty
// document returns no tasks.
func ReadTasks(r io.Reader) ([]Task, error) {
	var file taskFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return file.Tasks, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Task) String() string {
	return types.Stringify(t)
}
