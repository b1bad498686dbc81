// Package storage maps the task collection to a flat JSON file.
//
// The file holds a single array of task objects. Every save rewrites
// the whole file; collections are expected to stay small, so there is
// no incremental format.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Bearcry55/rtodo/internal/task"
)

// DefaultFile is the working-directory-relative task file name.
const DefaultFile = "todos.json"

// schemaJSON pins the persisted shape. Decoding goes through this
// schema so a malformed file fails loudly instead of being coerced
// into half-empty tasks.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "created_at", "completed"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "target_date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "created_at": {"type": "string", "format": "date-time"},
      "completed": {"type": "boolean"}
    }
  }
}`

var tasksSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("tasks.schema.json")
}()

// Store reads and writes one task file. It holds no task state; the
// in-memory collection is owned by the caller.
type Store struct {
	path string
}

// New returns a store bound to path.
func New(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path}
}

// Path returns the bound file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full collection. A missing file is an empty
// collection, not an error. A malformed file is preserved aside and
// reported as a CorruptDataError.
func (s *Store) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("read task file %s: %w", s.path, err)
	}

	if err := validate(data); err != nil {
		return nil, s.corrupt(err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, s.corrupt(err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// Save rewrites the whole file. The data goes to a temp file first and
// is renamed over the target, so a crash mid-write cannot truncate
// previously valid data.
func (s *Store) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return &task.IOError{Path: s.path, Err: err}
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &task.IOError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &task.IOError{Path: s.path, Err: err}
	}
	return nil
}

// validate checks raw file content against the persisted-shape schema.
func validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return tasksSchema.Validate(doc)
}

// corrupt copies the bad file aside before reporting it, so the next
// save cannot silently destroy whatever the user had.
func (s *Store) corrupt(cause error) error {
	backup := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().UTC().Format("20060102-150405"))
	if err := copyFile(s.path, backup); err != nil {
		backup = ""
	}
	return &task.CorruptDataError{Path: s.path, Backup: backup, Err: cause}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
