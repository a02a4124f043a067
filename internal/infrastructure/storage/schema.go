package storage

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Stored documents are validated against these schemas on load so a
// hand-edited workspace file fails fast instead of surfacing later as a
// half-broken schedule.

const tasksSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "estimated_hours", "status"],
    "properties": {
      "id": { "type": "string", "minLength": 1 },
      "title": { "type": "string" },
      "estimated_hours": { "type": "number", "exclusiveMinimum": 0 },
      "status": { "enum": ["pending", "completed", "cancelled"] },
      "category": { "type": "string" },
      "important": { "type": "boolean" },
      "deadline": { "type": "string" }
    }
  }
}`

const plansSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "date"],
    "properties": {
      "id": { "type": "string", "minLength": 1 },
      "date": { "type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$" },
      "is_locked": { "type": "boolean" },
      "planned_tasks": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["task_id", "session_number", "allocated_hours"],
          "properties": {
            "task_id": { "type": "string", "minLength": 1 },
            "session_number": { "type": "integer", "minimum": 1 },
            "allocated_hours": { "type": "number", "exclusiveMinimum": 0 },
            "start_time": { "type": "string", "pattern": "^[0-9]{2}:[0-9]{2}$" },
            "end_time": { "type": "string", "pattern": "^[0-9]{2}:[0-9]{2}$" },
            "status": { "enum": ["scheduled", "completed", "skipped"] },
            "done": { "type": "boolean" },
            "is_manual_override": { "type": "boolean" }
          }
        }
      }
    }
  }
}`

var (
	tasksSchemaLoader = gojsonschema.NewStringLoader(tasksSchemaJSON)
	plansSchemaLoader = gojsonschema.NewStringLoader(plansSchemaJSON)
)

func validateTasksDocument(data []byte) error {
	return validateDocument(tasksSchemaLoader, data, TasksFile)
}

func validatePlansDocument(data []byte) error {
	return validateDocument(plansSchemaLoader, data, PlansFile)
}

func validateDocument(schemaLoader gojsonschema.JSONLoader, data []byte, name string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", name, err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("%s is invalid: %s", name, first.String())
	}
	return nil
}
