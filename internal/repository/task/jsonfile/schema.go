package jsonfile

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "tasks-database.schema.json"

const documentSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["tasks"],
	"additionalProperties": false,
	"properties": {
		"tasks": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["description", "status", "created_at", "updated_at"],
				"additionalProperties": false,
				"properties": {
					"description": {"type": "string"},
					"status": {"type": "string"},
					"created_at": {"$ref": "#/definitions/timestamp"},
					"updated_at": {"$ref": "#/definitions/timestamp"}
				}
			}
		}
	},
	"definitions": {
		"timestamp": {
			"type": "string",
			"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2} [0-9]{2}:[0-9]{2}:[0-9]{2}$"
		}
	}
}`

var documentSchema = jsonschema.MustCompileString(documentSchemaURL, documentSchemaJSON)

func validateDocument(doc any) error {
	err := documentSchema.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	var msgs []string
	collectSchemaErrors(ve, &msgs)
	if len(msgs) == 0 {
		return err
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
