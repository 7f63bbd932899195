package llm

import "testing"

func TestCleanSchema_RemovesValidationKeywords(t *testing.T) {
	schema := map[string]interface{}{
		"type":        "object",
		"title":       "AgentAnalysis",
		"description": "Structured output",
		"properties": map[string]interface{}{
			"hypothesis": map[string]interface{}{
				"type":        "string",
				"minLength":   10,
				"description": "One sentence summary",
			},
			"confidence_score": map[string]interface{}{
				"type":    "number",
				"minimum": 0.0,
				"maximum": 1.0,
			},
			"evidence_cited": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items": map[string]interface{}{
					"type":      "string",
					"maxLength": 500,
				},
			},
		},
		"required": []interface{}{"hypothesis"},
	}

	cleaned := CleanSchema(schema)

	if _, ok := cleaned["title"]; ok {
		t.Error("expected title removed at root")
	}
	if _, ok := cleaned["description"]; ok {
		t.Error("expected description removed at root")
	}
	if _, ok := cleaned["required"]; !ok {
		t.Error("expected required to be kept")
	}

	props := cleaned["properties"].(map[string]interface{})

	hypothesis := props["hypothesis"].(map[string]interface{})
	if _, ok := hypothesis["minLength"]; ok {
		t.Error("expected minLength removed from property")
	}
	if _, ok := hypothesis["description"]; ok {
		t.Error("expected description removed from property")
	}
	if hypothesis["type"] != "string" {
		t.Error("expected type kept")
	}

	confidence := props["confidence_score"].(map[string]interface{})
	if _, ok := confidence["minimum"]; ok {
		t.Error("expected minimum removed")
	}
	if _, ok := confidence["maximum"]; ok {
		t.Error("expected maximum removed")
	}

	evidence := props["evidence_cited"].(map[string]interface{})
	if _, ok := evidence["minItems"]; ok {
		t.Error("expected minItems removed")
	}
	items := evidence["items"].(map[string]interface{})
	if _, ok := items["maxLength"]; ok {
		t.Error("expected maxLength removed from nested items")
	}
}

func TestCleanSchema_KeepsEnum(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"Critical", "Warning", "Healthy"},
			},
		},
	}

	cleaned := CleanSchema(schema)
	status := cleaned["properties"].(map[string]interface{})["status"].(map[string]interface{})
	if _, ok := status["enum"]; !ok {
		t.Error("expected enum to be kept")
	}
}

func TestCleanSchema_RemovesAdditionalProperties(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"agent_assessment": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": map[string]interface{}{"type": "string"},
				"properties": map[string]interface{}{
					"DBA": map[string]interface{}{"type": "string"},
				},
			},
		},
	}

	cleaned := CleanSchema(schema)
	assessment := cleaned["properties"].(map[string]interface{})["agent_assessment"].(map[string]interface{})
	if _, ok := assessment["additionalProperties"]; ok {
		t.Error("expected additionalProperties removed")
	}
	if _, ok := assessment["properties"]; !ok {
		t.Error("expected concrete properties kept")
	}
}

func TestCleanSchema_DoesNotMutateInput(t *testing.T) {
	schema := map[string]interface{}{
		"type":  "object",
		"title": "Keep me",
		"properties": map[string]interface{}{
			"field": map[string]interface{}{
				"type":      "string",
				"minLength": 5,
			},
		},
	}

	_ = CleanSchema(schema)

	if schema["title"] != "Keep me" {
		t.Error("input schema root was mutated")
	}
	field := schema["properties"].(map[string]interface{})["field"].(map[string]interface{})
	if field["minLength"] != 5 {
		t.Error("input schema property was mutated")
	}
}

func TestCleanSchema_AnyOf(t *testing.T) {
	schema := map[string]interface{}{
		"anyOf": []interface{}{
			map[string]interface{}{"type": "string", "format": "date-time"},
			map[string]interface{}{"type": "null"},
		},
	}

	cleaned := CleanSchema(schema)
	variants := cleaned["anyOf"].([]interface{})
	first := variants[0].(map[string]interface{})
	if _, ok := first["format"]; ok {
		t.Error("expected format removed inside anyOf")
	}
}
