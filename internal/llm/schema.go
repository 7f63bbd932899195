package llm

// CleanSchema removes JSON-Schema keywords the backend's responseSchema
// field rejects. Validation keywords stay enforced locally after parsing;
// the backend only needs the structural shape.
//
// The transform is pure: the input schema is never modified.
func CleanSchema(schema map[string]interface{}) map[string]interface{} {
	cleaned := cleanNode(schema)

	// Root-level fields the backend rejects outright.
	delete(cleaned, "title")
	delete(cleaned, "description")
	delete(cleaned, "additionalProperties")

	return cleaned
}

// removedKeywords are validation keywords unsupported by the backend's
// structured-output schema dialect. "enum" is kept: the backend supports it
// and it carries the closed status values.
var removedKeywords = []string{
	"title",
	"description",
	"minLength",
	"maxLength",
	"minItems",
	"maxItems",
	"minimum",
	"maximum",
	"exclusiveMinimum",
	"exclusiveMaximum",
	"pattern",
	"format",
}

func cleanNode(node map[string]interface{}) map[string]interface{} {
	cleaned := make(map[string]interface{}, len(node))
	for k, v := range node {
		cleaned[k] = v
	}

	for _, keyword := range removedKeywords {
		delete(cleaned, keyword)
	}

	// Free-form object types (additionalProperties) are not supported: the
	// backend requires object schemas to carry concrete properties. Callers
	// declaring map-like fields must provide example properties themselves.
	delete(cleaned, "additionalProperties")

	if props, ok := cleaned["properties"].(map[string]interface{}); ok {
		cleanedProps := make(map[string]interface{}, len(props))
		for name, prop := range props {
			if propMap, ok := prop.(map[string]interface{}); ok {
				cleanedProps[name] = cleanNode(propMap)
			} else {
				cleanedProps[name] = prop
			}
		}
		cleaned["properties"] = cleanedProps
	}

	if items, ok := cleaned["items"].(map[string]interface{}); ok {
		cleaned["items"] = cleanNode(items)
	}

	for _, keyword := range []string{"anyOf", "oneOf", "allOf"} {
		variants, ok := cleaned[keyword].([]interface{})
		if !ok {
			continue
		}
		cleanedVariants := make([]interface{}, len(variants))
		for i, variant := range variants {
			if variantMap, ok := variant.(map[string]interface{}); ok {
				cleanedVariants[i] = cleanNode(variantMap)
			} else {
				cleanedVariants[i] = variant
			}
		}
		cleaned[keyword] = cleanedVariants
	}

	return cleaned
}
