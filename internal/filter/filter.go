package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/studiowebux/apiconsole/internal/types"
)

// Query applies a JMESPath expression to v. v is converted to its JSON
// shape first, so expressions use the JSON field names.
// An empty expression returns v unchanged.
func Query(v any, expression string) (any, error) {
	if strings.TrimSpace(expression) == "" {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// ApplyJSON applies a JMESPath expression to a JSON document and returns
// the indented JSON result
func ApplyJSON(body string, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	result, err := Query(data, expression)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// MatchResources keeps the resources whose name, endpoint, method or
// description contains every whitespace-separated term (case-insensitive)
func MatchResources(items []types.ApiResource, search string) []types.ApiResource {
	terms := strings.Fields(strings.ToLower(search))
	if len(terms) == 0 {
		return items
	}

	var matched []types.ApiResource
	for _, r := range items {
		haystack := strings.ToLower(strings.Join([]string{
			r.Name, r.Endpoint, string(r.Method), r.Description,
		}, " "))
		if containsAll(haystack, terms) {
			matched = append(matched, r)
		}
	}
	return matched
}

func containsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
