package dialogen

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

//go:embed data_schema.json
var dataSchemaJSON string

var (
	dataSchema     *jsonschema.Schema
	dataSchemaErr  error
	dataSchemaOnce sync.Once
)

type LintResult struct {
	Errors   []string
	Warnings []string
	Valid    bool
	Summary  string
}

// LintDataset checks a data file for structural problems (errors) and
// suspicious but usable content (warnings). Schema validation only runs
// once the structural checks pass.
func LintDataset(source []byte) LintResult {
	var errors []string
	var warnings []string

	if !gjson.ValidBytes(source) {
		return LintResult{
			Errors:  []string{"Problem: JSON parsing error. The data file is not valid JSON."},
			Valid:   false,
			Summary: "Problem: Failed to parse JSON. Data file is invalid.",
		}
	}
	root := gjson.ParseBytes(source)
	if !root.IsObject() {
		return LintResult{
			Errors:  []string{"Problem: The data file root must be an object with 'categories' and 'flow_definitions'."},
			Valid:   false,
			Summary: "Problem: Data file root has invalid structure.",
		}
	}

	categories := root.Get("categories")
	flows := root.Get("flow_definitions")
	if !categories.Exists() {
		errors = append(errors, "Problem: The 'categories' section is missing. Please add a 'categories' object.")
	} else if !categories.IsObject() {
		errors = append(errors, "Problem: The 'categories' section must be an object keyed by category name.")
	}
	if !flows.Exists() {
		errors = append(errors, "Problem: The 'flow_definitions' section is missing. Please add a 'flow_definitions' object.")
	} else if !flows.IsObject() {
		errors = append(errors, "Problem: The 'flow_definitions' section must be an object keyed by flow name.")
	}
	if len(errors) > 0 {
		return LintResult{
			Errors:  errors,
			Valid:   false,
			Summary: fmt.Sprintf("Problem: Data file has %d structural error(s).", len(errors)),
		}
	}

	// Collect flows first so categories can be checked against them
	definedFlows := map[string]bool{}
	var flowOrder []string
	flows.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if definedFlows[name] {
			errors = append(errors, fmt.Sprintf("Problem: Duplicate flow name '%s'. Flow names must be unique.", name))
			return true
		}
		definedFlows[name] = true
		flowOrder = append(flowOrder, name)
		steps := value.Get("steps")
		if steps.IsArray() && len(steps.Array()) == 0 {
			warnings = append(warnings, fmt.Sprintf("Reminder: Flow '%s' has no steps. Its prompt will carry an empty step list.", name))
		}
		return true
	})

	usedFlows := map[string]bool{}
	seenCategories := map[string]bool{}
	categories.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if seenCategories[name] {
			errors = append(errors, fmt.Sprintf("Problem: Duplicate category name '%s'. Category names must be unique.", name))
			return true
		}
		seenCategories[name] = true

		flowType := value.Get("flow_type")
		if flowType.Type == gjson.String {
			usedFlows[flowType.String()] = true
			if !definedFlows[flowType.String()] {
				errors = append(errors, fmt.Sprintf("Problem: Category '%s' uses unknown flow_type '%s'. Please define it under 'flow_definitions'.", name, flowType.String()))
			}
		}

		scenarios := value.Get("scenarios")
		if !scenarios.IsArray() {
			return true
		}
		list := scenarios.Array()
		if len(list) == 0 {
			warnings = append(warnings, fmt.Sprintf("Reminder: Category '%s' has no scenarios and will be skipped.", name))
		}
		seen := map[string]bool{}
		for i, s := range list {
			if s.Type == gjson.String && strings.TrimSpace(s.String()) == "" {
				warnings = append(warnings, fmt.Sprintf("Reminder: Category '%s' scenario %d is empty. Its dialogue will have no topic.", name, i+1))
			}
			if seen[s.String()] {
				warnings = append(warnings, fmt.Sprintf("Reminder: Category '%s' lists scenario '%s' more than once.", name, s.String()))
			}
			seen[s.String()] = true
		}
		return true
	})

	for _, name := range flowOrder {
		if !usedFlows[name] {
			warnings = append(warnings, fmt.Sprintf("Reminder: Flow '%s' is defined but no category uses it.", name))
		}
	}

	if len(errors) == 0 {
		errors = append(errors, validateAgainstSchema(source)...)
	}

	summary := fmt.Sprintf("Linting complete. Found %d error(s), %d warning(s).", len(errors), len(warnings))
	return LintResult{
		Errors:   errors,
		Warnings: warnings,
		Valid:    len(errors) == 0,
		Summary:  summary,
	}
}

func compiledDataSchema() (*jsonschema.Schema, error) {
	dataSchemaOnce.Do(func() {
		dataSchema, dataSchemaErr = jsonschema.CompileString("data_schema.json", dataSchemaJSON)
	})
	return dataSchema, dataSchemaErr
}

// validateAgainstSchema validates the source against the embedded data_schema.json.
func validateAgainstSchema(source []byte) []string {
	schema, err := compiledDataSchema()
	if err != nil {
		return []string{fmt.Sprintf("Problem: Failed to compile data schema: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(source, &doc); err != nil {
		return []string{fmt.Sprintf("Problem: The data file is invalid. : %v", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return []string{fmt.Sprintf("Problem: The data file is invalid. : %v", err)}
	}
	return nil
}
