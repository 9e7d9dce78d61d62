package dialogen

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// TestScenario is the single scenario used by the test and check commands.
type TestScenario struct {
	Category string
	Scenario string
	FlowType string
}

func DefaultTestScenario() TestScenario {
	return TestScenario{
		Category: "Problem-solving Interaction",
		Scenario: "Technical Support",
		FlowType: "problem_diagnosis_to_solution",
	}
}

type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

type CheckReport struct {
	Results []CheckResult
}

func (r *CheckReport) add(name string, err error, detail string) {
	res := CheckResult{Name: name, Passed: err == nil, Detail: detail}
	if err != nil {
		res.Detail = err.Error()
	}
	r.Results = append(r.Results, res)
}

func (r *CheckReport) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

func (r *CheckReport) Total() int { return len(r.Results) }

func (r *CheckReport) OK() bool { return r.Passed() == r.Total() }

func (r *CheckReport) Summary() string {
	return fmt.Sprintf("Passed: %d/%d", r.Passed(), r.Total())
}

type CheckOptions struct {
	MockPath string
	// Generate runs one full dialogue through the configured backend.
	Generate bool
	Scenario TestScenario
	// Writer receives the generated dialogue when set.
	Writer *JSONFileWriter
}

// RunChecks validates the configuration, the data file and both prompt
// templates, and optionally generates one dialogue end to end.
func RunChecks(ctx context.Context, cfg *Config, opts CheckOptions) *CheckReport {
	report := &CheckReport{}

	requireKey := opts.Generate && opts.MockPath == ""
	report.add("configuration", cfg.Validate(requireKey), "")

	var dataset *Dataset
	source, err := os.ReadFile(cfg.Paths.Data)
	if err != nil {
		report.add("data file", fmt.Errorf("cannot read data file %s: %w", cfg.Paths.Data, err), "")
	} else {
		lint := LintDataset(source)
		if lint.Valid {
			dataset = decodeDataset(source)
			report.add("data file", nil, fmt.Sprintf("%d categories, %d flow definitions, %d scenarios, %d warning(s)",
				len(dataset.Categories), len(dataset.Flows), dataset.ScenarioCount(), len(lint.Warnings)))
		} else {
			report.add("data file", fmt.Errorf("%w: %v", ErrInvalidDataset, lint.Errors), "")
		}
	}

	queryPrompt, qerr := LoadPromptTemplate(cfg.Paths.QueryPrompt)
	report.add("query prompt", qerr, cfg.Paths.QueryPrompt)
	responsePrompt, rerr := LoadPromptTemplate(cfg.Paths.ResponsePrompt)
	report.add("response prompt", rerr, cfg.Paths.ResponsePrompt)

	if !opts.Generate {
		return report
	}
	if dataset == nil || qerr != nil || rerr != nil {
		report.add("dialogue generation", errors.New("skipped: earlier checks failed"), "")
		return report
	}
	completer, err := NewCompleter(cfg, opts.MockPath)
	if err != nil {
		report.add("dialogue generation", err, "")
		return report
	}
	gen := NewGenerator(completer, dataset, queryPrompt, responsePrompt, cfg.Generation)
	sc := opts.Scenario
	dialogue, err := gen.GenerateDialogue(ctx, sc.Category, sc.Scenario, sc.FlowType)
	if err != nil {
		report.add("dialogue generation", err, "")
		return report
	}
	if opts.Writer != nil {
		if err := opts.Writer.WriteDialogue(dialogue); err != nil {
			report.add("dialogue generation", err, "")
			return report
		}
	}
	report.add("dialogue generation", nil, fmt.Sprintf("%s: %d turns, %d queries, %d responses",
		dialogue.Category, len(dialogue.Turns), len(dialogue.Queries), len(dialogue.Responses)))
	return report
}
