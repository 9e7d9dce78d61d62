package dialogen

import (
	"context"
	"fmt"

	"github.com/robbyriverside/dialogen/logs"
)

// ScenarioFailure records why one scenario produced no saved dialogue.
type ScenarioFailure struct {
	Category string
	Scenario string
	Err      error
}

func (f ScenarioFailure) Error() string {
	return fmt.Sprintf("%s - %s: %v", f.Category, f.Scenario, f.Err)
}

func (f ScenarioFailure) Unwrap() error { return f.Err }

// BatchReport summarizes a batch run.
type BatchReport struct {
	Dialogues []Dialogue
	Failures  []ScenarioFailure
	// Attempted counts the scenarios the run started.
	Attempted int
}

// BatchGenerate visits every scenario of every category in file order. After
// each dialogue the full list is handed to writer, so the output on disk is
// always a complete array. Scenario failures are logged and skipped; a
// cancelled context stops the run and is returned with the partial report.
func (g *Generator) BatchGenerate(ctx context.Context, dataset *Dataset, writer DialogueWriter) (*BatchReport, error) {
	report := &BatchReport{Dialogues: []Dialogue{}}
	for _, category := range dataset.Categories {
		logs.Infof("Processing category: %s (%d scenarios)", category.Name, len(category.Scenarios))
		for i, scenario := range category.Scenarios {
			if err := ctx.Err(); err != nil {
				logs.Warnf("Batch stopped before %s - %s: %v", category.Name, scenario, err)
				return report, err
			}
			report.Attempted++
			logs.Infof("Processing %s: scenario %d/%d (%s)", category.Name, i+1, len(category.Scenarios), scenario)

			dialogue, err := g.generateDialogue(ctx, dataset, category.Name, scenario, category.FlowType)
			if err != nil {
				if ctx.Err() != nil {
					logs.Warnf("Batch stopped during %s - %s: %v", category.Name, scenario, err)
					return report, ctx.Err()
				}
				logs.Errorf("Failed to generate dialogue %s - %s: %v", category.Name, scenario, err)
				report.Failures = append(report.Failures, ScenarioFailure{Category: category.Name, Scenario: scenario, Err: err})
				continue
			}

			report.Dialogues = append(report.Dialogues, dialogue)
			if err := writer.WriteDialogues(report.Dialogues); err != nil {
				logs.Errorf("Failed to save dialogues after %s - %s: %v", category.Name, scenario, err)
				report.Failures = append(report.Failures, ScenarioFailure{Category: category.Name, Scenario: scenario, Err: err})
				continue
			}
			logs.Infof("Saved %d dialogues", len(report.Dialogues))
		}
	}
	logs.Infof("Batch generation completed, total generated: %d dialogues", len(report.Dialogues))
	return report, nil
}
