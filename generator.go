package dialogen

import (
	"context"
	"fmt"
	"strings"

	"github.com/robbyriverside/dialogen/llm"
	"github.com/robbyriverside/dialogen/logs"
	"github.com/robbyriverside/dialogen/utils"
)

// Generator turns (category, scenario, flow) triples into dialogues with two
// completion calls: one for the user questions, one for the answers.
type Generator struct {
	completer      llm.Completer
	dataset        *Dataset
	queryPrompt    *PromptTemplate
	responsePrompt *PromptTemplate
	settings       GenerationConfig
}

// NewGenerator wires a completer to the two prompt templates. dataset supplies
// flow definitions for GenerateDialogue and may be nil.
func NewGenerator(completer llm.Completer, dataset *Dataset, queryPrompt, responsePrompt *PromptTemplate, settings GenerationConfig) *Generator {
	return &Generator{
		completer:      completer,
		dataset:        dataset,
		queryPrompt:    queryPrompt,
		responsePrompt: responsePrompt,
		settings:       settings,
	}
}

// FormatFlowSteps renders a flow as "<flow>: s1 --> s2". Unknown flows give "".
func FormatFlowSteps(flowType string, dataset *Dataset) string {
	if dataset == nil {
		return ""
	}
	flow, ok := dataset.Flow(flowType)
	if !ok {
		return ""
	}
	return flowType + ": " + strings.Join(flow.Steps, " --> ")
}

// GenerateQueries asks the model for the user side of the dialogue. An
// unparsable reply falls back to placeholder questions; API errors propagate.
func (g *Generator) GenerateQueries(ctx context.Context, category, scenario, flowSteps string) ([]string, error) {
	promptContext := category + " - " + scenario
	prompt, err := g.queryPrompt.Render(map[string]any{
		"context":          promptContext,
		"info_flows_steps": flowSteps,
	})
	if err != nil {
		return nil, err
	}

	logs.Infof("Generating query questions: %s", promptContext)
	reply, err := g.completer.Complete(ctx, llm.UserPrompt(llm.StageQuery, prompt, g.settings.MaxTokensQuery, g.settings.TemperatureQuery))
	if err != nil {
		return nil, err
	}

	queries, err := ParseTurns(reply)
	if err != nil {
		logs.Warnf("Failed to generate queries for %s: %v", promptContext, err)
		return placeholders("Question", scenario, g.settings.PlaceholderQueries), nil
	}
	return queries, nil
}

// GenerateResponses asks the model to answer queries in order. An unparsable
// reply falls back to one placeholder answer per query.
func (g *Generator) GenerateResponses(ctx context.Context, category, scenario string, queries []string) ([]string, error) {
	promptContext := category + " - " + scenario + "\n\nQuestions:\n" + utils.Numbered("Question", queries)
	prompt, err := g.responsePrompt.Render(map[string]any{"context": promptContext})
	if err != nil {
		return nil, err
	}

	logs.Infof("Generating responses: %s - %s", category, scenario)
	reply, err := g.completer.Complete(ctx, llm.UserPrompt(llm.StageResponse, prompt, g.settings.MaxTokensResponse, g.settings.TemperatureResponse))
	if err != nil {
		return nil, err
	}

	responses, err := ParseTurns(reply)
	if err != nil {
		logs.Warnf("Failed to generate responses for %s - %s: %v", category, scenario, err)
		return placeholders("Response", scenario, len(queries)), nil
	}
	return responses, nil
}

// GenerateDialogue runs both stages and assembles the record, looking the flow
// up in the generator's dataset.
func (g *Generator) GenerateDialogue(ctx context.Context, category, scenario, flowType string) (Dialogue, error) {
	return g.generateDialogue(ctx, g.dataset, category, scenario, flowType)
}

func (g *Generator) generateDialogue(ctx context.Context, dataset *Dataset, category, scenario, flowType string) (Dialogue, error) {
	logs.Infof("Starting dialogue generation: %s - %s", category, scenario)

	flowSteps := FormatFlowSteps(flowType, dataset)
	if flowSteps != "" {
		logs.Debugf("Using flow type: %s", flowType)
	}

	queries, err := g.GenerateQueries(ctx, category, scenario, flowSteps)
	if err != nil {
		return Dialogue{}, fmt.Errorf("generate queries: %w", err)
	}
	logs.Infof("Query generation completed: %d questions", len(queries))

	responses, err := g.GenerateResponses(ctx, category, scenario, queries)
	if err != nil {
		return Dialogue{}, fmt.Errorf("generate responses: %w", err)
	}
	logs.Infof("Response generation completed: %d responses", len(responses))

	dialogue := NewDialogue(category, scenario, queries, responses)
	logs.Infof("Dialogue generation completed: %d turns", len(dialogue.Turns))
	return dialogue, nil
}

func placeholders(kind, scenario string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d about %s", kind, i+1, scenario)
	}
	return out
}
