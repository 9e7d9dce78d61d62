package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/robbyriverside/dialogen"
	"github.com/robbyriverside/dialogen/logs"
)

type GlobalOptions struct {
	Config  string `short:"c" long:"config" description:"YAML config file (defaults are used when omitted)"`
	Mock    string `short:"m" long:"mock" description:"Path to mock response YAML file"`
	Verbose bool   `short:"v" long:"verbose" description:"Verbose messages"`
}

var opts GlobalOptions

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F780FF"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	parser.AddCommand("run", "Generate all dialogues", "Generate one dialogue per scenario in the data file and save them as a JSON array", &RunCommand{ctx: ctx})
	parser.AddCommand("test", "Generate one dialogue", "Generate a single dialogue for a fixed scenario, print it and save it", &TestCommand{ctx: ctx})
	parser.AddCommand("check", "Check the setup", "Show the config, lint the data file, load the prompts and optionally generate one dialogue", &CheckCommand{ctx: ctx})

	// flags.Default prints parse and command errors itself
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		logs.Sync()
		os.Exit(1)
	}
	if parser.Active == nil {
		if err := (&RunCommand{ctx: ctx}).Execute(nil); err != nil {
			fail(err)
		}
	}
	logs.Sync()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	logs.Sync()
	os.Exit(1)
}

func loadConfig(ctx context.Context) (*dialogen.Config, error) {
	logs.Options.Verbose = opts.Verbose
	cfg, err := dialogen.LoadConfig(ctx, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("[CONFIG ERROR] %w", err)
	}
	return cfg, nil
}

type RunCommand struct {
	Output string `short:"o" long:"output" description:"Override paths.output_file"`
	ctx    context.Context
}

func (r *RunCommand) Execute(args []string) error {
	cfg, err := loadConfig(r.ctx)
	if err != nil {
		return err
	}
	if r.Output != "" {
		cfg.Paths.OutputFile = r.Output
	}
	setup, err := dialogen.NewSetup(cfg, opts.Mock)
	if err != nil {
		return fmt.Errorf("[LOAD ERROR] %w", err)
	}
	fmt.Println(titleStyle.Render("=== Skeleton-Guided Multi-turn Dialogue Generation ==="))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("%d categories, %d scenarios", len(setup.Dataset.Categories), setup.Dataset.ScenarioCount())))

	writer := dialogen.NewJSONFileWriter(cfg.Paths.OutputFile, cfg.Output)
	report, err := setup.Generator.BatchGenerate(r.ctx, setup.Dataset, writer)
	for _, f := range report.Failures {
		fmt.Println(errorStyle.Render("✗ " + f.Error()))
	}
	if err != nil {
		return fmt.Errorf("generation stopped after %d dialogue(s): %w", len(report.Dialogues), err)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Generation completed! %d of %d dialogues generated", len(report.Dialogues), report.Attempted)))
	fmt.Println(mutedStyle.Render("Output file: " + cfg.Paths.OutputFile))
	return nil
}

type TestCommand struct {
	Category string `long:"category" default:"Problem-solving Interaction" description:"Category name"`
	Scenario string `long:"scenario" default:"Technical Support" description:"Scenario name"`
	FlowType string `long:"flow" default:"problem_diagnosis_to_solution" description:"Flow definition name"`
	Output   string `short:"o" long:"output" description:"Override paths.test_output"`
	ctx      context.Context
}

func (t *TestCommand) Execute(args []string) error {
	cfg, err := loadConfig(t.ctx)
	if err != nil {
		return err
	}
	if t.Output != "" {
		cfg.Paths.TestOutput = t.Output
	}
	setup, err := dialogen.NewSetup(cfg, opts.Mock)
	if err != nil {
		return fmt.Errorf("[LOAD ERROR] %w", err)
	}
	fmt.Println(titleStyle.Render("=== Test Single Dialogue Generation ==="))

	dialogue, err := setup.Generator.GenerateDialogue(t.ctx, t.Category, t.Scenario, t.FlowType)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(dialogue, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println("Generated dialogue:")
	fmt.Println(string(pretty))

	if err := dialogen.NewJSONFileWriter(cfg.Paths.TestOutput, cfg.Output).WriteDialogue(dialogue); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Test dialogue saved to " + cfg.Paths.TestOutput))
	return nil
}

type CheckCommand struct {
	Generate bool   `short:"g" long:"generate" description:"Also generate one dialogue for the test scenario"`
	Output   string `short:"o" long:"output" description:"Save the generated dialogue to this file"`
	ctx      context.Context
}

func (c *CheckCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.ctx)
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render("=== Configuration ==="))
	fmt.Print(cfg.String())

	checkOpts := dialogen.CheckOptions{
		MockPath: opts.Mock,
		Generate: c.Generate,
		Scenario: dialogen.DefaultTestScenario(),
	}
	if c.Output != "" {
		checkOpts.Writer = dialogen.NewJSONFileWriter(c.Output, cfg.Output)
	}
	report := dialogen.RunChecks(c.ctx, cfg, checkOpts)

	fmt.Println(titleStyle.Render("=== Checks ==="))
	for _, res := range report.Results {
		if res.Passed {
			fmt.Println(successStyle.Render("✓ "+res.Name) + " " + mutedStyle.Render(res.Detail))
		} else {
			fmt.Println(errorStyle.Render("✗ "+res.Name) + " " + res.Detail)
		}
	}
	fmt.Println(report.Summary())
	if !report.OK() {
		return fmt.Errorf("%d check(s) failed", report.Total()-report.Passed())
	}
	return nil
}
