package dialogen

import (
	"github.com/robbyriverside/dialogen/llm"
	"github.com/robbyriverside/dialogen/logs"
)

// NewCompleter returns the OpenAI backend for cfg, or the mock backend when
// mockPath is set, wrapped in the configured retry policy.
func NewCompleter(cfg *Config, mockPath string) (llm.Completer, error) {
	var backend llm.Completer
	if mockPath != "" {
		mock, err := llm.LoadMock(mockPath)
		if err != nil {
			return nil, err
		}
		logs.Infof("Using mock responses from %s", mockPath)
		backend = mock
	} else {
		client, err := llm.NewOpenAI(llm.OpenAIConfig{
			BaseURL: cfg.API.BaseURL,
			APIKey:  cfg.API.APIKey,
			OrgID:   cfg.API.OrgID,
			Model:   cfg.API.Model,
		})
		if err != nil {
			return nil, err
		}
		logs.Infof("Using model %s at %s", client.Model(), cfg.API.BaseURL)
		backend = client
	}
	return llm.WithRetry(backend, llm.RetryPolicy{
		MaxAttempts: cfg.Generation.MaxRetries,
		Delay:       cfg.Generation.RetryDelay.Duration(),
	}), nil
}

// Setup is everything a generation run needs, loaded from one config.
type Setup struct {
	Config    *Config
	Dataset   *Dataset
	Generator *Generator
}

// NewSetup loads the dataset and both prompts named by cfg and builds a Generator.
func NewSetup(cfg *Config, mockPath string) (*Setup, error) {
	if err := cfg.Validate(mockPath == ""); err != nil {
		return nil, err
	}
	dataset, err := LoadDataset(cfg.Paths.Data)
	if err != nil {
		return nil, err
	}
	queryPrompt, err := LoadPromptTemplate(cfg.Paths.QueryPrompt)
	if err != nil {
		return nil, err
	}
	responsePrompt, err := LoadPromptTemplate(cfg.Paths.ResponsePrompt)
	if err != nil {
		return nil, err
	}
	completer, err := NewCompleter(cfg, mockPath)
	if err != nil {
		return nil, err
	}
	return &Setup{
		Config:    cfg,
		Dataset:   dataset,
		Generator: NewGenerator(completer, dataset, queryPrompt, responsePrompt, cfg.Generation),
	}, nil
}
