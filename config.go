package dialogen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// APIConfig selects the chat-completion endpoint. Environment variables win over the file.
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL, overwrite"`
	APIKey  string `yaml:"api_key" env:"OPENAI_API_KEY, overwrite"`
	Model   string `yaml:"model" env:"OPENAI_MODEL, overwrite"`
	OrgID   string `yaml:"org_id" env:"OPENAI_ORG, overwrite"`
}

type PathsConfig struct {
	Data           string `yaml:"data"`
	QueryPrompt    string `yaml:"query_prompt"`
	ResponsePrompt string `yaml:"response_prompt"`
	OutputFile     string `yaml:"output_file"`
	TestOutput     string `yaml:"test_output"`
}

// Delay is a wait between attempts. YAML accepts a duration string ("1s",
// "250ms") or a bare number of seconds.
type Delay time.Duration

func (d Delay) Duration() time.Duration { return time.Duration(d) }

func (d *Delay) UnmarshalYAML(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!int", "!!float":
		var secs float64
		if err := node.Decode(&secs); err != nil {
			return err
		}
		*d = Delay(secs * float64(time.Second))
		return nil
	}
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("line %d: invalid delay %q: %w", node.Line, text, err)
	}
	*d = Delay(parsed)
	return nil
}

func (d Delay) MarshalYAML() (any, error) {
	return d.Duration().String(), nil
}

type GenerationConfig struct {
	MaxTokensQuery      int     `yaml:"max_tokens_query"`
	MaxTokensResponse   int     `yaml:"max_tokens_response"`
	TemperatureQuery    float32 `yaml:"temperature_query"`
	TemperatureResponse float32 `yaml:"temperature_response"`
	// MaxRetries is the total number of attempts per API call.
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay Delay `yaml:"retry_delay"`
	// PlaceholderQueries is how many stand-in queries replace an unparsable reply.
	PlaceholderQueries int `yaml:"placeholder_queries"`
}

// OutputOptions controls JSON serialization of generated dialogues.
type OutputOptions struct {
	EnsureASCII bool `yaml:"ensure_ascii"`
	// Indent is the number of spaces per level; 0 writes compact JSON.
	Indent int `yaml:"indent"`
}

type Config struct {
	API        APIConfig        `yaml:"api"`
	Paths      PathsConfig      `yaml:"paths"`
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputOptions    `yaml:"output"`
}

func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:7813/v1",
			Model:   "Qwen-2.5-72B-Instruct",
		},
		Paths: PathsConfig{
			Data:           "data/dummy_data.json",
			QueryPrompt:    "prompt/query_template_en.txt",
			ResponsePrompt: "prompt/response_template_en.txt",
			OutputFile:     "generated_dialogues.json",
			TestOutput:     "test_dialogue.json",
		},
		Generation: GenerationConfig{
			MaxTokensQuery:      800,
			MaxTokensResponse:   1200,
			TemperatureQuery:    0.8,
			TemperatureResponse: 0.7,
			MaxRetries:          3,
			RetryDelay:          Delay(time.Second),
			PlaceholderQueries:  4,
		},
		Output: OutputOptions{
			EnsureASCII: false,
			Indent:      2,
		},
	}
}

// LoadConfig layers the YAML file at path (optional when empty) and the
// process environment on top of DefaultConfig.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	return loadConfig(ctx, path, envconfig.OsLookuper())
}

func loadConfig(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg.API,
		Lookuper: lookuper,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot apply environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and required fields. The API key is only required
// when requireKey is set, so mock runs work without credentials.
func (c *Config) Validate(requireKey bool) error {
	var problems []string
	if requireKey && c.API.APIKey == "" {
		problems = append(problems, "api.api_key is empty (set OPENAI_API_KEY or api.api_key)")
	}
	if requireKey && c.API.Model == "" {
		problems = append(problems, "api.model is empty")
	}
	paths := []struct{ name, value string }{
		{"paths.data", c.Paths.Data},
		{"paths.query_prompt", c.Paths.QueryPrompt},
		{"paths.response_prompt", c.Paths.ResponsePrompt},
		{"paths.output_file", c.Paths.OutputFile},
		{"paths.test_output", c.Paths.TestOutput},
	}
	for _, p := range paths {
		if p.value == "" {
			problems = append(problems, p.name+" is empty")
		}
	}
	g := c.Generation
	if g.MaxTokensQuery <= 0 || g.MaxTokensResponse <= 0 {
		problems = append(problems, "generation token limits must be positive")
	}
	if g.TemperatureQuery < 0 || g.TemperatureQuery > 2 || g.TemperatureResponse < 0 || g.TemperatureResponse > 2 {
		problems = append(problems, "generation temperatures must be within [0, 2]")
	}
	if g.MaxRetries < 1 {
		problems = append(problems, "generation.max_retries must be at least 1")
	}
	if g.RetryDelay < 0 {
		problems = append(problems, "generation.retry_delay must not be negative")
	}
	if g.PlaceholderQueries < 0 {
		problems = append(problems, "generation.placeholder_queries must not be negative")
	}
	if c.Output.Indent < 0 {
		problems = append(problems, "output.indent must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if n := len(c.API.APIKey); n > 0 {
		if n > 6 {
			c.API.APIKey = c.API.APIKey[:3] + "..." + c.API.APIKey[n-2:]
		} else {
			c.API.APIKey = "***"
		}
	}
	return c
}

func (c Config) String() string {
	b, _ := yaml.Marshal(c.Redacted())
	return string(b)
}
