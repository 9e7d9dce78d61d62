package dialogen

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robbyriverside/dialogen/logs"
	"github.com/tidwall/gjson"
)

var ErrInvalidDataset = errors.New("invalid dataset")

// Category groups scenarios that share one conversational flow.
type Category struct {
	Name      string   `json:"name"`
	Scenarios []string `json:"scenarios"`
	FlowType  string   `json:"flow_type"`
}

// FlowDefinition is a named, ordered list of abstract conversation steps.
type FlowDefinition struct {
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

// Dataset keeps categories and flows in file declaration order.
type Dataset struct {
	Categories []Category
	Flows      []FlowDefinition
}

// Flow looks up a flow definition by name.
func (d *Dataset) Flow(name string) (FlowDefinition, bool) {
	for _, f := range d.Flows {
		if f.Name == name {
			return f, true
		}
	}
	return FlowDefinition{}, false
}

// Category looks up a category by name.
func (d *Dataset) Category(name string) (Category, bool) {
	for _, c := range d.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// ScenarioCount is the number of (category, scenario) pairs a batch run visits.
func (d *Dataset) ScenarioCount() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Scenarios)
	}
	return n
}

// LoadDataset reads and lints a data file. Lint errors reject the file,
// warnings are logged.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read data file %s: %w", path, err)
	}
	return ParseDataset(data)
}

// ParseDataset lints and decodes data file contents.
func ParseDataset(source []byte) (*Dataset, error) {
	result := LintDataset(source)
	for _, w := range result.Warnings {
		logs.Warn(w)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDataset, strings.Join(result.Errors, "; "))
	}
	return decodeDataset(source), nil
}

// decodeDataset assumes source already passed LintDataset.
func decodeDataset(source []byte) *Dataset {
	root := gjson.ParseBytes(source)
	ds := &Dataset{}
	root.Get("categories").ForEach(func(name, value gjson.Result) bool {
		c := Category{
			Name:      name.String(),
			FlowType:  value.Get("flow_type").String(),
			Scenarios: []string{},
		}
		for _, s := range value.Get("scenarios").Array() {
			c.Scenarios = append(c.Scenarios, s.String())
		}
		ds.Categories = append(ds.Categories, c)
		return true
	})
	root.Get("flow_definitions").ForEach(func(name, value gjson.Result) bool {
		f := FlowDefinition{Name: name.String(), Steps: []string{}}
		for _, s := range value.Get("steps").Array() {
			f.Steps = append(f.Steps, s.String())
		}
		ds.Flows = append(ds.Flows, f)
		return true
	})
	return ds
}
