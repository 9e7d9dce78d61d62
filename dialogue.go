package dialogen

// Turn is one question/answer exchange.
type Turn struct {
	Human     string `json:"human"`
	Assistant string `json:"assistant"`
}

// Dialogue is one generated conversation. Category holds "<category> - <scenario>".
type Dialogue struct {
	Category  string   `json:"category"`
	Turns     []Turn   `json:"turns"`
	Queries   []string `json:"queries"`
	Responses []string `json:"responses"`
}

// ZipTurns pairs queries with responses, truncating to the shorter list.
func ZipTurns(queries, responses []string) []Turn {
	n := min(len(queries), len(responses))
	turns := make([]Turn, 0, n)
	for i := 0; i < n; i++ {
		turns = append(turns, Turn{Human: queries[i], Assistant: responses[i]})
	}
	return turns
}

// NewDialogue assembles a dialogue record. Nil slices become empty so the JSON
// form always carries arrays.
func NewDialogue(category, scenario string, queries, responses []string) Dialogue {
	if queries == nil {
		queries = []string{}
	}
	if responses == nil {
		responses = []string{}
	}
	return Dialogue{
		Category:  category + " - " + scenario,
		Turns:     ZipTurns(queries, responses),
		Queries:   queries,
		Responses: responses,
	}
}
