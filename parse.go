package dialogen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidResponse = errors.New("invalid model response")

// StripFence removes a surrounding markdown code fence, tagged ```json or bare.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json") && strings.HasSuffix(s, "```") && len(s) >= len("```json")+len("```"):
		s = s[len("```json") : len(s)-len("```")]
	case strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 2*len("```"):
		s = s[len("```") : len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// ParseTurns reads the "turns" string array out of a model reply. The reply
// must be a JSON object; a missing or null "turns" gives an empty list.
func ParseTurns(reply string) ([]string, error) {
	body := StripFence(reply)
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	// null decodes into a nil map without error
	if payload == nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object", ErrInvalidResponse)
	}
	raw, ok := payload["turns"]
	if !ok {
		return []string{}, nil
	}
	var turns []string
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, fmt.Errorf("%w: turns: %v", ErrInvalidResponse, err)
	}
	if turns == nil {
		return []string{}, nil
	}
	return turns, nil
}
