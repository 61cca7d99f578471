package article

import (
	"encoding/json"
	"strings"
)

// payload is the JSON object the article prompt asks for.
type payload struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Tags    tagList `json:"tags"`
}

// tagList accepts either a JSON array of strings or a single
// comma-separated string.
type tagList []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *tagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*t = strings.Split(single, ",")
	return nil
}
