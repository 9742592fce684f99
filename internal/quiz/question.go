// Package quiz loads quiz manifests and documents and normalizes their
// questions into one canonical shape.
package quiz

import (
	"encoding/json"
	"strconv"
)

// Option is one answer choice of a canonical question.
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// UID identifies a question across quiz files. Sources write it as a string
// or a number; both decode to the same text.
type UID string

func (u *UID) UnmarshalJSON(b []byte) error {
	*u = UID(textOf(b))
	return nil
}

// Question is a normalized question. Text is always set; Options is nil when
// the source question had no options at all, which renderers treat as "no
// choices". Extra carries every other source field (uid, explanation,
// question, ...) unchanged.
type Question struct {
	Text        string
	Options     []Option
	UID         UID
	Explanation string
	Extra       map[string]json.RawMessage
}

// HasOptions reports whether the question offers choices.
func (q Question) HasOptions() bool {
	return q.Options != nil
}

// CorrectIndexes returns the positions of all options marked correct.
func (q Question) CorrectIndexes() []int {
	var idx []int
	for i, o := range q.Options {
		if o.Correct {
			idx = append(idx, i)
		}
	}
	return idx
}

// IsCorrect reports whether choosing option i answers the question.
func (q Question) IsCorrect(i int) bool {
	return i >= 0 && i < len(q.Options) && q.Options[i].Correct
}

// OptionLabel is the display label of option i: A to Z, then numbers.
func OptionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

// MarshalJSON writes the passthrough fields merged with the canonical
// text and options.
func (q Question) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(q.Extra)+2)
	for k, v := range q.Extra {
		out[k] = v
	}
	out["text"] = q.Text
	if q.Options != nil {
		out["options"] = q.Options
	}
	return json.Marshal(out)
}

// Document is one quiz file after normalization.
type Document struct {
	// Questions is nil when the source document had no questions field.
	Questions []Question
	// Meta holds every top-level field other than questions.
	Meta map[string]json.RawMessage
}

// Title returns the document's own title metadata, if it carries one.
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	if raw, ok := d.Meta["title"]; ok && kindOf(raw) == kindString {
		return textOf(raw)
	}
	return ""
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Meta)+1)
	for k, v := range d.Meta {
		out[k] = v
	}
	if d.Questions != nil {
		out["questions"] = d.Questions
	}
	return json.Marshal(out)
}

// ManifestEntry describes one quiz file listed in the manifest. Entries are
// used as published; no normalization is applied to them.
type ManifestEntry struct {
	Filename string
	Title    string
	Extra    map[string]json.RawMessage
}

// DisplayTitle is the manifest title, or a title derived from the filename
// when the manifest has none.
func (e ManifestEntry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return FormatTitle(e.Filename)
}

func (e *ManifestEntry) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if raw, ok := fields["filename"]; ok {
		if err := json.Unmarshal(raw, &e.Filename); err != nil {
			return err
		}
	}
	if raw, ok := fields["title"]; ok && kindOf(raw) == kindString {
		e.Title = textOf(raw)
	}
	delete(fields, "filename")
	delete(fields, "title")
	if len(fields) > 0 {
		e.Extra = fields
	}
	return nil
}

func (e ManifestEntry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		out[k] = v
	}
	out["filename"] = e.Filename
	if e.Title != "" {
		out["title"] = e.Title
	}
	return json.Marshal(out)
}
