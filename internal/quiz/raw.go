package quiz

import (
	"encoding/json"
	"fmt"
)

// Prompt is the decoded form of a raw question's "question" field.
type Prompt interface{ isPrompt() }

// ScalarPrompt is a string, number or boolean question.
type ScalarPrompt struct {
	Value  string
	Truthy bool
}

// ObjectPrompt is an object (or array) question. Text is its own "text"
// field when that field is truthy; Raw is the compact JSON of the whole value.
type ObjectPrompt struct {
	Text    string
	HasText bool
	Raw     string
}

// MissingPrompt means the "question" field was absent or null.
type MissingPrompt struct{}

func (ScalarPrompt) isPrompt()  {}
func (ObjectPrompt) isPrompt()  {}
func (MissingPrompt) isPrompt() {}

// OptionSet is the decoded form of a raw question's "options" field.
type OptionSet interface{ isOptionSet() }

// OptionList came from an array (or a string, one element per character).
type OptionList []RawOption

// OptionMap came from an object; elements are its values in enumeration
// order.
type OptionMap []RawOption

// NoOptions means "options" was absent or falsy.
type NoOptions struct{}

func (OptionList) isOptionSet() {}
func (OptionMap) isOptionSet()  {}
func (NoOptions) isOptionSet()  {}

// RawOption is one decoded option element.
type RawOption interface{ isRawOption() }

// ScalarOption is a string, number or boolean element.
type ScalarOption struct{ Text string }

// ObjectOption is an object element. Text already applies the text/value
// fallback and Correct the truthiness of "correct".
type ObjectOption struct {
	Text    string
	Correct bool
}

// InvalidOption is an element with no usable shape (null).
type InvalidOption struct{}

func (ScalarOption) isRawOption()  {}
func (ObjectOption) isRawOption()  {}
func (InvalidOption) isRawOption() {}

// RawQuestion is one question as published, decoded once into variants so
// normalization never looks at JSON again.
type RawQuestion struct {
	Prompt       Prompt
	Options      OptionSet
	FallbackText string
	UID          UID
	Explanation  string
	// Fields holds every source field except "text" and "options".
	Fields map[string]json.RawMessage
}

// DecodeQuestion decodes one element of a document's questions array.
// A non-object element is treated as a bare question prompt.
func DecodeQuestion(data json.RawMessage) (RawQuestion, error) {
	if k := kindOf(data); k != kindObject {
		rq := RawQuestion{Options: NoOptions{}}
		switch k {
		case kindAbsent, kindNull:
			rq.Prompt = MissingPrompt{}
		case kindArray:
			rq.Prompt = ObjectPrompt{Raw: compact(data)}
		default:
			rq.Prompt = ScalarPrompt{Value: textOf(data), Truthy: truthy(data)}
		}
		return rq, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return RawQuestion{}, fmt.Errorf("decode question: %w", err)
	}

	prompt, err := decodePrompt(fields["question"])
	if err != nil {
		return RawQuestion{}, err
	}
	options, err := decodeOptionSet(fields["options"])
	if err != nil {
		return RawQuestion{}, err
	}

	rq := RawQuestion{
		Prompt:       prompt,
		Options:      options,
		FallbackText: textOf(fields["text"]),
		UID:          UID(textOf(fields["uid"])),
		Explanation:  textOf(fields["explanation"]),
	}
	delete(fields, "text")
	delete(fields, "options")
	if len(fields) > 0 {
		rq.Fields = fields
	}
	return rq, nil
}

func decodePrompt(raw json.RawMessage) (Prompt, error) {
	switch kindOf(raw) {
	case kindAbsent, kindNull:
		return MissingPrompt{}, nil
	case kindArray:
		return ObjectPrompt{Raw: compact(raw)}, nil
	case kindObject:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("decode question object: %w", err)
		}
		p := ObjectPrompt{Raw: compact(raw)}
		if truthy(obj["text"]) {
			p.Text, p.HasText = textOf(obj["text"]), true
		}
		return p, nil
	default:
		return ScalarPrompt{Value: textOf(raw), Truthy: truthy(raw)}, nil
	}
}

func decodeOptionSet(raw json.RawMessage) (OptionSet, error) {
	if !truthy(raw) {
		return NoOptions{}, nil
	}
	switch kindOf(raw) {
	case kindArray:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
		list := make(OptionList, 0, len(elems))
		for _, e := range elems {
			o, err := decodeOption(e)
			if err != nil {
				return nil, err
			}
			list = append(list, o)
		}
		return list, nil
	case kindObject:
		members, err := objectMembers(raw)
		if err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
		members = enumerationOrder(members)
		m := make(OptionMap, 0, len(members))
		for _, mem := range members {
			o, err := decodeOption(mem.value)
			if err != nil {
				return nil, err
			}
			m = append(m, o)
		}
		return m, nil
	case kindString:
		s := textOf(raw)
		list := make(OptionList, 0, len(s))
		for _, r := range s {
			list = append(list, ScalarOption{Text: string(r)})
		}
		return list, nil
	default:
		// true or a non-zero number: nothing to enumerate.
		return OptionList{}, nil
	}
}

func decodeOption(raw json.RawMessage) (RawOption, error) {
	switch kindOf(raw) {
	case kindAbsent, kindNull:
		return InvalidOption{}, nil
	case kindArray:
		return ObjectOption{}, nil
	case kindObject:
		// Field names are matched exactly; encoding/json struct decoding
		// would also accept "Text" or "CORRECT".
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("decode option: %w", err)
		}
		text := obj["value"]
		if truthy(obj["text"]) {
			text = obj["text"]
		}
		return ObjectOption{Text: textOf(text), Correct: truthy(obj["correct"])}, nil
	default:
		return ScalarOption{Text: textOf(raw)}, nil
	}
}
