package quiz

// Normalize turns a decoded raw question into its canonical form. It never
// fails: odd shapes degrade to a textual fallback.
func Normalize(rq RawQuestion) Question {
	return Question{
		Text:        questionText(rq),
		Options:     normalizeOptions(rq.Options),
		UID:         rq.UID,
		Explanation: rq.Explanation,
		Extra:       rq.Fields,
	}
}

func questionText(rq RawQuestion) string {
	switch p := rq.Prompt.(type) {
	case ObjectPrompt:
		if p.HasText {
			return p.Text
		}
		return p.Raw
	case ScalarPrompt:
		if p.Truthy {
			return p.Value
		}
	}
	return rq.FallbackText
}

func normalizeOptions(set OptionSet) []Option {
	var elems []RawOption
	switch s := set.(type) {
	case OptionList:
		elems = s
	case OptionMap:
		elems = s
	default:
		return nil
	}

	out := make([]Option, 0, len(elems))
	for _, e := range elems {
		switch o := e.(type) {
		case ObjectOption:
			out = append(out, Option{Text: o.Text, Correct: o.Correct})
		case ScalarOption:
			out = append(out, Option{Text: o.Text})
		default:
			out = append(out, Option{})
		}
	}
	return out
}
