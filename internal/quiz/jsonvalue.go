package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// kind is the JSON type of a raw value, judged by its first byte.
type kind int

const (
	kindAbsent kind = iota
	kindNull
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func kindOf(raw json.RawMessage) kind {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return kindAbsent
	}
	switch raw[0] {
	case 'n':
		return kindNull
	case 't', 'f':
		return kindBool
	case '"':
		return kindString
	case '[':
		return kindArray
	case '{':
		return kindObject
	default:
		return kindNumber
	}
}

// truthy applies JavaScript truthiness: absent, null, false, 0 and "" are
// false, everything else (including empty arrays and objects) is true.
func truthy(raw json.RawMessage) bool {
	switch kindOf(raw) {
	case kindAbsent, kindNull:
		return false
	case kindBool:
		return bytes.Equal(bytes.TrimSpace(raw), []byte("true"))
	case kindNumber:
		f, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64)
		return err != nil || f != 0
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return true
		}
		return s != ""
	default:
		return true
	}
}

// textOf renders a value as display text: strings unquoted, numbers and
// booleans literally, arrays and objects as compact JSON, null and absent
// values as "".
func textOf(raw json.RawMessage) string {
	switch kindOf(raw) {
	case kindAbsent, kindNull:
		return ""
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case kindArray, kindObject:
		return compact(raw)
	default:
		return string(bytes.TrimSpace(raw))
	}
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}

type member struct {
	key   string
	value json.RawMessage
}

// objectMembers decodes a JSON object keeping document order. A repeated
// key keeps its first position and takes the last value.
func objectMembers(raw json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var members []member
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if i, dup := seen[key]; dup {
			members[i].value = value
			continue
		}
		seen[key] = len(members)
		members = append(members, member{key: key, value: value})
	}
	return members, nil
}

// enumerationOrder sorts members the way property enumeration does:
// canonical array-index keys ascending, then the rest in insertion order.
func enumerationOrder(members []member) []member {
	out := make([]member, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		ii, iok := arrayIndex(out[i].key)
		ji, jok := arrayIndex(out[j].key)
		switch {
		case iok && jok:
			return ii < ji
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}

func arrayIndex(key string) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return uint32(n), true
}
