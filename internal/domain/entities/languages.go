package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LanguageSize is one entry of a repository language histogram
type LanguageSize struct {
	Name  string
	Bytes string // byte count rendered as text
}

// Languages is a language histogram that keeps the order returned by the API.
// It serializes as a JSON object.
type Languages []LanguageSize

// Get returns the byte count for a language
func (l Languages) Get(name string) (string, bool) {
	for _, lang := range l {
		if lang.Name == name {
			return lang.Bytes, true
		}
	}
	return "", false
}

// MostUsed returns the first language, which the API lists as the largest
func (l Languages) MostUsed() (string, bool) {
	if len(l) == 0 {
		return "", false
	}
	return l[0].Name, true
}

// Clone returns an independent copy
func (l Languages) Clone() Languages {
	out := make(Languages, len(l))
	copy(out, l)
	return out
}

// MarshalJSON writes the histogram as an object, preserving order
func (l Languages) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lang := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lang.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(lang.Bytes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of language → size. Sizes may be numbers or strings.
func (l *Languages) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("languages: expected object, got %v", tok)
	}

	out := make(Languages, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("languages: unexpected key %v", keyTok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return err
		}

		var size string
		switch v := valueTok.(type) {
		case json.Number:
			size = v.String()
		case string:
			size = v
		default:
			return fmt.Errorf("languages: unexpected size %v for %s", valueTok, name)
		}
		out = append(out, LanguageSize{Name: name, Bytes: size})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}
