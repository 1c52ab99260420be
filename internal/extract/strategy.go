package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Strategy recovers a sequence of raw records from model output.
type Strategy interface {
	Name() string
	Extract(text string) ([]json.RawMessage, error)
}

// DefaultStrategies is the order used by NewParser: the whole text as JSON
// first, then a fenced code block holding an array.
func DefaultStrategies() []Strategy {
	return []Strategy{DirectJSON{}, FencedArray{}}
}

// wrapperKeys are object fields that commonly hold the record array when the
// model is forced into JSON-object mode.
var wrapperKeys = []string{"claims", "examples", "data", "items", "results"}

// DirectJSON parses the entire response as a JSON value.
type DirectJSON struct{}

func (DirectJSON) Name() string { return "direct" }

func (DirectJSON) Extract(text string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(text))

	var value json.RawMessage
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, err
	}

	switch firstByte(value) {
	case '[':
		return splitArray(value)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(value, &fields); err != nil {
			return nil, err
		}
		for _, key := range wrapperKeys {
			if inner, ok := fields[key]; ok && firstByte(inner) == '[' {
				return splitArray(inner)
			}
		}
		if len(fields) == 1 {
			for _, inner := range fields {
				if firstByte(inner) == '[' {
					return splitArray(inner)
				}
			}
		}
	}

	// A lone object (or any other value) is a one-element sequence.
	return []json.RawMessage{value}, nil
}

// fencedArrayRe matches ```json [ ... ] ``` blocks, shortest match first.
var fencedArrayRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")

// FencedArray looks for a markdown code block containing a JSON array.
type FencedArray struct{}

func (FencedArray) Name() string { return "fenced" }

func (FencedArray) Extract(text string) ([]json.RawMessage, error) {
	match := fencedArrayRe.FindStringSubmatch(text)
	if match == nil {
		return nil, errors.New("no fenced JSON array found")
	}
	return splitArray(json.RawMessage(strings.TrimSpace(match[1])))
}

func splitArray(data json.RawMessage) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
