package llmutils

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/bububa/ljson"
	"gopkg.in/yaml.v3"

	"github.com/denali-labs/reagent/pkg/llms"
)

// CleanJSON returns JSON by trimming prefixes and postfixes,
// as an LLM can reply like `Here you go: {json}`.
func CleanJSON(bs []byte) []byte {
	return trimPostfixAfterJSON(trimPrefixBeforeJSON(bs))
}

// Removes any prefixes before the JSON (like "Sure, here you go:")
func trimPrefixBeforeJSON(bs []byte) []byte {
	startObject := bytes.IndexByte(bs, '{')
	startArray := bytes.IndexByte(bs, '[')

	var start int
	if startObject == -1 && startArray == -1 {
		return bs
	} else if startObject == -1 {
		start = startArray
	} else if startArray == -1 {
		start = startObject
	} else {
		start = min(startObject, startArray)
	}

	return bs[start:]
}

// Removes any postfixes after the JSON
func trimPostfixAfterJSON(bs []byte) []byte {
	endObject := bytes.LastIndexByte(bs, '}')
	endArray := bytes.LastIndexByte(bs, ']')

	var end int
	if endObject == -1 && endArray == -1 {
		return bs
	} else if endObject == -1 {
		end = endArray
	} else if endArray == -1 {
		end = endObject
	} else {
		end = max(endObject, endArray)
	}

	return bs[:end+1]
}

// UnmarshalLenient decodes LLM-produced JSON, tolerating the fencing and
// chatter models wrap around it.
func UnmarshalLenient(bs []byte, v any) error {
	return ljson.Unmarshal(CleanJSON(bs), v)
}

func ToJSON(val any) string {
	js, _ := json.Marshal(val)
	return string(js)
}

func ToJSONIndent(val any) string {
	js, _ := json.MarshalIndent(val, "", "\t")
	return string(js)
}

func ToYAML(val any) string {
	bs, _ := yaml.Marshal(val)
	return string(bs)
}

func BackticksJSON(js string) string {
	return "\n```json\n" + strings.TrimSpace(js) + "\n```\n"
}

// Truncate caps s at max runes. Observations fed back into the model and
// file/scrape payloads share one cap so a single tool cannot flood the
// transcript.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// EnsureEndsWithNewline adds a trailing newline if absent.
func EnsureEndsWithNewline(s string) string {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

// CountMessagesContentSize returns the byte size of the transcript content.
func CountMessagesContentSize(msgs []llms.Message) uint64 {
	var total uint64
	for _, m := range msgs {
		total += uint64(len(m.Content))
	}
	return total
}
