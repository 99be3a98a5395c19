package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/quill/pkg/core"
)

// Serializer defines how to read and write the note list in a specific file format.
type Serializer interface {
	// Parse reads from r and returns the notes in stored order.
	Parse(r io.Reader) ([]core.Note, error)
	// Serialize converts the notes to bytes.
	Serialize(notes []core.Note) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// referenceEpoch is the origin of numeric timestamps written by the original
// mobile client (seconds since 2001-01-01 UTC).
var referenceEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// maxOffsetSeconds is the largest numeric timestamp a time.Duration can hold.
const maxOffsetSeconds = math.MaxInt64 / int64(time.Second)

// record is the persisted shape of a note.
type record struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp timestamp `json:"timestamp" yaml:"timestamp"`
}

// timestamp is written as RFC 3339 with nanoseconds. JSON input may also be
// a number of seconds since referenceEpoch. A null leaves the zero time.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		*t = timestamp(parsed.UTC())
		return nil
	}

	secs, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	if math.Abs(secs) > float64(maxOffsetSeconds) {
		return fmt.Errorf("invalid timestamp %s: out of range", data)
	}
	whole := int64(secs)
	frac := time.Duration((secs - float64(whole)) * float64(time.Second)).Round(time.Microsecond)
	*t = timestamp(referenceEpoch.Add(time.Duration(whole)*time.Second + frac))
	return nil
}

func (t timestamp) MarshalYAML() (any, error) {
	return time.Time(t).UTC(), nil
}

func (t *timestamp) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.Parse(time.RFC3339Nano, node.Value)
	if err != nil {
		// Other YAML timestamp forms, e.g. a bare date.
		if derr := node.Decode(&parsed); derr != nil {
			return fmt.Errorf("invalid timestamp %q: %w", node.Value, err)
		}
	}
	*t = timestamp(parsed.UTC())
	return nil
}

func toRecords(notes []core.Note) []record {
	out := make([]record, len(notes))
	for i, n := range notes {
		out[i] = record{ID: n.ID, Content: n.Content, Timestamp: timestamp(n.Timestamp)}
	}
	return out
}

func fromRecords(records []record) []core.Note {
	out := make([]core.Note, len(records))
	for i, r := range records {
		out[i] = core.Note{ID: r.ID, Content: r.Content, Timestamp: time.Time(r.Timestamp)}
	}
	return out
}

// --- JSON Serializer ---

// JSONSerializer reads and writes the note list as a JSON array.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Parse(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Note{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return fromRecords(records), nil
}

func (s *JSONSerializer) Serialize(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(toRecords(notes)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer reads and writes the note list as a YAML sequence.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Note{}, nil
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return fromRecords(records), nil
}

func (s *YAMLSerializer) Serialize(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toRecords(notes)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
