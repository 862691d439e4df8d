package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/tidwall/gjson"
)

// Parse reads a whole JSON document from reader and builds its value tree.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes builds the value tree for a JSON document held in memory.
func ParseBytes(data []byte) (models.IntermediateRepresentation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	// ValidBytes also rejects anything but whitespace after the first value.
	if !gjson.ValidBytes(data) {
		return models.IntermediateRepresentation{}, errors.NewParsingError(
			fmt.Sprintf("JSON syntax error in %d bytes of input", len(data)),
			errors.ErrInvalidJSON,
		)
	}

	// The root carries an empty tag, member values carry their key and
	// array elements carry none.
	b := &builder{data: data}
	root := models.Member("", b.value())

	return models.IntermediateRepresentation{
		Root:        root,
		RootIsArray: root.Kind() == models.KindArray,
	}, nil
}

// builder turns JSON text that gjson has already validated into a value
// tree. It reads every byte once, so deep documents cost no more per byte
// than flat ones.
type builder struct {
	data []byte
	pos  int
}

// peek returns the current byte, or 0 at the end of the input.
func (b *builder) peek() byte {
	if b.pos >= len(b.data) {
		return 0
	}
	return b.data[b.pos]
}

func (b *builder) skipSpace() {
	for b.pos < len(b.data) {
		switch b.data[b.pos] {
		case ' ', '\t', '\n', '\r':
			b.pos++
		default:
			return
		}
	}
}

// value builds the untagged value starting at the next non-space byte.
func (b *builder) value() *models.Value {
	b.skipSpace()
	switch b.peek() {
	case '{':
		return b.object()
	case '[':
		return b.array()
	case '"':
		return models.NewString(b.str())
	case 't':
		b.pos += len("true")
		return models.NewBool(true)
	case 'f':
		b.pos += len("false")
		return models.NewBool(false)
	case 'n', 0:
		b.pos += len("null")
		return models.NewNull()
	}
	return b.number()
}

func (b *builder) array() *models.Value {
	b.pos++ // [
	elements := make([]*models.Value, 0)
	for {
		b.skipSpace()
		if c := b.peek(); c == ']' || c == 0 {
			b.pos++
			break
		}
		elements = append(elements, b.value())
		b.skipSpace()
		if b.peek() == ',' {
			b.pos++
		}
	}
	return models.NewArray(elements...)
}

func (b *builder) object() *models.Value {
	b.pos++ // {
	members := make([]*models.Value, 0)
	for {
		b.skipSpace()
		if c := b.peek(); c == '}' || c == 0 {
			b.pos++
			break
		}
		key := b.str()
		b.skipSpace()
		b.pos++ // :
		members = append(members, models.Member(key, b.value()))
		b.skipSpace()
		if b.peek() == ',' {
			b.pos++
		}
	}
	return models.NewObject(members...)
}

// str reads a string literal and returns its unescaped content.
func (b *builder) str() string {
	start := b.pos
	b.pos++ // opening quote
	escaped := false
	for b.pos < len(b.data) {
		c := b.data[b.pos]
		b.pos++
		if c == '\\' {
			escaped = true
			b.pos++
			continue
		}
		if c == '"' {
			break
		}
	}
	end := min(b.pos, len(b.data))
	if !escaped {
		return string(b.data[start+1 : end-1])
	}
	// gjson unescapes a lone string literal without scanning past it
	return gjson.ParseBytes(b.data[start:end]).Str
}

func (b *builder) number() *models.Value {
	start := b.pos
	for b.pos < len(b.data) && isNumberByte(b.data[b.pos]) {
		b.pos++
	}
	raw := string(b.data[start:b.pos])
	// Literals too large for a float64 become ±Inf, like gjson's Num
	num, _ := strconv.ParseFloat(raw, 64)
	return buildNumber(raw, num)
}

func isNumberByte(c byte) bool {
	switch c {
	case '-', '+', '.', 'e', 'E':
		return true
	}
	return c >= '0' && c <= '9'
}

// buildNumber classifies a number literal. Integers that fit in 32 bits are
// Int, those that fit in 64 bits are LongLong, everything else is Float.
func buildNumber(raw string, num float64) *models.Value {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return models.NewNumber(models.KindInt, raw, i, float64(i))
			}
			return models.NewNumber(models.KindLongLong, raw, i, float64(i))
		}
	}
	return models.NewNumber(models.KindFloat, raw, int64(num), num)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile reads a file fully into memory and parses it.
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("could not open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	ir, err := ParseBytes(data)
	if err != nil {
		return models.IntermediateRepresentation{}, fmt.Errorf("could not parse %s: %w", filePath, err)
	}
	return ir, nil
}
