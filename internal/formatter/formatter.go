package formatter

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mcncl/jsonshape/internal/models"
	"github.com/tidwall/pretty"
)

// Formatter renders value trees back to JSON text.
// A Formatter must not be shared between goroutines.
type Formatter struct {
	indentUnit int
	// quoted and enc are reused for every string literal
	quoted bytes.Buffer
	enc    *json.Encoder
}

// NewFormatter creates a Formatter that indents each nesting level by
// indentUnit spaces. A unit of 0 renders compact JSON.
func NewFormatter(indentUnit int) *Formatter {
	if indentUnit < 0 {
		indentUnit = 0
	}
	f := &Formatter{indentUnit: indentUnit}
	f.enc = json.NewEncoder(&f.quoted)
	f.enc.SetEscapeHTML(false)
	return f
}

// ToText renders v as pretty-printed JSON whose every line is prefixed by
// startIndent spaces.
func ToText(v *models.Value, indentUnit, startIndent int) string {
	return NewFormatter(indentUnit).Format(v, startIndent)
}

// Format renders v as JSON text. Member order is kept as parsed. The tag of
// v itself is not rendered, only its value.
func (f *Formatter) Format(v *models.Value, startIndent int) string {
	if startIndent < 0 {
		startIndent = 0
	}
	prefix := strings.Repeat(" ", startIndent)
	if f.indentUnit == 0 {
		return prefix + f.Compact(v)
	}
	compact := f.appendValue(nil, v)

	// Width 0 keeps pretty from folding short arrays onto one line
	out := pretty.PrettyOptions(compact, &pretty.Options{
		Width:    0,
		Prefix:   prefix,
		Indent:   strings.Repeat(" ", f.indentUnit),
		SortKeys: false,
	})
	return strings.TrimRight(string(out), "\n")
}

// Compact renders v as single-line JSON.
func (f *Formatter) Compact(v *models.Value) string {
	return string(f.appendValue(nil, v))
}

func (f *Formatter) appendValue(buf []byte, v *models.Value) []byte {
	switch v.Kind() {
	case models.KindInt, models.KindLongLong:
		if raw := v.Raw(); raw != "" {
			return append(buf, raw...)
		}
		return strconv.AppendInt(buf, v.Int(), 10)
	case models.KindFloat:
		if raw := v.Raw(); raw != "" {
			return append(buf, raw...)
		}
		return strconv.AppendFloat(buf, v.Float(), 'g', -1, 64)
	case models.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case models.KindString:
		return f.appendString(buf, v.Str())
	case models.KindArray:
		buf = append(buf, '[')
		for i, child := range v.Children() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = f.appendValue(buf, child)
		}
		return append(buf, ']')
	case models.KindObject:
		buf = append(buf, '{')
		for i, member := range v.Members() {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, _ := member.Tag()
			buf = f.appendString(buf, key)
			buf = append(buf, ':')
			buf = f.appendValue(buf, member)
		}
		return append(buf, '}')
	default:
		return append(buf, "null"...)
	}
}

// appendString appends s as a JSON string literal without HTML escaping.
func (f *Formatter) appendString(buf []byte, s string) []byte {
	f.quoted.Reset()
	if err := f.enc.Encode(s); err != nil {
		// Encoding a string only fails on a broken writer
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, bytes.TrimRight(f.quoted.Bytes(), "\n")...)
}
