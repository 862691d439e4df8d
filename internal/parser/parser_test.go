package parser

import (
	stderrors "errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
)

// kindsOf lists the kinds of v's children in order.
func kindsOf(v *models.Value) []models.Kind {
	kinds := make([]models.Kind, 0, v.Len())
	for _, child := range v.Children() {
		kinds = append(kinds, child.Kind())
	}
	return kinds
}

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	ir, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if ir.RootIsArray {
		t.Errorf("Parse() ir.RootIsArray = true, want false for an object")
	}
	if ir.Root.Kind() != models.KindObject {
		t.Fatalf("Parse() root kind = %v, want Object", ir.Root.Kind())
	}

	wantKeys := []string{"name", "age", "isStudent", "city"}
	wantKinds := []models.Kind{models.KindString, models.KindInt, models.KindBool, models.KindNone}
	members := ir.Root.Members()
	if len(members) != len(wantKeys) {
		t.Fatalf("Parse() got %d members, want %d", len(members), len(wantKeys))
	}
	for i, member := range members {
		tag, ok := member.Tag()
		if !ok || tag != wantKeys[i] {
			t.Errorf("member %d tag = %q (present %v), want %q", i, tag, ok, wantKeys[i])
		}
		if member.Kind() != wantKinds[i] {
			t.Errorf("member %d kind = %v, want %v", i, member.Kind(), wantKinds[i])
		}
	}
	if got := ir.Root.Find("name").Str(); got != "John Doe" {
		t.Errorf("name = %q, want %q", got, "John Doe")
	}
}

func TestParse_PreservesMemberOrder(t *testing.T) {
	ir, err := ParseString(`{"zeta": 1, "alpha": 2, "mid": 3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	var keys []string
	for _, member := range ir.Root.Members() {
		tag, _ := member.Tag()
		keys = append(keys, tag)
	}
	if strings.Join(keys, ",") != "zeta,alpha,mid" {
		t.Errorf("member order = %v, want source order", keys)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	ir, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if !ir.RootIsArray {
		t.Errorf("Parse() ir.RootIsArray = false, want true for an array")
	}

	want := []models.Kind{models.KindInt, models.KindString, models.KindBool, models.KindNone, models.KindFloat}
	got := kindsOf(ir.Root)
	if len(got) != len(want) {
		t.Fatalf("Parse() got %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d kind = %v, want %v", i, got[i], want[i])
		}
		if _, ok := ir.Root.Children()[i].Tag(); ok {
			t.Errorf("element %d has a tag, want none", i)
		}
	}
}

func TestParse_RootTagIsEmpty(t *testing.T) {
	ir, err := ParseString(`{}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	tag, ok := ir.Root.Tag()
	if !ok || tag != "" {
		t.Errorf("root tag = %q (present %v), want present and empty", tag, ok)
	}
}

func TestParse_NumberKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  models.Kind
	}{
		{"0", models.KindInt},
		{"-42", models.KindInt},
		{"2147483647", models.KindInt},
		{"2147483648", models.KindLongLong},
		{"-9223372036854775808", models.KindLongLong},
		{"9223372036854775808", models.KindFloat},
		{"1.5", models.KindFloat},
		{"1e3", models.KindFloat},
		{"-2E-2", models.KindFloat},
	}

	for _, tt := range tests {
		ir, err := ParseString(tt.input)
		if err != nil {
			t.Fatalf("ParseString(%q) error = %v", tt.input, err)
		}
		if ir.Root.Kind() != tt.kind {
			t.Errorf("ParseString(%q) kind = %v, want %v", tt.input, ir.Root.Kind(), tt.kind)
		}
		if ir.Root.Raw() != tt.input {
			t.Errorf("ParseString(%q) raw = %q, want the literal", tt.input, ir.Root.Raw())
		}
	}
}

func TestParse_NestedObject(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"]}`
	ir, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	user := ir.Root.Find("user")
	if user.Kind() != models.KindObject {
		t.Fatalf("user kind = %v, want Object", user.Kind())
	}
	if user.Find("id").Int() != 123 {
		t.Errorf("user.id = %d, want 123", user.Find("id").Int())
	}
	tags := ir.Root.Find("tags")
	if tags.Kind() != models.KindArray || tags.Len() != 2 {
		t.Fatalf("tags = %v with %d elements, want Array of 2", tags.Kind(), tags.Len())
	}
	if tags.Children()[1].Str() != "json" {
		t.Errorf("tags[1] = %q, want %q", tags.Children()[1].Str(), "json")
	}
}

func TestParse_EscapedKeysAndStrings(t *testing.T) {
	ir, err := ParseString(`{"a\"b": "line\nbreak", "\u006bind": "X"}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got := ir.Root.Find(`a"b`).Str(); got != "line\nbreak" {
		t.Errorf("escaped value = %q, want unescaped", got)
	}
	if ir.Root.Find("kind") == nil {
		t.Errorf("unicode-escaped key was not decoded")
	}
}

func TestParse_SurrogatePairsAndWhitespace(t *testing.T) {
	ir, err := ParseString(" \r\n\t{ \"s\" : \"\\ud83d\\ude00 \\/ \\\\\" ,\n\"e\":[ ] , \"o\" : { } , \"n\" : -1.5E+3 }\n")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got := ir.Root.Find("s").Str(); got != "\U0001F600 / \\" {
		t.Errorf("s = %q, want the decoded pair", got)
	}
	if e := ir.Root.Find("e"); e.Kind() != models.KindArray || e.Len() != 0 {
		t.Errorf("e = %v with %d elements, want empty Array", e.Kind(), e.Len())
	}
	if o := ir.Root.Find("o"); o.Kind() != models.KindObject || o.Len() != 0 {
		t.Errorf("o = %v with %d members, want empty Object", o.Kind(), o.Len())
	}
	n := ir.Root.Find("n")
	if n.Kind() != models.KindFloat || n.Float() != -1500 || n.Raw() != "-1.5E+3" {
		t.Errorf("n = %v %v %q, want Float -1500 \"-1.5E+3\"", n.Kind(), n.Float(), n.Raw())
	}
}

// nestedInner builds depth objects, each holding an "inner" array with the next.
func nestedInner(depth int) string {
	return strings.Repeat(`{"inner":[`, depth) + strings.Repeat("]}", depth)
}

func TestParse_DeepNesting(t *testing.T) {
	const depth = 50000
	ir, err := ParseString(nestedInner(depth))
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	levels := 0
	for v := ir.Root; v != nil; levels++ {
		inner := v.Find("inner")
		if v.Kind() != models.KindObject || v.Len() != 1 || inner.Kind() != models.KindArray {
			t.Fatalf("level %d is %v with %d members, want Object holding an inner Array", levels, v.Kind(), v.Len())
		}
		if inner.Len() == 0 {
			levels++
			break
		}
		v = inner.Children()[0]
	}
	if levels != depth {
		t.Errorf("got %d levels, want %d", levels, depth)
	}
}

// bestParseTime returns the fastest of three parses of doc.
func bestParseTime(t *testing.T, doc string) time.Duration {
	t.Helper()
	best := time.Duration(math.MaxInt64)
	for i := 0; i < 3; i++ {
		start := time.Now()
		if _, err := ParseString(doc); err != nil {
			t.Fatalf("ParseString() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed < best {
			best = elapsed
		}
	}
	return best
}

func TestParse_DeepNestingScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	small := bestParseTime(t, nestedInner(10000))
	large := bestParseTime(t, nestedInner(40000))

	// Four times the depth; quadratic growth would take about sixteen times as long
	if large > 8*small+50*time.Millisecond {
		t.Errorf("depth 40000 took %v, depth 10000 took %v: parse time grows faster than the input", large, small)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	if err == nil {
		t.Fatalf("Parse() with empty reader, err = nil, want error")
	}
	if !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Errorf("Parse() with empty reader, err = %v, want ErrEmptyInput", err)
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	_, err := ParseString("   \n\t")
	if err == nil {
		t.Fatalf("ParseString() with whitespace, err = nil, want error")
	}
	if !strings.Contains(err.Error(), "input string is empty") {
		t.Errorf("ParseString() err = %v, want error containing 'input string is empty'", err)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	inputs := []string{
		`{"name": "John Doe", "age": 30,}`,
		`{"unclosed": [1, 2}`,
		`{"a": 1} {"b": 2}`,
		`nope`,
	}

	for _, input := range inputs {
		_, err := ParseString(input)
		if err == nil {
			t.Errorf("ParseString(%q) err = nil, want error", input)
			continue
		}
		if !stderrors.Is(err, errors.ErrInvalidJSON) {
			t.Errorf("ParseString(%q) err = %v, want ErrInvalidJSON", input, err)
		}
	}
}

func TestParse_TrailingWhitespaceAllowed(t *testing.T) {
	if _, err := ParseString("{\"a\": 1}\n\n  "); err != nil {
		t.Errorf("ParseString() with trailing whitespace, err = %v, want nil", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`{"kind": "TranslationUnitDecl"}`), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	ir, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if ir.Root.Find("kind").Str() != "TranslationUnitDecl" {
		t.Errorf("ParseFile() kind = %q", ir.Root.Find("kind").Str())
	}
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"a":`), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "  ", errors.ErrInvalidFilePath},
		{"missing file", filepath.Join(dir, "missing.json"), errors.ErrFileNotFound},
		{"empty file", empty, errors.ErrFileEmpty},
		{"broken file", broken, errors.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile(tt.path)
			if !stderrors.Is(err, tt.want) {
				t.Errorf("ParseFile(%q) err = %v, want %v", tt.path, err, tt.want)
			}
		})
	}
}
