// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"gopkg.in/yaml.v3"

	"grimm.is/algodocs/internal/errors"
)

// Format identifies a descriptor encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf(errors.KindConfig, "unknown descriptor format %q", s)
	}
}

// DetectFormat derives the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Errorf(errors.KindConfig, "cannot detect descriptor format of %s", path)
	}
	return ParseFormat(ext)
}

// Loader decodes descriptor sources into entries. A malformed algorithm yields
// an entry carrying an InvalidDescriptor error; its siblings still load.
type Loader struct {
	validate *validator.Validate
}

// NewLoader creates a descriptor loader.
func NewLoader() *Loader {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &Loader{validate: v}
}

// LoadFile reads a descriptor file. An empty format is detected from the
// file extension.
func (l *Loader) LoadFile(path string, format Format) ([]Entry, error) {
	if format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	f, err := os.Open(path)
	if err != nil {
		kind := errors.KindInternal
		if os.IsNotExist(err) {
			kind = errors.KindNotFound
		}
		return nil, errors.Attr(errors.Wrap(err, kind, "opening descriptor"), "source", path)
	}
	defer f.Close()

	return l.Load(f, path, format)
}

// Load decodes descriptors from r. Source labels the entries and errors.
func (l *Loader) Load(r io.Reader, source string, format Format) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	switch format {
	case FormatJSON:
		entries, err = l.loadJSON(r, source)
	case FormatYAML:
		entries, err = l.loadYAML(r, source)
	case FormatCSV:
		entries, err = l.loadCSV(r, source)
	default:
		err = errors.Errorf(errors.KindConfig, "unknown descriptor format %q", format)
	}
	if err != nil {
		return nil, errors.Attr(err, "source", source)
	}
	return entries, nil
}

// rawAlgorithm mirrors AlgorithmDescriptor with presence tracking so that
// missing fields can be told apart from zero values.
type rawAlgorithm struct {
	Name        string         `json:"name" yaml:"name" validate:"required,notblank"`
	PagePath    string         `json:"page_path" yaml:"page_path" validate:"required"`
	Config      []rawParameter `json:"config" yaml:"config" validate:"required,dive"`
	ConfigNotes []string       `json:"config_notes" yaml:"config_notes"`
}

type rawParameter struct {
	Name        string     `json:"name" yaml:"name" validate:"required,notblank"`
	Type        rawType    `json:"type" yaml:"type"`
	Default     rawDefault `json:"default" yaml:"default"`
	Optional    *bool      `json:"optional" yaml:"optional" validate:"required"`
	Description *string    `json:"description" yaml:"description" validate:"required"`
}

type rawType struct {
	set   bool
	value ParamType
	err   error
}

func (t *rawType) UnmarshalJSON(data []byte) error {
	t.set = true
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		t.set = false
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		t.value, t.err = scalarType(s)
	case len(trimmed) > 0 && trimmed[0] == '[':
		var names []string
		if err := json.Unmarshal(trimmed, &names); err != nil {
			t.err = fmt.Errorf("union members must be strings")
			return nil
		}
		t.value, t.err = unionType(names)
	default:
		t.err = fmt.Errorf("must be a string or a list of strings")
	}
	return nil
}

func (t *rawType) UnmarshalYAML(node *yaml.Node) error {
	t.set = true
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			t.set = false
			return nil
		}
		t.value, t.err = scalarType(node.Value)
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			t.err = fmt.Errorf("union members must be strings")
			return nil
		}
		t.value, t.err = unionType(names)
	default:
		t.err = fmt.Errorf("must be a string or a list of strings")
	}
	return nil
}

func scalarType(s string) (ParamType, error) {
	if strings.TrimSpace(s) == "" {
		return ParamType{}, fmt.Errorf("must not be empty")
	}
	return Scalar(s), nil
}

func unionType(names []string) (ParamType, error) {
	if len(names) == 0 {
		return ParamType{}, fmt.Errorf("union must have at least one member")
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return ParamType{}, fmt.Errorf("union members must not be empty")
		}
	}
	return Union(names...), nil
}

type rawDefault struct {
	value DefaultValue
}

func (d *rawDefault) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		d.value = NullDefault()
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		d.value = DefaultOf(s)
	case trimmed[0] == '[' || trimmed[0] == '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return err
		}
		d.value = DefaultOf(buf.String())
	default:
		// numbers and booleans keep their literal text; no float
		// round-trip, so 0.0000001 is not reformatted as 1e-07
		d.value = DefaultOf(string(trimmed))
	}
	return nil
}

func (d *rawDefault) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			d.value = NullDefault()
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			d.value = DefaultOf(fmt.Sprintf("%t", b))
		default:
			d.value = DefaultOf(node.Value)
		}
	case yaml.SequenceNode, yaml.MappingNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		d.value = DefaultOf(string(data))
	default:
		return fmt.Errorf("unsupported default value")
	}
	return nil
}

// convert validates a raw algorithm and builds the immutable descriptor.
func (l *Loader) convert(raw *rawAlgorithm) (*AlgorithmDescriptor, error) {
	var problems []string

	if err := l.validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, errors.Wrap(err, errors.KindInvalidDescriptor, "validating descriptor")
		}
		for _, fe := range verrs {
			problems = append(problems, fieldPath(fe.Namespace())+": "+describeTag(fe.Tag()))
		}
	}

	desc := &AlgorithmDescriptor{
		Name:        raw.Name,
		PagePath:    raw.PagePath,
		Config:      make([]ParameterDescriptor, 0, len(raw.Config)),
		ConfigNotes: raw.ConfigNotes,
	}

	for i, rp := range raw.Config {
		switch {
		case !rp.Type.set:
			problems = append(problems, fmt.Sprintf("config[%d].type: missing", i))
		case rp.Type.err != nil:
			problems = append(problems, fmt.Sprintf("config[%d].type: %v", i, rp.Type.err))
		}
		if len(problems) > 0 {
			continue
		}
		desc.Config = append(desc.Config, ParameterDescriptor{
			Name:        rp.Name,
			Type:        rp.Type.value,
			Default:     rp.Default.value,
			Optional:    *rp.Optional,
			Description: *rp.Description,
		})
	}

	if len(problems) > 0 {
		return nil, errors.Errorf(errors.KindInvalidDescriptor, "invalid descriptor: %s", strings.Join(problems, "; "))
	}
	return desc, nil
}

// fieldPath drops the struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "missing"
	case "notblank":
		return "must not be blank"
	}
	return "failed " + tag
}

func (l *Loader) entry(raw *rawAlgorithm, source string, pos string, decodeErr error) Entry {
	e := Entry{Name: raw.Name, Source: source}
	if decodeErr != nil {
		e.Err = errors.Wrap(decodeErr, errors.KindInvalidDescriptor, "malformed algorithm")
	} else {
		e.Descriptor, e.Err = l.convert(raw)
	}
	if e.Err != nil {
		e.Err = errors.Attr(e.Err, "source", source)
		e.Err = errors.Attr(e.Err, "position", pos)
		if e.Name != "" {
			e.Err = errors.Attr(e.Err, "algorithm", e.Name)
		}
	}
	return e
}

func (l *Loader) loadJSON(r io.Reader, source string) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "reading descriptor")
	}

	items, err := splitJSON(data)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		var raw rawAlgorithm
		decodeErr := json.Unmarshal(item, &raw)
		if decodeErr != nil {
			// best effort to name the entry
			var named struct {
				Name string `json:"name"`
			}
			_ = json.Unmarshal(item, &named)
			raw = rawAlgorithm{Name: named.Name}
		}
		entries = append(entries, l.entry(&raw, source, fmt.Sprintf("algorithms[%d]", i), decodeErr))
	}
	return entries, nil
}

// splitJSON accepts a list of algorithms, an object with an "algorithms" list,
// or a single algorithm object.
func splitJSON(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.KindInvalidDescriptor, "empty descriptor")
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, errors.Wrap(err, errors.KindInvalidDescriptor, "parsing JSON descriptor")
		}
		return items, nil
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, errors.Wrap(err, errors.KindInvalidDescriptor, "parsing JSON descriptor")
		}
		list, ok := wrapper["algorithms"]
		if !ok {
			return []json.RawMessage{trimmed}, nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, errors.Wrap(err, errors.KindInvalidDescriptor, "\"algorithms\" must be a list")
		}
		return items, nil
	default:
		return nil, errors.New(errors.KindInvalidDescriptor, "JSON descriptor must be an object or a list")
	}
}

func (l *Loader) loadYAML(r io.Reader, source string) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.KindInvalidDescriptor, "empty descriptor")
		}
		return nil, errors.Wrap(err, errors.KindInvalidDescriptor, "parsing YAML descriptor")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var items []*yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		items = root.Content
	case yaml.MappingNode:
		items = []*yaml.Node{root}
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "algorithms" {
				list := root.Content[i+1]
				if list.Kind != yaml.SequenceNode {
					return nil, errors.New(errors.KindInvalidDescriptor, "\"algorithms\" must be a list")
				}
				items = list.Content
				break
			}
		}
	default:
		return nil, errors.New(errors.KindInvalidDescriptor, "YAML descriptor must be a mapping or a list")
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		var raw rawAlgorithm
		decodeErr := item.Decode(&raw)
		if decodeErr != nil {
			var named struct {
				Name string `yaml:"name"`
			}
			_ = item.Decode(&named)
			raw = rawAlgorithm{Name: named.Name}
		}
		entries = append(entries, l.entry(&raw, source, fmt.Sprintf("line %d", item.Line), decodeErr))
	}
	return entries, nil
}

var csvColumns = []string{"algorithm", "page_path", "parameter", "type", "default", "optional", "description"}

// loadCSV reads one parameter per row. Rows are grouped by algorithm in order
// of first appearance. A row without a parameter name carries a config note in
// its description column.
func (l *Loader) loadCSV(r io.Reader, source string) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.KindInvalidDescriptor, "empty descriptor")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInvalidDescriptor, "parsing CSV header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range csvColumns {
		if c == "default" {
			continue
		}
		if _, ok := cols[c]; !ok {
			return nil, errors.Errorf(errors.KindInvalidDescriptor, "CSV descriptor is missing column %q", c)
		}
	}

	type group struct {
		raw      rawAlgorithm
		firstRow int
		problems []string
	}
	var (
		order  []string
		groups = make(map[string]*group)
	)

	row := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.Wrapf(err, errors.KindInvalidDescriptor, "parsing CSV row %d", row)
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		name := cell("algorithm")
		g, ok := groups[name]
		if !ok {
			g = &group{raw: rawAlgorithm{Name: name, Config: []rawParameter{}}, firstRow: row}
			groups[name] = g
			order = append(order, name)
		}

		if pp := cell("page_path"); pp != "" {
			if g.raw.PagePath != "" && g.raw.PagePath != pp {
				g.problems = append(g.problems, fmt.Sprintf("row %d: conflicting page_path %q", row, pp))
			} else {
				g.raw.PagePath = pp
			}
		}

		param := cell("parameter")
		if param == "" {
			if note := cell("description"); note != "" {
				g.raw.ConfigNotes = append(g.raw.ConfigNotes, note)
			}
			continue
		}

		rp := rawParameter{Name: param}
		if t := cell("type"); t != "" {
			rp.Type.set = true
			if strings.Contains(t, ";") {
				parts := strings.Split(t, ";")
				for i := range parts {
					parts[i] = strings.TrimSpace(parts[i])
				}
				rp.Type.value, rp.Type.err = unionType(parts)
			} else {
				rp.Type.value = Scalar(t)
			}
		}
		if d := cell("default"); d != "" && d != "null" {
			rp.Default.value = DefaultOf(d)
		}
		if o := cell("optional"); o != "" {
			b, ok := parseYesNo(o)
			if !ok {
				g.problems = append(g.problems, fmt.Sprintf("row %d: optional must be yes/no, got %q", row, o))
			}
			rp.Optional = &b
		}
		desc := cell("description")
		rp.Description = &desc

		g.raw.Config = append(g.raw.Config, rp)
	}

	entries := make([]Entry, 0, len(order))
	for _, name := range order {
		g := groups[name]
		pos := fmt.Sprintf("row %d", g.firstRow)
		if len(g.problems) > 0 {
			entries = append(entries, l.entry(&g.raw, source, pos,
				fmt.Errorf("%s", strings.Join(g.problems, "; "))))
			continue
		}
		entries = append(entries, l.entry(&g.raw, source, pos, nil))
	}
	return entries, nil
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "true", "1", "y":
		return true, true
	case "no", "false", "0", "n":
		return false, true
	default:
		return false, false
	}
}

// MarshalJSON encodes a scalar as a string and a union as a list.
func (t ParamType) MarshalJSON() ([]byte, error) {
	if t.IsUnion() {
		return json.Marshal(t.union)
	}
	return json.Marshal(t.scalar)
}

// MarshalJSON encodes a null default as null and any other as its text.
func (d DefaultValue) MarshalJSON() ([]byte, error) {
	if d.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(d.text)
}
