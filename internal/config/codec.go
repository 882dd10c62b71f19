package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// sidebarGroup is the wire shape of a SidebarGroup item.
type sidebarGroup struct {
	Title        string         `yaml:"title" json:"title"`
	Path         string         `yaml:"path,omitempty" json:"path,omitempty"`
	Collapsable  *bool          `yaml:"collapsable,omitempty" json:"collapsable,omitempty"`
	SidebarDepth *int           `yaml:"sidebarDepth,omitempty" json:"sidebarDepth,omitempty"`
	Children     []SidebarItem  `yaml:"children" json:"children"`
	Extra        map[string]any `yaml:",inline" json:"-"`
}

func (s SidebarItem) toGroup() sidebarGroup {
	return sidebarGroup{
		Title:        s.Title,
		Path:         s.Path,
		Collapsable:  s.Collapsable,
		SidebarDepth: s.SidebarDepth,
		Children:     s.Children,
		Extra:        s.Extra,
	}
}

func fromGroup(g sidebarGroup) SidebarItem {
	return SidebarItem{
		Kind:         SidebarGroup,
		Title:        g.Title,
		Path:         g.Path,
		Collapsable:  g.Collapsable,
		SidebarDepth: g.SidebarDepth,
		Children:     g.Children,
		Extra:        g.Extra,
	}
}

// Records with an Extra map get their JSON form from these wire types, which carry the same
// fields without the methods.
type (
	siteConfigJSON  SiteConfig
	themeConfigJSON ThemeConfig
	navItemJSON     NavItem
)

// MarshalJSON writes the modelled fields followed by the Extra keys.
func (c SiteConfig) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(siteConfigJSON(c), c.Extra)
}

// UnmarshalJSON decodes the modelled fields and keeps every other key in Extra.
func (c *SiteConfig) UnmarshalJSON(data []byte) error {
	var fields siteConfigJSON
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := unmarshalExtra(data, reflect.TypeOf(fields))
	if err != nil {
		return err
	}
	*c = SiteConfig(fields)
	c.Extra = extra
	return nil
}

// MarshalJSON writes the modelled fields followed by the Extra keys.
func (t ThemeConfig) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(themeConfigJSON(t), t.Extra)
}

// UnmarshalJSON decodes the modelled fields and keeps every other key in Extra.
func (t *ThemeConfig) UnmarshalJSON(data []byte) error {
	var fields themeConfigJSON
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := unmarshalExtra(data, reflect.TypeOf(fields))
	if err != nil {
		return err
	}
	*t = ThemeConfig(fields)
	t.Extra = extra
	return nil
}

// MarshalJSON writes the modelled fields followed by the Extra keys.
func (n NavItem) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(navItemJSON(n), n.Extra)
}

// UnmarshalJSON decodes the modelled fields and keeps every other key in Extra.
func (n *NavItem) UnmarshalJSON(data []byte) error {
	var fields navItemJSON
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := unmarshalExtra(data, reflect.TypeOf(fields))
	if err != nil {
		return err
	}
	*n = NavItem(fields)
	n.Extra = extra
	return nil
}

// encodeJSON is json.Marshal without HTML escaping, matching Marshal's encoder.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalWithExtra encodes the struct v and appends the extra keys in sorted order.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	data, err := encodeJSON(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	needComma := len(bytes.TrimSpace(data)) > 2
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		key, err := encodeJSON(k)
		if err != nil {
			return nil, err
		}
		value, err := encodeJSON(extra[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		if needComma {
			buf.WriteByte(',')
		}
		needComma = true
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalExtra returns the keys of the JSON object data that are not fields of t.
func unmarshalExtra(data []byte, t reflect.Type) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := jsonFieldNames(t)
	var extra map[string]any
	for k, v := range raw {
		if known[k] {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = value
	}
	return extra, nil
}

func jsonFieldNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" || !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names[name] = true
	}
	return names
}

// UnmarshalYAML accepts the three sidebar entry shapes.
func (s *SidebarItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		return s.UnmarshalYAML(value.Alias)
	}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() != "!!str" {
			return fmt.Errorf("line %d: sidebar path must be a string, got %s", value.Line, value.ShortTag())
		}
		*s = PathItem(value.Value)
		return nil
	case yaml.SequenceNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: sidebar pair must have exactly two elements [path, title], got %d", value.Line, len(value.Content))
		}
		for _, el := range value.Content {
			if el.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: sidebar pair elements must be strings", el.Line)
			}
		}
		*s = TitledItem(value.Content[0].Value, value.Content[1].Value)
		return nil
	case yaml.MappingNode:
		var g sidebarGroup
		if err := value.Decode(&g); err != nil {
			return err
		}
		*s = fromGroup(g)
		return nil
	default:
		return fmt.Errorf("line %d: sidebar entry must be a path, a [path, title] pair or a group", value.Line)
	}
}

// MarshalYAML writes the item back in the shape it was declared with.
func (s SidebarItem) MarshalYAML() (any, error) {
	switch s.Kind {
	case SidebarPath:
		return s.Path, nil
	case SidebarTitled:
		return flowSequence(s.Path, s.Title)
	case SidebarGroup:
		return s.toGroup(), nil
	default:
		return nil, fmt.Errorf("unknown sidebar item kind %d", s.Kind)
	}
}

// UnmarshalJSON accepts the three sidebar entry shapes.
func (s *SidebarItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty sidebar entry")
	}
	switch data[0] {
	case '"':
		var path string
		if err := json.Unmarshal(data, &path); err != nil {
			return err
		}
		*s = PathItem(path)
		return nil
	case '[':
		var pair []string
		if err := json.Unmarshal(data, &pair); err != nil {
			return fmt.Errorf("sidebar pair elements must be strings: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("sidebar pair must have exactly two elements [path, title], got %d", len(pair))
		}
		*s = TitledItem(pair[0], pair[1])
		return nil
	case '{':
		var g sidebarGroup
		if err := json.Unmarshal(data, &g); err != nil {
			return err
		}
		extra, err := unmarshalExtra(data, reflect.TypeOf(g))
		if err != nil {
			return err
		}
		g.Extra = extra
		*s = fromGroup(g)
		return nil
	default:
		return fmt.Errorf("sidebar entry must be a path, a [path, title] pair or a group, got %s", data)
	}
}

// MarshalJSON writes the item back in the shape it was declared with.
func (s SidebarItem) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SidebarPath:
		return encodeJSON(s.Path)
	case SidebarTitled:
		return encodeJSON([]string{s.Path, s.Title})
	case SidebarGroup:
		return marshalWithExtra(s.toGroup(), s.Extra)
	default:
		return nil, fmt.Errorf("unknown sidebar item kind %d", s.Kind)
	}
}

// UnmarshalYAML decodes ['tag', {attr: value}] with an optional third content element.
func (h *HeadTag) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) < 1 || len(value.Content) > 3 {
		return fmt.Errorf("line %d: head entry must be [tag, attrs] or [tag, attrs, content]", value.Line)
	}
	tagNode := value.Content[0]
	if tagNode.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: head tag name must be a string", tagNode.Line)
	}
	out := HeadTag{Tag: tagNode.Value}
	if len(value.Content) > 1 {
		attrs := value.Content[1]
		if attrs.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: head attributes must be a mapping", attrs.Line)
		}
		out.Attrs = make(map[string]any, len(attrs.Content)/2)
		for i := 0; i+1 < len(attrs.Content); i += 2 {
			k, v := attrs.Content[i], attrs.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: head attribute %q must be a scalar", v.Line, k.Value)
			}
			var value any
			if err := v.Decode(&value); err != nil {
				return fmt.Errorf("line %d: head attribute %q: %w", v.Line, k.Value, err)
			}
			out.Attrs[k.Value] = value
		}
	}
	if len(value.Content) == 3 {
		content := value.Content[2]
		if content.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: head content must be a string", content.Line)
		}
		out.Content = content.Value
	}
	*h = out
	return nil
}

// MarshalYAML writes the tag as a flow sequence, matching how head lists are usually written.
func (h HeadTag) MarshalYAML() (any, error) {
	return flowSequence(h.values()...)
}

// UnmarshalJSON decodes ["tag", {"attr": "value"}] with an optional third content element.
func (h *HeadTag) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("head entry must be [tag, attrs]: %w", err)
	}
	if len(parts) < 1 || len(parts) > 3 {
		return fmt.Errorf("head entry must be [tag, attrs] or [tag, attrs, content], got %d elements", len(parts))
	}
	out := HeadTag{}
	if err := json.Unmarshal(parts[0], &out.Tag); err != nil {
		return fmt.Errorf("head tag name must be a string: %w", err)
	}
	if len(parts) > 1 {
		if err := json.Unmarshal(parts[1], &out.Attrs); err != nil {
			return fmt.Errorf("head attributes must be an object: %w", err)
		}
		for k, v := range out.Attrs {
			switch v.(type) {
			case map[string]any, []any:
				return fmt.Errorf("head attribute %q must be a scalar", k)
			}
		}
	}
	if len(parts) == 3 {
		if err := json.Unmarshal(parts[2], &out.Content); err != nil {
			return fmt.Errorf("head content must be a string: %w", err)
		}
	}
	*h = out
	return nil
}

// MarshalJSON writes the tag as a JSON array.
func (h HeadTag) MarshalJSON() ([]byte, error) {
	return encodeJSON(h.values())
}

func (h HeadTag) values() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	values := []any{h.Tag, attrs}
	if h.Content != "" {
		values = append(values, h.Content)
	}
	return values
}

func flowSequence(values ...any) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(values); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}
