package docset

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML frontmatter
// delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter separates `---` delimited YAML frontmatter from the Markdown body.
// Documents without frontmatter return nil and the full content.
func splitFrontmatter(content []byte) (fm []byte, body []byte, err error) {
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}

	closeSeq := append(append(append([]byte{}, nl...), "---"...), nl...)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter on the very last line has no trailing newline.
		tail := append(append([]byte{}, nl...), "---"...)
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], nil
}

// pageFields are the frontmatter keys the sidebar cares about.
type pageFields struct {
	Title        string `yaml:"title"`
	SidebarDepth *int   `yaml:"sidebarDepth"`
}

func parseFrontmatter(fm []byte) (pageFields, error) {
	var f pageFields
	if len(bytes.TrimSpace(fm)) == 0 {
		return f, nil
	}
	err := yaml.Unmarshal(fm, &f)
	return f, err
}
