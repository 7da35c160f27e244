package narrative

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Meta is the YAML frontmatter recognized on narrative pages.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Weight      int    `yaml:"weight"`
	Draft       bool   `yaml:"draft"`
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// SplitFrontmatter separates `---` delimited YAML frontmatter from the body.
// Documents without frontmatter return a nil frontmatter and the full input.
func SplitFrontmatter(content []byte) (frontmatter, body []byte, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF has no trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-len("---")], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], nil
}

// ParseMeta decodes frontmatter into Meta. Empty input yields the zero value.
func ParseMeta(frontmatter []byte) (Meta, error) {
	var m Meta
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(frontmatter, &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
