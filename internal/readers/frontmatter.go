package readers

import (
	"bufio"
	"bytes"
	"errors"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

var headerLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*):\s*(.*)$`)

// splitFrontMatter separates `---` delimited YAML front matter from the body.
// If the document does not start with a delimiter, had is false and body is the input.
func splitFrontMatter(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// parseYAMLFrontMatter parses raw YAML into a map with lower-cased keys.
func parseYAMLFrontMatter(fm []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(fm) == 0 {
		return fields, nil
	}
	var raw map[string]any
	if err := yaml.Unmarshal(fm, &raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		fields[strings.ToLower(k)] = v
	}
	return fields, nil
}

// splitHeaderBlock reads "Key: value" lines at the top of a document up to the
// first blank line. When the first line is not a header, the body is unchanged.
func splitHeaderBlock(content []byte) (fields map[string]any, header []byte, body []byte) {
	fields = map[string]any{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	consumed := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineLen := len(line) + 1
		if strings.TrimSpace(line) == "" {
			if len(fields) > 0 {
				consumed += lineLen
			}
			break
		}
		m := headerLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			break
		}
		fields[strings.ToLower(m[1])] = strings.TrimSpace(m[2])
		consumed += lineLen
	}
	if len(fields) == 0 {
		return fields, nil, content
	}
	if consumed > len(content) {
		consumed = len(content)
	}
	return fields, content[:consumed], content[consumed:]
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
