package overlay

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTemplateField indicates a template referenced a field that has no
// substitution value. Callers treat this as non-fatal: the rendered file
// is simply not written.
var ErrTemplateField = errors.New("unknown template field")

// RenderTemplate substitutes every {field} placeholder in tmpl with the
// corresponding value from fields. Doubled braces ("{{" and "}}") emit a
// literal brace.
func RenderTemplate(tmpl string, fields map[string]string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unmatched '{' in template at offset %d", i)
			}
			name := tmpl[i+1 : i+end]
			value, ok := fields[name]
			if !ok {
				return "", fmt.Errorf("%w %q in template", ErrTemplateField, name)
			}
			sb.WriteString(value)
			i += end
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("unmatched '}' in template at offset %d", i)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}
