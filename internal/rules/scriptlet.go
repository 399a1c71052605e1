package rules

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ScriptletPrefix is the call prefix that starts the content of scriptlet
// rules.
const ScriptletPrefix = "//scriptlet("

// Scriptlet contains the parsed name and arguments of a scriptlet call.
type Scriptlet struct {
	// Name is the scriptlet name, the first quoted argument of the call.
	Name string `json:"name"`

	// Args are the remaining arguments, in call order.
	Args []string `json:"args,omitempty"`
}

// ParseScriptlet parses scriptlet-call content of the form:
//
//	//scriptlet('name', 'arg1', ..., 'argN')
//
// Arguments are quoted with either single or double quotes, and the quote
// character may be backslash-escaped inside an argument.  content must start
// with [ScriptletPrefix].
func ParseScriptlet(content string) (s *Scriptlet, err error) {
	if !strings.HasPrefix(content, ScriptletPrefix) {
		return nil, fmt.Errorf("scriptlet call %q does not start with %q", content, ScriptletPrefix)
	}

	body := content[len(ScriptletPrefix):]
	if !strings.HasSuffix(body, ")") {
		return nil, fmt.Errorf("scriptlet call %q is not closed", content)
	}

	body = strings.TrimSpace(body[:len(body)-1])
	args, err := parseScriptletArgs(body)
	if err != nil {
		return nil, fmt.Errorf("scriptlet call %q: %w", content, err)
	}

	if len(args) == 0 || args[0] == "" {
		return nil, fmt.Errorf("scriptlet call %q has no name", content)
	}

	s = &Scriptlet{Name: args[0]}
	if len(args) > 1 {
		s.Args = args[1:]
	}

	return s, nil
}

// ParamsJSON returns the canonical JSON payload of the scriptlet parameters.
func (s *Scriptlet) ParamsJSON() (params string, err error) {
	data, err := json.Marshal(s)
	if err != nil {
		// Shouldn't happen, since the scriptlet only contains strings.
		return "", fmt.Errorf("encoding scriptlet params: %w", err)
	}

	return string(data), nil
}

// parseScriptletArgs parses the comma-separated quoted arguments of a
// scriptlet call body.  An empty body yields no arguments.
func parseScriptletArgs(body string) (args []string, err error) {
	i := 0
	for i < len(body) {
		i = skipSpaces(body, i)
		if i == len(body) {
			break
		}

		quote := body[i]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("unquoted argument at index %d", i)
		}

		var arg string
		arg, i, err = parseQuoted(body, i+1, quote)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		i = skipSpaces(body, i)
		if i < len(body) {
			if body[i] != ',' {
				return nil, fmt.Errorf("expected comma at index %d", i)
			}

			i++
		}
	}

	return args, nil
}

// parseQuoted reads a quoted argument from body starting at i, which must
// point just past the opening quote.  next points just past the closing one.
func parseQuoted(body string, i int, quote byte) (arg string, next int, err error) {
	var sb strings.Builder
	for ; i < len(body); i++ {
		c := body[i]
		switch c {
		case quote:
			return sb.String(), i + 1, nil
		case '\\':
			if i+1 < len(body) && (body[i+1] == quote || body[i+1] == '\\') {
				i++
				c = body[i]
			}

			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	return "", i, fmt.Errorf("unbalanced quote %q", quote)
}

// skipSpaces returns the index of the first non-space byte at or after i.
func skipSpaces(body string, i int) (next int) {
	for i < len(body) && body[i] == ' ' {
		i++
	}

	return i
}
