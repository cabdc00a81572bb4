package cliutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/flowchartsman/handlebars/v3"
	"github.com/rs/zerolog"

	"github.com/hatsunemiku3939/cliutil/pkg/jsonschema"
)

const (
	// valueHelper prints a context value for interpolation.
	valueHelper = "_json"
	// emptyComment renders nothing; it keeps a "}" after a tag from being
	// read as part of the closing delimiter.
	emptyComment = "{{!}}"
)

// RenderMustacheJSON renders a mustache template with data and parses the
// result as JSON. Strings interpolate as-is and every other value as its JSON
// text, so a template can splice objects and lists in with triple braces:
// {"labels": {{{labels}}}}.
func RenderMustacheJSON(ctx context.Context, template string, data map[string]any) (any, error) {
	tpl, err := handlebars.Parse(mustacheTags(template))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	tpl.RegisterHelper(valueHelper, templateValue)

	rendered, err := tpl.Exec(coerce(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	zerolog.Ctx(ctx).Debug().Msgf("Rendered mustache template: %s", rendered)
	return LoadJSONString(ctx, rendered)
}

// mustacheTags rewrites mustache tags for the handlebars parser. A tag closes
// at its first "}}" ("}}}" for triple braces) and variable tags are routed
// through valueHelper. Unterminated tags are left for the parser to report.
func mustacheTags(template string) string {
	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		b.WriteString(rest[:open])
		rest = rest[open:]

		openDelim, closeDelim := "{{", "}}"
		if strings.HasPrefix(rest, "{{{") {
			openDelim, closeDelim = "{{{", "}}}"
		}
		end := strings.Index(rest[len(openDelim):], closeDelim)
		if end < 0 {
			break
		}
		body := rest[len(openDelim) : len(openDelim)+end]
		b.WriteString(rewriteTag(openDelim, body, closeDelim))

		rest = rest[len(openDelim)+end+len(closeDelim):]
		if strings.HasPrefix(rest, "}") {
			b.WriteString(emptyComment)
		}
	}
	b.WriteString(rest)
	return b.String()
}

func rewriteTag(open, body, closing string) string {
	name := strings.TrimSpace(body)
	if open == "{{" {
		switch {
		case strings.HasPrefix(name, "&"):
			name = strings.TrimSpace(name[1:])
			open, closing = "{{{", "}}}"
		case name == "" || name == "else" || strings.ContainsAny(name[:1], "#^/!>="):
			return open + body + closing
		}
	}
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return open + body + closing
	}
	return open + valueHelper + " " + name + closing
}

// templateValue is the interpolated form of a context value: strings as-is,
// missing values as nothing and everything else as JSON.
func templateValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	}
	out, err := jsonschema.Encode(v)
	if err != nil {
		return ""
	}
	return out
}

// jsonNull stands in for a null context value. It is falsy in sections and
// prints as null, unlike a missing key.
type jsonNull string

func (jsonNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func coerce(v any) any {
	switch node := v.(type) {
	case nil:
		return jsonNull("")
	case map[string]any:
		obj := make(map[string]any, len(node))
		for k, child := range node {
			obj[k] = coerce(child)
		}
		return obj
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = coerce(child)
		}
		return out
	default:
		return v
	}
}
