// Package vanilla renders a saved form as plain HTML with Tailwind utility
// classes, ready to be embedded in a page. Markup is assembled directly with
// strings.Builder; user-authored copy (labels, placeholders, options) is
// stripped of markup before it reaches the output.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer implements render.Renderer with static HTML output.
type Renderer struct {
	policy *bluemonday.Policy
}

// New constructs the HTML renderer.
func New() *Renderer {
	return &Renderer{policy: bluemonday.StrictPolicy()}
}

var _ render.Renderer = (*Renderer)(nil)

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "vanilla" }

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render produces the full <form> markup for f, prefilled from options.Values
// and annotated with inline errors from options.Errors.
func (r *Renderer) Render(ctx context.Context, f form.Form, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	action := options.Action
	if action == "" {
		action = fmt.Sprintf("/api/forms/%d/submissions", f.ID)
	}
	method := options.Method
	if method == "" {
		method = "POST"
	}

	var b strings.Builder
	b.Grow(512 + 512*len(f.Fields))

	fmt.Fprintf(&b, `<form class="space-y-4" action=%q method=%q novalidate>`, html.EscapeString(action), html.EscapeString(method))
	b.WriteByte('\n')

	for _, fld := range f.Fields {
		r.writeField(&b, fld, options.Values[fld.ID], options.Errors[fld.ID])
	}

	if options.SubmitError != "" {
		b.WriteString(`<div class="text-sm text-red-700" role="alert">`)
		b.WriteString(r.policy.Sanitize(options.SubmitError))
		b.WriteString("</div>\n")
	}

	b.WriteString(`<button type="submit" class="w-full px-5 py-2.5 font-medium text-white bg-blue-600 hover:bg-blue-700 rounded-full">Submit</button>`)
	b.WriteString("\n</form>\n")

	return []byte(b.String()), nil
}

func (r *Renderer) writeField(b *strings.Builder, f field.Field, value, errMsg string) {
	b.WriteString(`<div class="space-y-1">`)
	b.WriteByte('\n')

	r.writeLabel(b, f)

	switch f.Type {
	case field.TypeText:
		r.writeInput(b, f, "text", value, errMsg, textAttrs(f.Text))
	case field.TypeNumber:
		r.writeInput(b, f, "number", value, errMsg, numberAttrs(f.Number))
	case field.TypeDate:
		r.writeInput(b, f, "date", value, errMsg, dateAttrs(f.Date))
	case field.TypeDropdown:
		r.writeSelect(b, f, value, errMsg)
	}

	if errMsg != "" {
		fmt.Fprintf(b, `<p id="error-%s" class="text-sm text-red-600" role="alert">%s</p>`,
			html.EscapeString(f.ID), r.policy.Sanitize(errMsg))
		b.WriteByte('\n')
	}
	r.writeHints(b, f)

	b.WriteString("</div>\n")
}

func (r *Renderer) writeLabel(b *strings.Builder, f field.Field) {
	fmt.Fprintf(b, `<label for="field-%s" class="block text-m font-medium text-gray-700">%s`,
		html.EscapeString(f.ID), r.policy.Sanitize(f.Label))
	if f.Required {
		b.WriteString(`<span class="text-red-500 ml-1">*</span>`)
	}
	b.WriteString("</label>\n")
}

func (r *Renderer) writeInput(b *strings.Builder, f field.Field, inputType, value, errMsg string, extra string) {
	fmt.Fprintf(b, `<input id="field-%s" name=%q type=%q`, html.EscapeString(f.ID), html.EscapeString(f.ID), inputType)
	if f.Placeholder != "" {
		fmt.Fprintf(b, ` placeholder=%q`, html.EscapeString(r.policy.Sanitize(f.Placeholder)))
	}
	if f.Required {
		b.WriteString(" required")
	}
	b.WriteString(extra)
	if value != "" {
		fmt.Fprintf(b, ` value=%q`, html.EscapeString(value))
	}
	writeControlClass(b, errMsg)
	b.WriteString(">\n")
}

func (r *Renderer) writeSelect(b *strings.Builder, f field.Field, value, errMsg string) {
	fmt.Fprintf(b, `<select id="field-%s" name=%q`, html.EscapeString(f.ID), html.EscapeString(f.ID))
	if f.Required {
		b.WriteString(" required")
	}
	writeControlClass(b, errMsg)
	b.WriteString(">\n")

	if value == "" {
		b.WriteString(`<option value="" disabled selected>Select an option</option>`)
	} else {
		b.WriteString(`<option value="" disabled>Select an option</option>`)
	}
	b.WriteByte('\n')

	if f.Dropdown != nil {
		for _, option := range f.Dropdown.Options {
			fmt.Fprintf(b, `<option value=%q`, html.EscapeString(option))
			if option == value {
				b.WriteString(" selected")
			}
			b.WriteByte('>')
			b.WriteString(r.policy.Sanitize(option))
			b.WriteString("</option>\n")
		}
	}
	b.WriteString("</select>\n")
}

// writeHints emits the assistive copy the original form showed under text
// inputs with length bounds.
func (r *Renderer) writeHints(b *strings.Builder, f field.Field) {
	if f.Type != field.TypeText || f.Text == nil {
		return
	}
	if f.Text.MinLength != nil {
		fmt.Fprintf(b, `<p class="text-xs text-gray-500">Minimum length: %d characters</p>`, *f.Text.MinLength)
		b.WriteByte('\n')
	}
	if f.Text.MaxLength != nil {
		fmt.Fprintf(b, `<p class="text-xs text-gray-500">Maximum length: %d characters</p>`, *f.Text.MaxLength)
		b.WriteByte('\n')
	}
}

func writeControlClass(b *strings.Builder, errMsg string) {
	if errMsg != "" {
		b.WriteString(` class="border p-2 rounded w-full border-red-500" aria-invalid="true"`)
		return
	}
	b.WriteString(` class="border p-2 rounded w-full border-gray-300"`)
}

func textAttrs(c *field.TextConstraints) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	if c.MinLength != nil {
		fmt.Fprintf(&b, ` minlength="%d"`, *c.MinLength)
	}
	if c.MaxLength != nil {
		fmt.Fprintf(&b, ` maxlength="%d"`, *c.MaxLength)
	}
	if c.Pattern != "" {
		fmt.Fprintf(&b, ` pattern=%q`, html.EscapeString(c.Pattern))
	}
	return b.String()
}

func numberAttrs(c *field.NumberConstraints) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	if c.Min != nil {
		fmt.Fprintf(&b, ` min=%q`, formatFloat(*c.Min))
	}
	if c.Max != nil {
		fmt.Fprintf(&b, ` max=%q`, formatFloat(*c.Max))
	}
	if c.Step != nil {
		fmt.Fprintf(&b, ` step=%q`, formatFloat(*c.Step))
	}
	return b.String()
}

func dateAttrs(c *field.DateConstraints) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	if c.MinDate != "" {
		fmt.Fprintf(&b, ` min=%q`, html.EscapeString(c.MinDate))
	}
	if c.MaxDate != "" {
		fmt.Fprintf(&b, ` max=%q`, html.EscapeString(c.MaxDate))
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
