package registry

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// frame is the per-render binding for the helper functions. It carries the
// template set currently executing so wrap can resolve the enclosed block,
// and the registry so both helpers can resolve identifiers by name.
type frame struct {
	reg *Registry
	t   *template.Template
}

// wrap is the layout-transclusion helper. Invoked from a template as
//
//	{{define "main"}}...page body...{{end}}
//	{{wrap "theme/page" "main" .}}
//
// it renders the named block against the current context first, then renders
// the layout identified by the first argument with the result bound to a
// scoped "content" variable. The injected value is already-rendered markup,
// so it is typed template.HTML and bypasses escaping; everything else in the
// layout escapes normally. Layers compose outward-in: a layout may itself
// wrap its own block into another layout, and each level sees its caller's
// rendered body as "content".
func (f *frame) wrap(layout any, block string, ctx any) (template.HTML, error) {
	id, ok := layout.(string)
	if !ok {
		return "", errors.InvalidArgumentType(layout)
	}
	if block == "" {
		return "", errors.BlockContentRequired(f.t.Name())
	}
	if f.t.Lookup(block) == nil {
		return "", errors.BlockContentRequired(f.t.Name()).WithContext("block", block)
	}

	var buf bytes.Buffer
	if err := f.t.ExecuteTemplate(&buf, block, ctx); err != nil {
		return "", f.reg.classify(err, f.t.Name())
	}

	return f.reg.renderInto(id, ctx, template.HTML(buf.String()))
}

// partial renders another registered template with the given context and
// injects the result unescaped. An unknown identifier is a hard error
// regardless of strict mode.
func (f *frame) partial(id string, ctx any) (template.HTML, error) {
	t := f.reg.lookup(id)
	if t == nil {
		return "", errors.TemplateNotFound(id)
	}
	out, err := f.reg.exec(t, ctx)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// renderInto renders the layout identified by id with content bound as a
// scoped variable. The binding lives in a derived context frame that exists
// only for this render, so it cannot leak into sibling or parent renders and
// is torn down on every exit path.
func (r *Registry) renderInto(id string, ctx any, content template.HTML) (template.HTML, error) {
	t := r.lookup(id)
	if t == nil {
		return "", errors.TemplateNotFound(id)
	}
	out, err := r.exec(t, bindContent(ctx, content))
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// bindContent builds the derived context frame for a layout render: the
// caller's fields plus the reserved "content" variable. The caller's context
// is never mutated.
func bindContent(ctx any, content template.HTML) map[string]any {
	scoped := make(map[string]any)
	if m, ok := ctx.(map[string]any); ok {
		for k, v := range m {
			scoped[k] = v
		}
	}
	scoped["content"] = content
	return scoped
}
