// Package registry owns the compiled set of named templates and partials for
// one build. Identifiers are registered during the registration phase, the
// registry is frozen into a read-only View, and the render phase resolves
// identifiers through that view. The layout helper ("wrap") and partial
// inclusion are hosted here.
package registry

import (
	"bytes"
	stderrors "errors"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Options controls registry behavior for one build.
type Options struct {
	// Strict makes references to unknown context fields a hard render error
	// instead of an empty substitution.
	Strict bool
	// BaseURL feeds the absURL template function.
	BaseURL string
}

// Registry maps template identifiers to compiled templates. Registration is
// last-write-wins; a collision is logged because theme and content share one
// namespace. All methods are safe for concurrent use, but registration must
// be complete before rendering starts (use Freeze to hand the render phase a
// read-only view).
type Registry struct {
	mu        sync.RWMutex
	opts      Options
	parseFns  template.FuncMap
	templates map[string]*template.Template
}

// New creates an empty registry.
func New(opts Options) *Registry {
	r := &Registry{
		opts:      opts,
		templates: make(map[string]*template.Template),
	}
	r.parseFns = r.makeFuncMap()
	return r
}

// makeFuncMap builds the function map templates are parsed with. The wrap and
// partial entries are placeholders; Render rebinds them to a frame that knows
// the executing template set.
func (r *Registry) makeFuncMap() template.FuncMap {
	fns := baseFuncs(r.opts.BaseURL)
	fns["wrap"] = unboundHelper
	fns["partial"] = unboundHelper
	return fns
}

func unboundHelper(...any) (template.HTML, error) {
	return "", errors.New(errors.CategoryInternal, errors.SeverityFatal, "helper invoked outside a render")
}

// Register compiles source and stores it under id. An existing entry is
// overwritten (last registration wins, scan order = traversal order).
func (r *Registry) Register(id, source string) error {
	t, err := template.New(id).Funcs(r.parseFns).Parse(source)
	if err != nil {
		return errors.CompileFailed(err, id)
	}

	r.mu.Lock()
	_, collision := r.templates[id]
	r.templates[id] = t
	r.mu.Unlock()

	if collision {
		slog.Warn("Template identifier collision, keeping last registration", logfields.Template(id))
	}
	return nil
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// Clear resets the registry to empty so a long-lived process can rebuild it.
// Must not be called concurrently with in-flight renders.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates = make(map[string]*template.Template)
}

// Render resolves id and evaluates it against ctx.
func (r *Registry) Render(id string, ctx any) (string, error) {
	t := r.lookup(id)
	if t == nil {
		return "", errors.TemplateNotFound(id)
	}
	return r.exec(t, ctx)
}

// View is a read-only handle over a frozen registry for the render phase.
type View struct {
	r *Registry
}

// Freeze returns a read-only view. The caller is responsible for not
// registering or clearing while renders through the view are in flight.
func (r *Registry) Freeze() *View { return &View{r: r} }

// Render resolves id through the frozen registry.
func (v *View) Render(id string, ctx any) (string, error) { return v.r.Render(id, ctx) }

// Len returns the number of templates visible through the view.
func (v *View) Len() int { return v.r.Len() }

func (r *Registry) lookup(id string) *template.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates[id]
}

// exec clones the pristine compiled template, binds the helper functions to a
// fresh frame, and executes. Registered templates are never executed directly,
// which keeps them clonable and keeps renders independent of each other.
func (r *Registry) exec(t *template.Template, ctx any) (string, error) {
	c, err := t.Clone()
	if err != nil {
		return "", errors.RenderFailed(err, t.Name())
	}
	if r.opts.Strict {
		// Clone resets execution options, so strict mode must be applied
		// to every render's working copy. The option lives on the clone's
		// shared state, covering nested block execution too.
		c = c.Option("missingkey=error")
	}
	f := &frame{reg: r, t: c}
	c.Funcs(template.FuncMap{"wrap": f.wrap, "partial": f.partial})

	var buf bytes.Buffer
	if err := c.Execute(&buf, ctx); err != nil {
		return "", r.classify(err, t.Name())
	}
	return buf.String(), nil
}

// classify turns a template execution error into the structured render error
// the caller expects, preserving errors already classified further down.
func (r *Registry) classify(err error, id string) error {
	var se *errors.SiteError
	if !stderrors.As(err, &se) && r.opts.Strict && strings.Contains(err.Error(), "map has no entry for key") {
		return errors.UnknownField(err, id)
	}
	return errors.RenderFailed(err, id)
}
