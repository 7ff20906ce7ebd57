package inspect

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"polyfield/internal/catalog"
	"polyfield/internal/diagnostic"
	"polyfield/internal/pathres"
	"polyfield/internal/proxy"
	"polyfield/internal/scope"
)

// FieldError is the failure of a single field's render.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Inspector drives one Surface. It is not safe for concurrent use; give every
// surface its own Inspector.
type Inspector struct {
	surface Surface
	catalog *catalog.Catalog
	store   Store
	logger  *zap.Logger
	overlay *Overlay
	scope   *scope.Stack

	expanded map[string]bool
	last     diagnostic.Diagnostics
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithCatalog sets the variant catalog. Defaults to a catalog over catalog.Default.
func WithCatalog(c *catalog.Catalog) Option {
	return func(in *Inspector) { in.catalog = c }
}

// WithStore sets the store receiving commits.
func WithStore(s Store) Option {
	return func(in *Inspector) { in.store = s }
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *zap.Logger) Option {
	return func(in *Inspector) { in.logger = l }
}

// WithOverlay sets a configuration overlay.
func WithOverlay(o *Overlay) Option {
	return func(in *Inspector) { in.overlay = o }
}

// WithScope renders inside an existing writability stack, e.g. one shared with
// an enclosing read-only panel on the same surface.
func WithScope(s *scope.Stack) Option {
	return func(in *Inspector) { in.scope = s }
}

// New creates an inspector drawing to surface.
func New(surface Surface, opts ...Option) *Inspector {
	in := &Inspector{
		surface:  surface,
		store:    nopStore{},
		logger:   zap.NewNop(),
		scope:    &scope.Stack{},
		expanded: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(in)
	}

	if in.catalog == nil {
		in.catalog = catalog.New(catalog.WithLogger(in.logger))
	}

	return in
}

// Expanded reports the persisted foldout state of path.
func (in *Inspector) Expanded(path string) bool {
	return in.expanded[path]
}

// SetExpanded sets the foldout state of path for the next pass.
func (in *Inspector) SetExpanded(path string, expanded bool) {
	in.expanded[path] = expanded
}

// Diagnostics returns the diagnostics of the last pass.
func (in *Inspector) Diagnostics() diagnostic.Diagnostics {
	return in.last
}

type pass struct {
	root    reflect.Value
	diags   diagnostic.Diagnostics
	errs    []error
	changed bool
}

// Render runs one pass over root, which must be a non-nil pointer to a struct.
// Field failures do not stop the pass; they are joined into the returned error.
func (in *Inspector) Render(root any) error {
	rv := reflect.ValueOf(root)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("render: root must be a non-nil pointer to a struct, got %T", root)
	}

	p := &pass{root: rv}

	in.renderMembers(p, rv.Elem(), pathres.Path{}, 0)

	if p.changed {
		if err := in.store.Commit(); err != nil {
			in.report(p, diagnostic.DiagnosticError, diagnostic.CodeCommit, err.Error(), "", "")
			p.errs = append(p.errs, fmt.Errorf("commit: %w", err))
		}
	}

	in.last = p.diags

	return errors.Join(p.errs...)
}

// renderMembers renders the members of v reported at exactly depth. Deeper
// descendants belong to their own field's expansion.
func (in *Inspector) renderMembers(p *pass, v reflect.Value, path pathres.Path, depth int) bool {
	changed := false

	for _, child := range in.descendants(p, v, path, depth, nil) {
		if child.Depth > depth {
			continue
		}

		c, err := in.renderField(p, child)
		if err != nil {
			p.errs = append(p.errs, &FieldError{Path: child.Path.String(), Err: err})
		}

		changed = changed || c
	}

	return changed
}

func (in *Inspector) renderField(p *pass, fs *FieldState) (changed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			in.report(p, diagnostic.DiagnosticError, diagnostic.CodePanic,
				fmt.Sprint(r), ownerName(fs), fs.Path.String())
			changed, err = false, fmt.Errorf("render panicked: %v", r)
		}
	}()

	guard := in.scope.Enter(fs.Config.CanWrite)
	defer guard.Exit()

	label := fs.label()

	switch {
	case fs.Declared.Kind() == reflect.Interface:
		changed, err = in.renderPolymorphic(p, fs, label, guard.Effective)
	case isComposite(fs.Declared):
		changed = in.renderComposite(p, fs, label, guard.Effective)
	default:
		changed = in.renderLeaf(fs, label, guard.Effective)
	}

	if err != nil {
		return false, err
	}

	if changed {
		p.changed = true
	}

	if fs.Config.Proxy != "" && (changed || !fs.Config.CanWrite) {
		if err := in.synchronize(p, fs); err != nil {
			return changed, err
		}
	}

	return changed, nil
}

func (in *Inspector) renderLeaf(fs *FieldState, label Label, enabled bool) bool {
	editable := enabled && fs.Value.CanSet()

	target := fs.Value
	if !editable {
		target = detach(fs.Value)
	}

	return in.surface.Field(fs.Depth, label, target, editable) && editable
}

func (in *Inspector) renderComposite(p *pass, fs *FieldState, label Label, enabled bool) bool {
	if fs.Value.Kind() == reflect.Pointer && fs.Value.IsNil() {
		return in.renderLeaf(fs, label, enabled)
	}

	if !in.foldout(fs, label) {
		return false
	}

	target := fs.Value
	if target.Kind() == reflect.Pointer {
		target = target.Elem()
	}

	return in.renderMembers(p, target, fs.Path, fs.Depth+1)
}

func (in *Inspector) renderPolymorphic(p *pass, fs *FieldState, label Label, enabled bool) (bool, error) {
	variants := in.catalog.Resolve(fs.Declared)

	current := 0
	if !fs.Value.IsNil() {
		current = catalog.IndexOf(variants, fs.Value.Elem().Type()) + 1
	}

	options := make([]string, 0, len(variants)+1)
	options = append(options, NoneOption)

	for _, v := range variants {
		options = append(options, v.Name)
	}

	interactive := enabled && fs.Config.CanSwitchVariant && fs.Value.CanSet()
	selected := in.surface.Popup(fs.Depth, label, current, options, interactive)

	changed := false

	if interactive && selected != current {
		if selected < 0 || selected >= len(options) {
			in.report(p, diagnostic.DiagnosticWarning, diagnostic.CodeSelection,
				fmt.Sprintf("selection %d outside 0..%d", selected, len(options)-1),
				ownerName(fs), fs.Path.String())
		} else {
			if err := in.switchVariant(p, fs, variants, selected); err != nil {
				return false, err
			}

			changed = true
		}
	}

	// The disclosure shares the selector's row and has no caption of its own.
	if !in.foldout(fs, Label{Path: label.Path}) || fs.Value.IsNil() {
		return changed, nil
	}

	held := fs.Value.Elem()
	if held.Kind() == reflect.Pointer {
		if held.IsNil() {
			return changed, nil
		}

		return in.renderMembers(p, held.Elem(), fs.Path, fs.Depth+1) || changed, nil
	}

	// Value variants are not addressable inside an interface: edit a copy and store it back.
	cp := detach(held)
	if in.renderMembers(p, cp, fs.Path, fs.Depth+1) && fs.Value.CanSet() {
		fs.Value.Set(cp)
		changed = true
	}

	return changed, nil
}

// switchVariant stores the selected option in the field and commits it at once,
// so nothing nested is read from the previous variant's shape.
func (in *Inspector) switchVariant(p *pass, fs *FieldState, variants []catalog.Variant, selected int) error {
	prev := detach(fs.Value)

	if selected == 0 {
		fs.Value.Set(reflect.Zero(fs.Declared))
	} else {
		v := variants[selected-1]

		inst, how, err := in.catalog.Construct(v)
		if err != nil {
			in.report(p, diagnostic.DiagnosticError, diagnostic.CodeConstruction, err.Error(), ownerName(fs), fs.Path.String())
			return fmt.Errorf("switch to %s: %w", v.Name, err)
		}

		if how == catalog.ConstructedZero {
			in.report(p, diagnostic.DiagnosticInfo, diagnostic.CodeZeroConstruction,
				v.Name+" has no factory; constructed as zero value", ownerName(fs), fs.Path.String())
		}

		fs.Value.Set(inst)
	}

	if err := in.store.Commit(); err != nil {
		fs.Value.Set(prev)
		in.report(p, diagnostic.DiagnosticError, diagnostic.CodeCommit, err.Error(), ownerName(fs), fs.Path.String())
		return fmt.Errorf("commit variant switch: %w", err)
	}

	in.logger.Debug("variant switched",
		zap.String("path", fs.Path.String()),
		zap.String("variant", optionName(variants, selected)))

	return nil
}

// synchronize reconciles the field with its proxy accessor. Owner resolution
// failures fail the field; binding failures are diagnostics only.
func (in *Inspector) synchronize(p *pass, fs *FieldState) error {
	if fs.Name == "" {
		return nil
	}

	if err := in.store.Commit(); err != nil {
		in.report(p, diagnostic.DiagnosticError, diagnostic.CodeCommit, err.Error(), ownerName(fs), fs.Path.String())
		return fmt.Errorf("commit before proxy sync: %w", err)
	}

	owner, err := fs.Path.Owner(p.root)
	if err != nil {
		in.report(p, diagnostic.DiagnosticError, diagnostic.CodeOwnerUnresolved, err.Error(), ownerName(fs), fs.Path.String())
		return err
	}

	mode, err := proxy.Synchronize(owner, fs.Name, fs.Config.Proxy)
	if err != nil {
		code := diagnostic.CodeProxySync
		if errors.Is(err, proxy.ErrBinding) {
			code = diagnostic.CodeProxyBinding
		}

		in.report(p, diagnostic.DiagnosticWarning, code, err.Error(), owner.Type().String(), fs.Path.String())

		return nil
	}

	in.logger.Debug("proxy synchronized",
		zap.String("path", fs.Path.String()),
		zap.String("accessor", fs.Config.Proxy),
		zap.Stringer("mode", mode))

	return nil
}

func (in *Inspector) foldout(fs *FieldState, label Label) bool {
	key := fs.Path.String()
	expanded := in.surface.Foldout(fs.Depth, label, in.expanded[key])
	in.expanded[key] = expanded
	fs.Expanded = expanded

	return expanded
}

func (in *Inspector) report(p *pass, severity diagnostic.DiagnosticSeverity, code, message, owner, path string) {
	switch severity {
	case diagnostic.DiagnosticError:
		p.diags.AddError(code, message, owner, path)
	case diagnostic.DiagnosticWarning:
		p.diags.AddWarning(code, message, owner, path)
	default:
		p.diags.AddInfo(code, message, owner, path)
	}

	diagnostic.Log(in.logger, diagnostic.Diagnostic{Severity: severity, Code: code, Message: message, Owner: owner, FieldPath: path})
}

// detach returns an addressable copy of v.
func detach(v reflect.Value) reflect.Value {
	cp := reflect.New(v.Type()).Elem()
	if v.CanInterface() {
		cp.Set(v)
	}

	return cp
}

func ownerName(fs *FieldState) string {
	if !fs.Owner.IsValid() {
		return ""
	}

	return fs.Owner.Type().String()
}

func optionName(variants []catalog.Variant, selected int) string {
	if selected == 0 {
		return NoneOption
	}

	return variants[selected-1].Name
}
