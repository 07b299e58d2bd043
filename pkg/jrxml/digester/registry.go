package digester

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
)

// CatchAll is the pattern matching every element.
const CatchAll = "*"

// registration is one rule bound to a namespace.
type registration struct {
	namespace string
	rule      Rule
}

// patternRules holds every registration of one pattern, in order.
type patternRules struct {
	pattern       string
	suffix        string // for wildcard patterns: the part after "*/"
	registrations []registration
}

func (p *patternRules) filter(namespace string) []Rule {
	var out []Rule
	for _, reg := range p.registrations {
		if reg.namespace != "" && reg.namespace != namespace {
			continue
		}
		out = append(out, reg.rule)
	}
	return out
}

// Registry is an ordered table of pattern to rules. It is built once,
// sealed, and then shared read-only by every parse.
type Registry struct {
	mu        sync.Mutex
	sealed    atomic.Bool
	exact     map[string]*patternRules
	wildcards []*patternRules // sorted by descending suffix length once sealed
	catchAll  *patternRules
	defaults  []Rule
	composers map[string]string // namespace + pattern -> slot
	errs      *errors.ErrorList
	order     []string
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		exact:     make(map[string]*patternRules),
		composers: make(map[string]string),
		errs:      errors.NewErrorList(),
		logger:    slog.Default().With("component", "jrxml.digester"),
	}
}

// WithLogger sets the logger used for registration diagnostics.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Register appends rules to pattern for elements in namespace. An empty
// namespace matches elements in any namespace. Problems are recorded and
// reported by Seal.
func (r *Registry) Register(namespace, pattern string, rules ...Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		r.errs.Add(errors.NewRegistration("pattern %q registered after the registry was sealed", pattern))
		return
	}
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		r.errs.Add(errors.NewRegistration("empty pattern"))
		return
	}
	if strings.Contains(strings.TrimPrefix(pattern, "*/"), "*") {
		r.errs.Add(errors.NewRegistration("pattern %q: wildcard is only allowed as a leading \"*/\"", pattern))
		return
	}

	for _, rule := range rules {
		c, ok := rule.(Composer)
		if !ok {
			continue
		}
		key := namespace + " " + pattern
		if prev, dup := r.composers[key]; dup {
			r.errs.Add(errors.NewRegistration(
				"pattern %q in namespace %q already composes through %s, cannot add %s",
				pattern, namespace, prev, c.Slot()))
			return
		}
		r.composers[key] = c.Slot()
	}

	pr := r.lookupOrCreate(pattern)
	for _, rule := range rules {
		pr.registrations = append(pr.registrations, registration{namespace: namespace, rule: rule})
	}
}

func (r *Registry) lookupOrCreate(pattern string) *patternRules {
	switch {
	case pattern == CatchAll:
		if r.catchAll == nil {
			r.catchAll = &patternRules{pattern: pattern}
			r.order = append(r.order, pattern)
		}
		return r.catchAll
	case strings.HasPrefix(pattern, "*/"):
		for _, w := range r.wildcards {
			if w.pattern == pattern {
				return w
			}
		}
		pr := &patternRules{pattern: pattern, suffix: pattern[2:]}
		r.wildcards = append(r.wildcards, pr)
		r.order = append(r.order, pattern)
		return pr
	default:
		pr, ok := r.exact[pattern]
		if !ok {
			pr = &patternRules{pattern: pattern}
			r.exact[pattern] = pr
			r.order = append(r.order, pattern)
		}
		return pr
	}
}

// SetDefaults sets the rules applied to elements no pattern matches.
func (r *Registry) SetDefaults(rules ...Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		r.errs.Add(errors.NewRegistration("default rules set after the registry was sealed"))
		return
	}
	r.defaults = append([]Rule(nil), rules...)
}

// Scope returns a registration scope bound to namespace.
func (r *Registry) Scope(namespace string) Scope {
	return Scope{registry: r, namespace: namespace}
}

// Seal makes the registry read-only and returns every registration error
// recorded so far.
func (r *Registry) Seal() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sort.SliceStable(r.wildcards, func(i, j int) bool {
		return len(r.wildcards[i].suffix) > len(r.wildcards[j].suffix)
	})
	r.sealed.Store(true)
	r.logger.Debug("registry sealed", "patterns", len(r.order), "errors", r.errs.Count())

	return r.errs.ToError()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Err returns every registration error recorded so far, including those
// recorded after Seal.
func (r *Registry) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.errs.HasErrors() {
		return nil
	}
	snapshot := &errors.ErrorList{Errors: append([]*errors.Error(nil), r.errs.Errors...)}
	return snapshot
}

// Patterns returns the registered patterns in first-registration order.
func (r *Registry) Patterns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Match returns the rules to fire for an element at path in namespace.
// The result must not be modified.
func (r *Registry) Match(namespace, path string) []Rule {
	if pr, ok := r.exact[path]; ok {
		if rules := pr.filter(namespace); len(rules) > 0 {
			return rules
		}
	}

	for _, w := range r.wildcards {
		if !matchesSuffix(path, w.suffix) {
			continue
		}
		if rules := w.filter(namespace); len(rules) > 0 {
			return rules
		}
		break
	}

	if r.catchAll != nil {
		if rules := r.catchAll.filter(namespace); len(rules) > 0 {
			return rules
		}
	}
	return r.defaults
}

// matchesSuffix reports whether path ends with the given element suffix on
// an element boundary.
func matchesSuffix(path, suffix string) bool {
	if path == suffix {
		return true
	}
	return strings.HasSuffix(path, "/"+suffix)
}

// Scope registers rules under one namespace. Scopes are values: InNamespace
// returns a new scope and leaves the receiver unchanged.
type Scope struct {
	registry  *Registry
	namespace string
}

// Namespace returns the namespace rules are registered under.
func (s Scope) Namespace() string { return s.namespace }

// Registry returns the registry the scope writes to.
func (s Scope) Registry() *Registry { return s.registry }

// InNamespace returns a copy of the scope bound to namespace.
func (s Scope) InNamespace(namespace string) Scope {
	s.namespace = namespace
	return s
}

// Register appends rules to pattern in the scope's namespace.
func (s Scope) Register(pattern string, rules ...Rule) {
	s.registry.Register(s.namespace, pattern, rules...)
}
