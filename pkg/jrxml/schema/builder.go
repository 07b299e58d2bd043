package schema

import (
	"fmt"
	"log/slog"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
)

const (
	// ReportNamespace is the canonical report namespace.
	ReportNamespace = "http://jasperreports.sourceforge.net/jasperreports"

	// ComponentsNamespace is the namespace of the list, table and barcode
	// components.
	ComponentsNamespace = "http://jasperreports.sourceforge.net/jasperreports/components"
)

// Namespaces selects the namespace URIs the rules are registered under.
type Namespaces struct {
	Report     string
	Components string
}

// DefaultNamespaces returns the standard namespaces.
func DefaultNamespaces() Namespaces {
	return Namespaces{Report: ReportNamespace, Components: ComponentsNamespace}
}

// scopes carries the two registration scopes every builder needs.
type scopes struct {
	report     digester.Scope
	components digester.Scope
}

// Extension registers additional components before the rule set is sealed.
// report and components are the scopes of the two namespaces.
type Extension func(report, components digester.Scope)

// NewRegistry builds and seals the component rule set, including the rules
// of any extensions.
func NewRegistry(ns Namespaces, logger *slog.Logger, extensions ...Extension) (*digester.Registry, error) {
	if ns.Report == "" || ns.Components == "" {
		return nil, fmt.Errorf("schema: both namespaces are required")
	}
	if logger == nil {
		logger = slog.Default().With("component", "jrxml.schema")
	}

	registry := digester.NewRegistry().WithLogger(logger)
	s := scopes{
		report:     registry.Scope(ns.Report),
		components: registry.Scope(ns.Components),
	}

	addComponentElementRules(s)
	addListRules(s)
	addTableRules(s)
	addBarcodeRules(s)
	for _, ext := range extensions {
		ext(s.report, s.components)
	}
	registry.SetDefaults(rawElementRule())

	if err := registry.Seal(); err != nil {
		return nil, fmt.Errorf("schema: invalid rule set: %w", err)
	}

	logger.Debug("component rules registered", "patterns", len(registry.Patterns()))
	return registry, nil
}

// MustNewRegistry is NewRegistry for the default namespaces. It panics if
// the rule set is invalid.
func MustNewRegistry() *digester.Registry {
	r, err := NewRegistry(DefaultNamespaces(), nil)
	if err != nil {
		panic(err)
	}
	return r
}
