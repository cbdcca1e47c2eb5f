// Package selectors resolves semantic element descriptors into platform-native
// locators.
//
// Every screen contributes one Table per platform. A Resolver is bound to the
// run's platform and looks a descriptor up in the matching table, so call
// sites never branch on the platform themselves.
package selectors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/locator"
	"github.com/devicelab-dev/messenger-pages/pkg/platform"
)

// Descriptor identifies a UI element independently of the platform.
type Descriptor struct {
	Name   string
	Params []string
}

// D builds a descriptor.
func D(name string, params ...string) Descriptor {
	return Descriptor{Name: name, Params: params}
}

// Describe returns name(param, ...) for diagnostics.
func (d Descriptor) Describe() string {
	if len(d.Params) == 0 {
		return d.Name
	}
	return d.Name + "(" + strings.Join(d.Params, ", ") + ")"
}

// Template builds a locator from descriptor parameters.
type Template struct {
	Arity int
	Build func(params []string) locator.Locator
}

// Fixed is a template without parameters.
func Fixed(l locator.Locator) Template {
	return Template{Arity: 0, Build: func([]string) locator.Locator { return l }}
}

// Literal is a fixed template written in WebdriverIO selector syntax.
func Literal(s string) Template {
	return Fixed(locator.MustParse(s))
}

// One is a single-parameter template.
func One(fn func(string) locator.Locator) Template {
	return Template{Arity: 1, Build: func(p []string) locator.Locator { return fn(p[0]) }}
}

// Two is a two-parameter template.
func Two(fn func(a, b string) locator.Locator) Template {
	return Template{Arity: 2, Build: func(p []string) locator.Locator { return fn(p[0], p[1]) }}
}

// Three is a three-parameter template.
func Three(fn func(a, b, c string) locator.Locator) Template {
	return Template{Arity: 3, Build: func(p []string) locator.Locator { return fn(p[0], p[1], p[2]) }}
}

// Table maps descriptor names to templates for one platform.
type Table map[string]Template

// Registry holds the Android and iOS tables.
type Registry struct {
	Android Table
	IOS     Table
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Android: Table{}, IOS: Table{}}
}

// Add registers a descriptor on both platforms.
func (r *Registry) Add(name string, android, ios Template) *Registry {
	return r.AddAndroid(name, android).AddIOS(name, ios)
}

// AddAndroid registers a descriptor that only exists on Android.
func (r *Registry) AddAndroid(name string, t Template) *Registry {
	mustAdd(r.Android, platform.Android, name, t)
	return r
}

// AddIOS registers a descriptor that only exists on iOS.
func (r *Registry) AddIOS(name string, t Template) *Registry {
	mustAdd(r.IOS, platform.IOS, name, t)
	return r
}

func mustAdd(t Table, p platform.Platform, name string, tmpl Template) {
	if _, dup := t[name]; dup {
		panic(fmt.Sprintf("selectors: %s descriptor %q registered twice", p, name))
	}
	if tmpl.Build == nil {
		panic(fmt.Sprintf("selectors: %s descriptor %q has no builder", p, name))
	}
	t[name] = tmpl
}

// Table returns the table for p, or nil for an unsupported platform.
func (r *Registry) Table(p platform.Platform) Table {
	switch p {
	case platform.Android:
		return r.Android
	case platform.IOS:
		return r.IOS
	default:
		return nil
	}
}

// Resolver resolves descriptors for a single platform.
type Resolver struct {
	platform platform.Platform
	registry *Registry
}

// NewResolver returns a resolver bound to p.
func NewResolver(p platform.Platform, registry *Registry) *Resolver {
	return &Resolver{platform: p, registry: registry}
}

// Platform returns the platform the resolver is bound to.
func (r *Resolver) Platform() platform.Platform {
	return r.platform
}

// Resolve returns the locator for d on the resolver's platform.
func (r *Resolver) Resolve(d Descriptor) (locator.Locator, error) {
	return r.registry.Resolve(r.platform, d)
}

// MustResolve is Resolve for descriptors that are known to be registered.
func (r *Resolver) MustResolve(d Descriptor) locator.Locator {
	l, err := r.Resolve(d)
	if err != nil {
		panic(err)
	}
	return l
}

// Has reports whether d has a locator on the resolver's platform.
func (r *Resolver) Has(name string) bool {
	t := r.registry.Table(r.platform)
	_, ok := t[name]
	return ok
}

// Names lists the descriptors registered for the resolver's platform.
func (r *Resolver) Names() []string {
	return r.registry.Names(r.platform)
}

// Resolve returns the locator for d on platform p.
func (r *Registry) Resolve(p platform.Platform, d Descriptor) (locator.Locator, error) {
	table := r.Table(p)
	if table == nil {
		return locator.Locator{}, core.ErrUnsupportedPlatform.
			WithMessagef("unsupported platform %q", p).
			WithDetails(map[string]interface{}{"descriptor": d.Name})
	}

	tmpl, ok := table[d.Name]
	if !ok {
		return locator.Locator{}, core.ErrNoLocator.
			WithMessagef("%s has no locator on %s", d.Name, p)
	}
	if len(d.Params) != tmpl.Arity {
		return locator.Locator{}, core.ErrInvalidDescriptor.
			WithMessagef("%s takes %d parameter(s), got %d", d.Name, tmpl.Arity, len(d.Params))
	}

	loc := tmpl.Build(d.Params)
	if loc.IsZero() {
		return locator.Locator{}, core.ErrNoLocator.
			WithMessagef("%s resolved to an empty locator on %s", d.Describe(), p)
	}
	return loc, nil
}

// Names lists the descriptors registered for p, sorted.
func (r *Registry) Names(p platform.Platform) []string {
	table := r.Table(p)
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Arity returns the parameter count of a descriptor on either platform,
// or -1 when it is not registered.
func (r *Registry) Arity(name string) int {
	if t, ok := r.Android[name]; ok {
		return t.Arity
	}
	if t, ok := r.IOS[name]; ok {
		return t.Arity
	}
	return -1
}
