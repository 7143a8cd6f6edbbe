// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"cmp"
	"slices"

	"github.com/shimgen/shimgen/pkg/catalogue"
)

type (
	// Override pins a plain package name to a replacement specifier.
	Override struct {
		Name   catalogue.PackageName
		Target string
	}

	// OverrideTable is a list of overrides sorted by name with unique names.
	OverrideTable []Override

	// TargetFunc maps a plain package name to its override specifier.
	TargetFunc func(name catalogue.PackageName) string
)

// RegistryTarget pins to the latest published namespaced package,
// e.g. "npm:@nolyfill/has@latest".
func RegistryTarget(namespace string) TargetFunc {
	return func(name catalogue.PackageName) string {
		return "npm:" + namespace + "/" + string(name) + "@latest"
	}
}

// WorkspaceTarget pins to the in-repo workspace package,
// e.g. "workspace:@nolyfill/has@*".
func WorkspaceTarget(namespace string) TargetFunc {
	return func(name catalogue.PackageName) string {
		return "workspace:" + namespace + "/" + string(name) + "@*"
	}
}

// BuildOverrides builds a table over names, sorting and de-duplicating them.
func BuildOverrides(names []catalogue.PackageName, target TargetFunc) OverrideTable {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	table := make(OverrideTable, 0, len(sorted))
	for _, name := range sorted {
		table = append(table, Override{Name: name, Target: target(name)})
	}
	return table
}

// Names returns the table keys in order.
func (t OverrideTable) Names() []catalogue.PackageName {
	names := make([]catalogue.PackageName, len(t))
	for i, o := range t {
		names[i] = o.Name
	}
	return names
}

// IsSorted reports whether names are strictly increasing.
func (t OverrideTable) IsSorted() bool {
	return slices.IsSortedFunc(t, func(a, b Override) int {
		return cmp.Compare(a.Name, b.Name)
	}) && len(slices.Compact(t.Names())) == len(t)
}

// Object converts the table to an ordered JSON object.
func (t OverrideTable) Object() *Object {
	obj := NewObject()
	for _, o := range t {
		obj.Set(string(o.Name), o.Target)
	}
	return obj
}
