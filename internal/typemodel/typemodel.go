// Package typemodel loads Go type declarations into the backend-neutral
// model.TypeDeclaration form consumed by the catalog resolver.
package typemodel

import (
	"context"
	"fmt"

	"msgtools/internal/model"
	"msgtools/internal/provider"
)

// Loader reads the type declarations matched by patterns, relative to dir.
// Embedded interfaces that resolve to a loaded declaration are linked through
// TypeDeclaration.Embeds.
type Loader interface {
	Name() string
	Load(ctx context.Context, dir string, patterns ...string) ([]*model.TypeDeclaration, error)
}

// Register adds the syntax and packages loaders to r, syntax first.
func Register(r *provider.Registry) {
	r.Register(provider.TypeModel, SyntaxName, func() (any, error) { return &SyntaxLoader{}, nil })
	r.Register(provider.TypeModel, PackagesName, func() (any, error) { return &PackagesLoader{}, nil })
}

// EnclosingFunc returns the simple name of the type decl is nested in.
type EnclosingFunc func(decl *model.TypeDeclaration) (string, bool)

// UnresolvedEnclosingError reports an enclosing name with no matching type in
// the declaration's package.
type UnresolvedEnclosingError struct {
	Decl string
	Name string
}

func (e *UnresolvedEnclosingError) Error() string {
	return fmt.Sprintf("%s: enclosing type %q not found in package", e.Decl, e.Name)
}

// LinkEnclosing sets TypeDeclaration.Enclosing from the enclosing annotation of
// each declaration. Unresolved names are returned and leave Enclosing nil.
func LinkEnclosing(decls []*model.TypeDeclaration, enclosing EnclosingFunc) []error {
	index := make(map[string]*model.TypeDeclaration, len(decls))
	for _, d := range decls {
		index[d.QualifiedName()] = d
	}

	var errs []error
	for _, d := range decls {
		name, ok := enclosing(d)
		if !ok {
			continue
		}
		outer, found := index[qualify(d.PackagePath, name)]
		if !found || outer == d {
			errs = append(errs, &UnresolvedEnclosingError{Decl: d.QualifiedName(), Name: name})
			continue
		}
		d.Enclosing = outer
	}
	return errs
}

func qualify(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}
	return pkgPath + "." + name
}

func defaultPatterns(patterns []string) []string {
	if len(patterns) == 0 {
		return []string{"./..."}
	}
	return patterns
}
