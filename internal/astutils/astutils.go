package astutils

import (
	"go/ast"
	"go/token"
	"strings"
)

// TypeSpec is a type declaration together with its effective doc comment.
type TypeSpec struct {
	Spec *ast.TypeSpec
	Doc  *ast.CommentGroup
}

// TypeSpecs returns every top-level type spec of f. A lone "type X ..." keeps
// its doc on the GenDecl, so that doc is used when the spec has none.
func TypeSpecs(f *ast.File) []TypeSpec {
	var out []TypeSpec
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && !gd.Lparen.IsValid() {
				doc = gd.Doc
			}
			out = append(out, TypeSpec{Spec: ts, Doc: doc})
		}
	}
	return out
}

// DirectiveLines returns the text of every line comment in groups with the
// leading "//" removed and nothing else trimmed. Block comments are skipped.
func DirectiveLines(groups ...*ast.CommentGroup) []string {
	var lines []string
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if text, ok := strings.CutPrefix(c.Text, "//"); ok {
				lines = append(lines, strings.TrimRight(text, "\r"))
			}
		}
	}
	return lines
}

// InterfaceElements splits an interface body into named methods and embedded
// type expressions, both in source order. Type-set terms such as "~int | string"
// are neither and are dropped.
func InterfaceElements(it *ast.InterfaceType) (methods []*ast.Field, embeds []ast.Expr) {
	if it == nil || it.Methods == nil {
		return nil, nil
	}
	for _, field := range it.Methods.List {
		if len(field.Names) > 0 {
			methods = append(methods, field)
			continue
		}
		if _, _, ok := EmbeddedTypeName(field.Type); ok {
			embeds = append(embeds, field.Type)
		}
	}
	return methods, embeds
}

// EmbeddedTypeName extracts the optional package qualifier and the type name of
// an embedded interface element. It handles identifiers, qualified selectors,
// generic instantiations and parentheses.
func EmbeddedTypeName(expr ast.Expr) (qualifier, name string, ok bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		return "", e.Name, true
	case *ast.SelectorExpr:
		if pkg, isIdent := e.X.(*ast.Ident); isIdent {
			return pkg.Name, e.Sel.Name, true
		}
	case *ast.IndexExpr:
		return EmbeddedTypeName(e.X)
	case *ast.IndexListExpr:
		return EmbeddedTypeName(e.X)
	case *ast.ParenExpr:
		return EmbeddedTypeName(e.X)
	}
	return "", "", false
}

// ImportNames maps the local name of every import of f to its path. Blank and
// dot imports are omitted. The name of an unrenamed import comes from
// pkgName, falling back to DefaultPackageName when pkgName is nil or returns
// "".
func ImportNames(f *ast.File, pkgName func(path string) string) map[string]string {
	names := make(map[string]string, len(f.Imports))
	for _, imp := range f.Imports {
		path := strings.Trim(imp.Path.Value, "\"`")
		var name string
		switch {
		case imp.Name != nil:
			name = imp.Name.Name
		case pkgName != nil:
			name = pkgName(path)
		}
		if name == "" {
			name = DefaultPackageName(path)
		}
		if name == "_" || name == "." {
			continue
		}
		names[name] = path
	}
	return names
}

// DefaultPackageName guesses the package name of an import path that was not
// loaded: the last path element, skipping a "/vN" major version suffix and
// dropping a gopkg.in style ".vN" suffix.
func DefaultPackageName(path string) string {
	elems := strings.Split(path, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	if i := strings.LastIndex(name, ".v"); i > 0 && isDigits(name[i+2:]) {
		name = name[:i]
	}
	return name
}

func isMajorVersion(s string) bool {
	return len(s) > 1 && s[0] == 'v' && isDigits(s[1:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
