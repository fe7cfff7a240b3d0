package model

import "strings"

// Kind classifies an annotated type declaration.
type Kind int

const (
	KindNone Kind = iota
	KindBundle
	KindLogger
)

func (k Kind) String() string {
	switch k {
	case KindBundle:
		return "bundle"
	case KindLogger:
		return "logger"
	default:
		return "none"
	}
}

// Method is a method element declared directly in an interface body.
type Method struct {
	Name string
	// Directives holds the raw comment lines attached to the method, without the
	// leading "//".
	Directives []string
}

// TypeDeclaration is a read-only view of a named type produced by a type-model
// backend. Embeds and Enclosing point at other declarations of the same load.
type TypeDeclaration struct {
	PackagePath string
	Name        string
	Interface   bool
	Directives  []string
	Methods     []Method
	Embeds      []*TypeDeclaration
	Enclosing   *TypeDeclaration
	// Source is the file the declaration was read from, for diagnostics.
	Source string
}

// QualifiedName returns "import/path.Name".
func (d *TypeDeclaration) QualifiedName() string {
	if d.PackagePath == "" {
		return d.Name
	}
	return d.PackagePath + "." + d.Name
}

// EnclosingChain returns the enclosing declarations from outermost to innermost,
// excluding d itself. A cycle in the enclosing links stops the walk.
func (d *TypeDeclaration) EnclosingChain() []*TypeDeclaration {
	var chain []*TypeDeclaration
	seen := map[*TypeDeclaration]bool{d: true}
	for e := d.Enclosing; e != nil && !seen[e]; e = e.Enclosing {
		seen[e] = true
		chain = append([]*TypeDeclaration{e}, chain...)
	}
	return chain
}

// NestedName joins the enclosing chain and the simple name with '$',
// e.g. "Outer$Middle$Inner".
func (d *TypeDeclaration) NestedName() string {
	var sb strings.Builder
	for _, e := range d.EnclosingChain() {
		sb.WriteString(e.Name)
		sb.WriteByte('$')
	}
	sb.WriteString(d.Name)
	return sb.String()
}
