package annotations

import (
	"strings"

	"msgtools/internal/model"
)

// DirectiveName is the registry name of the Go-directive dialect.
const DirectiveName = "directive"

const directivePrefix = "msg:"

// Directive reads Go-style directives:
//
//	//msg:bundle
//	//msg:message Hello, %s
//	//msg:enclosing Outer
type Directive struct{}

func (Directive) Name() string { return DirectiveName }

func (Directive) Kind(decl *model.TypeDeclaration) model.Kind {
	return kindOf(decl.Directives, matchDirective)
}

func (Directive) Message(m model.Method) (string, bool) {
	return lookup(m.Directives, tagMessage, matchDirective)
}

func (Directive) Enclosing(decl *model.TypeDeclaration) (string, bool) {
	v, ok := lookup(decl.Directives, tagEnclosing, matchDirective)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// matchDirective matches "msg:<tag>" optionally followed by one space and a
// verbatim value.
func matchDirective(line, tag string) (string, bool) {
	rest, ok := strings.CutPrefix(line, directivePrefix+tag)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return rest[1:], true
}
