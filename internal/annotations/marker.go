package annotations

import (
	"strings"

	"msgtools/internal/model"
)

// MarkerName is the registry name of the "+marker" dialect.
const MarkerName = "marker"

const markerPrefix = "+msg:"

// Marker reads kubebuilder-style markers:
//
//	// +msg:logger
//	// +msg:message=Hello, %s
//	// +msg:enclosing=Outer
type Marker struct{}

func (Marker) Name() string { return MarkerName }

func (Marker) Kind(decl *model.TypeDeclaration) model.Kind {
	return kindOf(decl.Directives, matchMarker)
}

func (Marker) Message(m model.Method) (string, bool) {
	return lookup(m.Directives, tagMessage, matchMarker)
}

func (Marker) Enclosing(decl *model.TypeDeclaration) (string, bool) {
	v, ok := lookup(decl.Directives, tagEnclosing, matchMarker)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func matchMarker(line, tag string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), markerPrefix+tag)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	if rest[0] != '=' {
		return "", false
	}
	return rest[1:], true
}
