package catalog

import (
	"msgtools/internal/annotations"
	"msgtools/internal/model"
)

// Resolver builds catalogs using one annotation dialect.
type Resolver struct {
	Annotations annotations.Annotations
}

// NewResolver returns a Resolver reading messages with a.
func NewResolver(a annotations.Annotations) *Resolver {
	return &Resolver{Annotations: a}
}

// Resolve computes the catalog of decl. Embedded interfaces are merged first,
// depth-first and in declaration order, then decl's own annotated methods
// overwrite inherited keys. A declaration that is not an interface yields an
// empty catalog.
func (r *Resolver) Resolve(decl *model.TypeDeclaration) *Catalog {
	w := walk{
		ann:      r.Annotations,
		done:     make(map[*model.TypeDeclaration]*Catalog),
		visiting: make(map[*model.TypeDeclaration]bool),
	}
	return w.resolve(decl)
}

// walk memoizes ancestors for a single top-level resolution.
type walk struct {
	ann      annotations.Annotations
	done     map[*model.TypeDeclaration]*Catalog
	visiting map[*model.TypeDeclaration]bool
}

func (w *walk) resolve(decl *model.TypeDeclaration) *Catalog {
	if c, ok := w.done[decl]; ok {
		return c
	}
	c := New()
	if decl == nil || !decl.Interface || w.visiting[decl] {
		return c
	}
	w.visiting[decl] = true

	for _, parent := range decl.Embeds {
		c.Merge(w.resolve(parent))
	}
	for _, m := range decl.Methods {
		if tpl, ok := w.ann.Message(m); ok {
			c.Set(m.Name, tpl)
		}
	}

	delete(w.visiting, decl)
	w.done[decl] = c
	return c
}
