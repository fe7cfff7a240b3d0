package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"msgtools/internal/annotations"
	"msgtools/internal/model"
)

func iface(name string, embeds []*model.TypeDeclaration, methods ...model.Method) *model.TypeDeclaration {
	return &model.TypeDeclaration{
		PackagePath: "example.com/msgs",
		Name:        name,
		Interface:   true,
		Embeds:      embeds,
		Methods:     methods,
	}
}

func msg(name, template string) model.Method {
	return model.Method{Name: name, Directives: []string{"msg:message " + template}}
}

func plain(name string) model.Method {
	return model.Method{Name: name, Directives: []string{" " + name + " does things."}}
}

// countingAnnotations records how many times each method is inspected.
type countingAnnotations struct {
	annotations.Directive
	calls map[string]int
}

func (c *countingAnnotations) Message(m model.Method) (string, bool) {
	c.calls[m.Name]++
	return c.Directive.Message(m)
}

func TestResolve_ChildOverridesBase(t *testing.T) {
	base := iface("Base", nil, msg("greet", "Hello"))
	child := iface("Child", []*model.TypeDeclaration{base}, msg("greet", "Hi"), msg("bye", "Bye"))

	got := NewResolver(annotations.Directive{}).Resolve(child)

	assert.Equal(t, []Entry{{"greet", "Hi"}, {"bye", "Bye"}}, got.Entries())
}

func TestResolve_OverrideWinsAcrossManyAncestors(t *testing.T) {
	root := iface("Root", nil, msg("greet", "root"))
	mid1 := iface("Mid1", []*model.TypeDeclaration{root}, msg("greet", "mid1"))
	mid2 := iface("Mid2", []*model.TypeDeclaration{root}, msg("greet", "mid2"), msg("other", "o"))
	leaf := iface("Leaf", []*model.TypeDeclaration{mid1, mid2}, msg("greet", "leaf"))

	got := NewResolver(annotations.Directive{}).Resolve(leaf)

	v, _ := got.Get("greet")
	assert.Equal(t, "leaf", v)
	assert.Equal(t, []string{"greet", "other"}, got.Keys())
}

func TestResolve_Diamond(t *testing.T) {
	a := iface("A", nil, msg("greet", "Hello"), msg("shared", "from A"))
	b := iface("B", []*model.TypeDeclaration{a}, msg("b", "B"))
	c := iface("C", []*model.TypeDeclaration{a})
	diamond := iface("D", []*model.TypeDeclaration{b, c})
	single := iface("E", []*model.TypeDeclaration{b})

	ann := &countingAnnotations{calls: map[string]int{}}
	r := NewResolver(ann)

	gotDiamond := r.Resolve(diamond)
	assert.Equal(t, 1, ann.calls["greet"], "shared ancestor should be resolved once per top-level resolution")

	gotSingle := r.Resolve(single)
	assert.Equal(t, gotSingle.Entries(), gotDiamond.Entries())
}

func TestResolve_NonInterfaceIsEmpty(t *testing.T) {
	decl := &model.TypeDeclaration{
		Name:      "Config",
		Interface: false,
		Methods:   []model.Method{msg("greet", "Hello")},
	}

	got := NewResolver(annotations.Directive{}).Resolve(decl)
	assert.Equal(t, 0, got.Len())
}

func TestResolve_NonInterfaceAncestorContributesNothing(t *testing.T) {
	notIface := &model.TypeDeclaration{Name: "Impl", Methods: []model.Method{msg("x", "X")}}
	decl := iface("Msgs", []*model.TypeDeclaration{notIface}, msg("y", "Y"))

	got := NewResolver(annotations.Directive{}).Resolve(decl)
	assert.Equal(t, []string{"y"}, got.Keys())
}

func TestResolve_EmptyTemplateRecordedVerbatim(t *testing.T) {
	decl := iface("Msgs", nil,
		model.Method{Name: "empty", Directives: []string{"msg:message"}},
		model.Method{Name: "blank", Directives: []string{"msg:message    "}},
	)

	got := NewResolver(annotations.Directive{}).Resolve(decl)

	assert.Equal(t, []Entry{{"empty", ""}, {"blank", "   "}}, got.Entries())
}

func TestResolve_UnannotatedMethodsIgnored(t *testing.T) {
	base := iface("Base", nil, msg("close", "Closing"))
	child := iface("Child", []*model.TypeDeclaration{base}, plain("close"), plain("open"))

	got := NewResolver(annotations.Directive{}).Resolve(child)

	v, ok := got.Get("close")
	assert.True(t, ok)
	assert.Equal(t, "Closing", v, "an unannotated override does not erase the inherited message")
	_, ok = got.Get("open")
	assert.False(t, ok)
}

// Like-named methods of unrelated ancestors merge on the simple name alone;
// the later ancestor in declaration order wins.
func TestResolve_NameCollisionLastWriterWins(t *testing.T) {
	files := iface("Files", nil, msg("close", "File closed"), msg("open", "File opened"))
	sockets := iface("Sockets", nil, msg("close", "Socket closed"))
	both := iface("Both", []*model.TypeDeclaration{files, sockets})

	got := NewResolver(annotations.Directive{}).Resolve(both)

	assert.Equal(t, []Entry{{"close", "Socket closed"}, {"open", "File opened"}}, got.Entries())
}

func TestResolve_CycleIsSafe(t *testing.T) {
	a := iface("A", nil, msg("a", "A"))
	b := iface("B", []*model.TypeDeclaration{a}, msg("b", "B"))
	a.Embeds = []*model.TypeDeclaration{b}

	got := NewResolver(annotations.Directive{}).Resolve(a)
	assert.Equal(t, []string{"b", "a"}, got.Keys())
}

func TestResolve_FreshCatalogPerCall(t *testing.T) {
	decl := iface("Msgs", nil, msg("greet", "Hello"))
	r := NewResolver(annotations.Directive{})

	first := r.Resolve(decl)
	first.Set("extra", "x")
	second := r.Resolve(decl)

	assert.Equal(t, []string{"greet"}, second.Keys())
}

func TestResolve_MarkerDialect(t *testing.T) {
	decl := iface("Msgs", nil, model.Method{Name: "greet", Directives: []string{" +msg:message=Hello"}})

	got := NewResolver(annotations.Marker{}).Resolve(decl)
	v, _ := got.Get("greet")
	assert.Equal(t, "Hello", v)
}
