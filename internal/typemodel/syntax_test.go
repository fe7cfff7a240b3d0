package typemodel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgtools/internal/annotations"
	"msgtools/internal/model"
)

func TestSyntaxLoader_Load(t *testing.T) {
	root := writeModule(t, nil)

	decls, err := (&SyntaxLoader{}).Load(context.Background(), root, "./...")
	require.NoError(t, err)

	idx := byName(decls)
	assert.NotContains(t, idx, "example.com/app/ext.TestOnly", "test files are skipped")
	assert.NotContains(t, idx, "ignored.Hidden", "underscore directories are skipped")

	base := idx["example.com/app/msgs.Base"]
	require.NotNil(t, base)
	assert.True(t, base.Interface)
	assert.Equal(t, []string{" Base holds shared messages.", "msg:bundle"}, base.Directives)
	require.Len(t, base.Methods, 1)
	assert.Equal(t, "Greet", base.Methods[0].Name)

	child := idx["example.com/app/msgs.Child"]
	require.NotNil(t, child)
	require.Len(t, child.Embeds, 1)
	assert.Same(t, base, child.Embeds[0])
	require.Len(t, child.Methods, 2)
	assert.Equal(t, []string{"msg:message Bye"}, child.Methods[1].Directives, "trailing comments count")

	logger := idx["example.com/app/ext.Logger"]
	require.NotNil(t, logger)
	require.Len(t, logger.Embeds, 1, "renamed import resolves, unknown embed is dropped")
	assert.Same(t, child, logger.Embeds[0])

	notIface := idx["example.com/app/msgs.NotAnInterface"]
	require.NotNil(t, notIface)
	assert.False(t, notIface.Interface)
}

func TestSyntaxLoader_SingleDirectoryPattern(t *testing.T) {
	root := writeModule(t, nil)

	decls, err := (&SyntaxLoader{}).Load(context.Background(), root, "./msgs")
	require.NoError(t, err)

	for _, d := range decls {
		assert.Equal(t, "example.com/app/msgs", d.PackagePath)
	}
	assert.Len(t, decls, 4)
}

func TestSyntaxLoader_BadPattern(t *testing.T) {
	root := writeModule(t, nil)

	_, err := (&SyntaxLoader{}).Load(context.Background(), root, "./missing")
	assert.Error(t, err)
}

func TestSyntaxLoader_CanceledContext(t *testing.T) {
	root := writeModule(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&SyntaxLoader{}).Load(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImportPath_OutsideModule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "loose")
	assert.Equal(t, "loose", importPath("", "", dir))
}

func TestLinkEnclosing(t *testing.T) {
	root := writeModule(t, nil)
	decls, err := (&SyntaxLoader{}).Load(context.Background(), root, "./msgs")
	require.NoError(t, err)

	errs := LinkEnclosing(decls, annotations.Directive{}.Enclosing)
	assert.Empty(t, errs)

	idx := byName(decls)
	inner := idx["example.com/app/msgs.Inner"]
	assert.Same(t, idx["example.com/app/msgs.Child"], inner.Enclosing)
	assert.Equal(t, "Child$Inner", inner.NestedName())
}

func TestLinkEnclosing_Unresolved(t *testing.T) {
	root := writeModule(t, nil)
	decls, err := (&SyntaxLoader{}).Load(context.Background(), root, "./msgs")
	require.NoError(t, err)

	missing := func(d *model.TypeDeclaration) (string, bool) {
		return "Nowhere", d.Name == "Base"
	}
	errs := LinkEnclosing(decls, missing)
	require.Len(t, errs, 1)

	var unresolved *UnresolvedEnclosingError
	require.ErrorAs(t, errs[0], &unresolved)
	assert.Equal(t, "Nowhere", unresolved.Name)
}

func TestSyntaxLoader_ResolvesQualifiersByPackageClause(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/app/v2\n\ngo 1.22\n",
		"app.go": `package app

//msg:bundle
type Base interface {
	//msg:message Hello
	Greet() string
}
`,
		"go-shared/shared.go": `package shared

//msg:bundle
type Common interface {
	//msg:message Failed
	Fail() string
}
`,
		"msgs/child.go": `package msgs

import (
	"example.com/app/v2"
	"example.com/app/v2/go-shared"
)

//msg:bundle
type Child interface {
	app.Base
	shared.Common

	//msg:message Hi
	Greet() string
}
`,
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	decls, err := (&SyntaxLoader{}).Load(context.Background(), root)
	require.NoError(t, err)

	idx := byName(decls)
	base := idx["example.com/app/v2.Base"]
	common := idx["example.com/app/v2/go-shared.Common"]
	child := idx["example.com/app/v2/msgs.Child"]
	require.NotNil(t, base)
	require.NotNil(t, common)
	require.NotNil(t, child)

	require.Len(t, child.Embeds, 2)
	assert.Same(t, base, child.Embeds[0])
	assert.Same(t, common, child.Embeds[1])
}
