package typemodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"msgtools/internal/model"
)

// writeModule lays out a small module with a bundle hierarchy spread over two
// packages. overrides replaces or adds files by slash path.
func writeModule(t *testing.T, overrides map[string]string) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.22\n",
		"msgs/base.go": `package msgs

// Base holds shared messages.
//msg:bundle
type Base interface {
	//msg:message Hello
	Greet() string
}
`,
		"msgs/child.go": `package msgs

//msg:bundle
type Child interface {
	Base

	//msg:message Hi
	Greet() string
	Bye() string //msg:message Bye
}

//msg:enclosing Child
//msg:bundle
type Inner interface {
	//msg:message inner
	Ping() string
}

//msg:bundle
type NotAnInterface struct{}
`,
		"ext/ext.go": `package ext

import m "example.com/app/msgs"

//msg:logger
type Logger interface {
	m.Child
	Unknown
}
`,
		"ext/ext_test.go": `package ext

//msg:bundle
type TestOnly interface{}
`,
		"_ignored/x.go": `package ignored

type Hidden interface{}
`,
	}
	for name, content := range overrides {
		files[name] = content
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func byName(decls []*model.TypeDeclaration) map[string]*model.TypeDeclaration {
	out := make(map[string]*model.TypeDeclaration, len(decls))
	for _, d := range decls {
		out[d.QualifiedName()] = d
	}
	return out
}
