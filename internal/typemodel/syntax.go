package typemodel

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"

	"msgtools/internal/astutils"
	"msgtools/internal/model"
)

// SyntaxName is the registry name of SyntaxLoader.
const SyntaxName = "syntax"

// SyntaxLoader parses source files with go/parser only. Embedded interfaces
// are resolved by name: a bare identifier refers to the same package and a
// qualified one goes through the file's imports. Nothing is type-checked.
type SyntaxLoader struct{}

func (*SyntaxLoader) Name() string { return SyntaxName }

type pendingEmbeds struct {
	decl  *model.TypeDeclaration
	exprs []ast.Expr
	file  *ast.File
}

// Load implements Loader. Patterns are directories relative to dir; a trailing
// "/..." includes subdirectories.
func (l *SyntaxLoader) Load(ctx context.Context, dir string, patterns ...string) ([]*model.TypeDeclaration, error) {
	dirs, err := expandPatterns(dir, defaultPatterns(patterns))
	if err != nil {
		return nil, err
	}

	modRoot, modPath := findModule(dir)
	fset := token.NewFileSet()

	var decls []*model.TypeDeclaration
	var pending []pendingEmbeds
	index := make(map[string]*model.TypeDeclaration)
	// Package clause names by import path, for unrenamed imports whose name
	// differs from the last path element.
	pkgNames := make(map[string]string)

	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkgPath := importPath(modRoot, modPath, d)

		files, err := goFiles(d)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", d, err)
		}
		for _, file := range files {
			f, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
			if err != nil {
				slog.Debug("Skipping unparsable file.", "file", file, "error", err)
				continue
			}
			if _, ok := pkgNames[pkgPath]; !ok {
				pkgNames[pkgPath] = f.Name.Name
			}
			for _, ts := range astutils.TypeSpecs(f) {
				decl := &model.TypeDeclaration{
					PackagePath: pkgPath,
					Name:        ts.Spec.Name.Name,
					Directives:  astutils.DirectiveLines(ts.Doc, ts.Spec.Comment),
					Source:      file,
				}
				if it, ok := ts.Spec.Type.(*ast.InterfaceType); ok {
					decl.Interface = true
					methods, embeds := astutils.InterfaceElements(it)
					for _, m := range methods {
						decl.Methods = append(decl.Methods, model.Method{
							Name:       m.Names[0].Name,
							Directives: astutils.DirectiveLines(m.Doc, m.Comment),
						})
					}
					pending = append(pending, pendingEmbeds{decl: decl, exprs: embeds, file: f})
				}
				decls = append(decls, decl)
				index[decl.QualifiedName()] = decl
			}
		}
	}

	imports := make(map[*ast.File]map[string]string)
	loadedName := func(path string) string { return pkgNames[path] }
	for _, p := range pending {
		names, ok := imports[p.file]
		if !ok {
			names = astutils.ImportNames(p.file, loadedName)
			imports[p.file] = names
		}
		for _, expr := range p.exprs {
			qualifier, name, _ := astutils.EmbeddedTypeName(expr)
			key := qualify(p.decl.PackagePath, name)
			if qualifier != "" {
				key = qualify(names[qualifier], name)
			}
			parent, ok := index[key]
			if !ok {
				slog.Debug("Embedded interface not loaded.", "type", p.decl.QualifiedName(), "embed", key)
				continue
			}
			p.decl.Embeds = append(p.decl.Embeds, parent)
		}
	}

	return decls, nil
}

var skipDirs = map[string]bool{
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
}

func skipDir(name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func expandPatterns(dir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, p := range patterns {
		base, recursive := strings.CutSuffix(filepath.ToSlash(p), "/...")
		if p == "..." {
			base, recursive = ".", true
		}
		root := filepath.Join(dir, filepath.FromSlash(base))
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", p, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pattern %s: not a directory", p)
		}
		if !recursive {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(walked string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if walked != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			add(walked)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", p, err)
		}
	}
	return dirs, nil
}

func goFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// findModule walks up from dir to the nearest go.mod and returns its
// directory and module path. Both are empty when there is none.
func findModule(dir string) (root, modPath string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", ""
	}
	for d := abs; ; d = filepath.Dir(d) {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		if err == nil {
			if p := modfile.ModulePath(data); p != "" {
				return d, p
			}
			return "", ""
		}
		if filepath.Dir(d) == d {
			return "", ""
		}
	}
}

// importPath derives the import path of dir from the enclosing module. Outside
// a module the directory name is used.
func importPath(modRoot, modPath, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	if modRoot == "" {
		return path.Base(filepath.ToSlash(abs))
	}
	rel, err := filepath.Rel(modRoot, abs)
	if err != nil || rel == "." {
		return modPath
	}
	return path.Join(modPath, filepath.ToSlash(rel))
}
