package typemodel

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"log/slog"

	"golang.org/x/tools/go/packages"

	"msgtools/internal/astutils"
	"msgtools/internal/model"
)

// PackagesName is the registry name of PackagesLoader.
const PackagesName = "packages"

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// PackagesLoader type-checks the matched packages with go/packages and
// resolves embedded interfaces through go/types, so aliases and renamed
// imports are followed exactly. It needs the go command at run time.
type PackagesLoader struct {
	// BuildFlags are passed to the go command, e.g. "-tags=integration".
	BuildFlags []string
}

func (*PackagesLoader) Name() string { return PackagesName }

// Load implements Loader. Patterns use go command syntax.
func (l *PackagesLoader) Load(ctx context.Context, dir string, patterns ...string) ([]*model.TypeDeclaration, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Dir:        dir,
		Mode:       loadMode,
		BuildFlags: l.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, defaultPatterns(patterns)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var loadErrs []error
	for _, p := range pkgs {
		for _, e := range p.Errors {
			loadErrs = append(loadErrs, e)
		}
	}
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(loadErrs...))
	}

	var decls []*model.TypeDeclaration
	byObj := make(map[*types.TypeName]*model.TypeDeclaration)
	type pending struct {
		decl   *model.TypeDeclaration
		info   *types.Info
		embeds []ast.Expr
	}
	var todo []pending

	for _, p := range pkgs {
		for i, f := range p.Syntax {
			source := ""
			if i < len(p.CompiledGoFiles) {
				source = p.CompiledGoFiles[i]
			}
			for _, ts := range astutils.TypeSpecs(f) {
				obj, ok := p.TypesInfo.Defs[ts.Spec.Name].(*types.TypeName)
				if !ok {
					continue
				}
				decl := &model.TypeDeclaration{
					PackagePath: p.PkgPath,
					Name:        obj.Name(),
					Directives:  astutils.DirectiveLines(ts.Doc, ts.Spec.Comment),
					Source:      source,
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
					todo = append(todo, pending{decl: decl, info: p.TypesInfo, embeds: embeds})
				}
				byObj[obj] = decl
				decls = append(decls, decl)
			}
		}
	}

	for _, t := range todo {
		for _, expr := range t.embeds {
			obj := embeddedObject(t.info, expr)
			if obj == nil {
				continue
			}
			parent, ok := byObj[obj]
			if !ok {
				slog.Debug("Embedded interface not loaded.", "type", t.decl.QualifiedName(), "embed", obj.Id())
				continue
			}
			t.decl.Embeds = append(t.decl.Embeds, parent)
		}
	}

	return decls, nil
}

// embeddedObject returns the declaring type name of an embedded element,
// looking through aliases and generic instantiation.
func embeddedObject(info *types.Info, expr ast.Expr) *types.TypeName {
	tv, ok := info.Types[expr]
	if !ok {
		return nil
	}
	named, ok := types.Unalias(tv.Type).(*types.Named)
	if !ok {
		return nil
	}
	return named.Origin().Obj()
}
