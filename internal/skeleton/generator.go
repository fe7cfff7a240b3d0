// Package skeleton writes skeletal translation files for bundle and logger
// declarations: every message key with its default template, ready for a
// translator.
package skeleton

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"msgtools/internal/annotations"
	"msgtools/internal/catalog"
	"msgtools/internal/diagnostics"
	"msgtools/internal/metrics"
	"msgtools/internal/model"
)

// Generator writes one skeleton file per top-level bundle or logger.
type Generator struct {
	// Root is the output root. Generation is a no-op when it is empty.
	Root     string
	Format   Format
	Resolver *catalog.Resolver
	Reporter diagnostics.Reporter
	Metrics  *metrics.Metrics
	// Workers bounds parallel file generation; values below 2 run serially.
	Workers int
}

// FileDescriptor describes one file to produce.
type FileDescriptor struct {
	Decl    *model.TypeDeclaration
	Dir     string
	Name    string
	Catalog *catalog.Catalog
}

// Path returns the full file path.
func (fd FileDescriptor) Path() string {
	return filepath.Join(fd.Dir, fd.Name)
}

// FileError records a file that could not be written.
type FileError struct {
	File string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Summary reports the outcome of Generate. Both lists are sorted by path.
type Summary struct {
	Written []string
	Failed  []*FileError
}

// PackageDir returns root joined with the import path segments.
func PackageDir(root, pkgPath string) string {
	return filepath.Join(root, filepath.FromSlash(pkgPath))
}

// FileName returns "Outer$Inner" + ext for decl.
func FileName(decl *model.TypeDeclaration, ext string) string {
	return decl.NestedName() + ext
}

// Targets filters decls down to distinct interface declarations annotated as
// bundle or logger, keeping their order.
func (g *Generator) Targets(decls []*model.TypeDeclaration) []*model.TypeDeclaration {
	return Targets(g.Resolver.Annotations, decls)
}

// Targets is Generator.Targets for callers that have no Generator.
func Targets(a annotations.Annotations, decls []*model.TypeDeclaration) []*model.TypeDeclaration {
	seen := make(map[*model.TypeDeclaration]bool, len(decls))
	var out []*model.TypeDeclaration
	for _, d := range decls {
		if d == nil || seen[d] || !d.Interface || a.Kind(d) == model.KindNone {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Describe resolves decl and computes where its file goes.
func (g *Generator) Describe(decl *model.TypeDeclaration) FileDescriptor {
	cat := g.Resolver.Resolve(decl)
	g.Metrics.ObserveCatalog(cat.Len())
	return FileDescriptor{
		Decl:    decl,
		Dir:     PackageDir(g.Root, decl.PackagePath),
		Name:    FileName(decl, g.Format.Extension()),
		Catalog: cat,
	}
}

// Generate writes the skeleton of every target in decls. A failure on one
// file is reported and never stops the others; the returned error is only
// set when ctx is canceled.
func (g *Generator) Generate(ctx context.Context, decls []*model.TypeDeclaration) (Summary, error) {
	var sum Summary
	if g.Root == "" {
		return sum, nil
	}

	targets := g.Targets(decls)
	g.Reporter.Note("Generate skeletal translation files.", "format", g.Format.Name(), "root", g.Root, "types", len(targets))

	var mu sync.Mutex
	record := func(path string, ferr *FileError) {
		mu.Lock()
		defer mu.Unlock()
		if ferr != nil {
			sum.Failed = append(sum.Failed, ferr)
			return
		}
		sum.Written = append(sum.Written, path)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if g.Workers > 1 {
		eg.SetLimit(g.Workers)
	} else {
		eg.SetLimit(1)
	}
	for _, decl := range targets {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			fd := g.Describe(decl)
			record(fd.Path(), g.write(fd))
			return nil
		})
	}
	err := eg.Wait()

	sort.Strings(sum.Written)
	sort.Slice(sum.Failed, func(i, j int) bool { return sum.Failed[i].File < sum.Failed[j].File })
	return sum, err
}

// write produces one file. The handle is closed on every path; errors are
// reported here and returned only for the summary.
func (g *Generator) write(fd FileDescriptor) *FileError {
	format := g.Format.Name()
	fail := func(op, msg string, err error) *FileError {
		g.Reporter.Error(msg, err, "file", fd.Name, "dir", fd.Dir)
		g.Metrics.WriteFailed(format)
		return &FileError{File: fd.Path(), Op: op, Err: err}
	}

	if err := os.MkdirAll(fd.Dir, 0755); err != nil {
		return fail("mkdir", "Cannot create directory for generated skeletal translation file", err)
	}

	f, err := os.Create(fd.Path())
	if err != nil {
		return fail("create", "Cannot write generated skeletal translation file", err)
	}

	w := bufio.NewWriter(f)
	werr := g.Format.Write(w, fd.Catalog)
	if werr == nil {
		werr = w.Flush()
	}
	cerr := f.Close()

	if werr != nil {
		if cerr != nil {
			g.Reporter.Error("Cannot close generated skeletal translation file", cerr, "file", fd.Name, "dir", fd.Dir)
		}
		return fail("write", "Cannot write generated skeletal translation file", werr)
	}
	if cerr != nil {
		return fail("close", "Cannot close generated skeletal translation file", cerr)
	}

	g.Metrics.FileWritten(format)
	return nil
}
