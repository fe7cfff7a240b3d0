package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"msgtools/internal/annotations"
	"msgtools/internal/catalog"
	"msgtools/internal/config"
	"msgtools/internal/diagnostics"
	"msgtools/internal/model"
	"msgtools/internal/provider"
	"msgtools/internal/skeleton"
	"msgtools/internal/telemetry"
	"msgtools/internal/typemodel"
)

// capabilityKeys maps each capability to the config key that selects its
// implementation.
var capabilityKeys = []struct {
	capability provider.Capability
	key        string
}{
	{provider.TypeModel, config.KeyTypeModel},
	{provider.Annotations, config.KeyAnnotations},
	{provider.Diagnostics, config.KeyDiagnostics},
}

// newRegistry registers every backend and applies the configured preferences.
func newRegistry() *provider.Registry {
	r := provider.New()
	typemodel.Register(r)
	annotations.Register(r)
	diagnostics.Register(r)
	for _, ck := range capabilityKeys {
		if name := viper.GetString(ck.key); name != "" {
			r.Prefer(ck.capability, name)
		}
	}
	return r
}

// session is the resolved backend set and option map of one command run.
type session struct {
	loader      typemodel.Loader
	annotations annotations.Annotations
	reporter    diagnostics.Reporter
	resolver    *catalog.Resolver
	options     map[string]string
}

func openSession() (*session, error) {
	overrides, err := config.ParseOverrides(optionOverrides)
	if err != nil {
		return nil, err
	}

	r := newRegistry()

	loader, err := provider.Get[typemodel.Loader](r, provider.TypeModel)
	if err != nil {
		return nil, err
	}
	if pl, ok := loader.(*typemodel.PackagesLoader); ok {
		if tags := viper.GetString(config.KeyBuildTags); tags != "" {
			pl.BuildFlags = []string{"-tags=" + tags}
		}
	}
	ann, err := provider.Get[annotations.Annotations](r, provider.Annotations)
	if err != nil {
		return nil, err
	}
	rep, err := provider.Get[diagnostics.Reporter](r, provider.Diagnostics)
	if err != nil {
		return nil, err
	}

	telemetry.LogDebug("Resolved backends.", "typemodel", loader.Name(), "annotations", ann.Name())
	return &session{
		loader:      loader,
		annotations: ann,
		reporter:    rep,
		resolver:    catalog.NewResolver(ann),
		options:     config.Options(overrides),
	}, nil
}

// load reads the declarations matched by patterns and links enclosing types.
// Unresolvable enclosing names are reported and otherwise ignored.
func (s *session) load(ctx context.Context, patterns []string) ([]*model.TypeDeclaration, error) {
	dir := viper.GetString(config.KeyDir)
	if dir == "" {
		dir = "."
	}
	decls, err := s.loader.Load(ctx, dir, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load type declarations from %s: %w", dir, err)
	}
	for _, err := range typemodel.LinkEnclosing(decls, s.annotations.Enclosing) {
		s.reporter.Note("Ignoring unresolved enclosing type.", "error", err)
	}
	return decls, nil
}

// targets returns the bundle and logger interfaces among decls, once each.
func (s *session) targets(decls []*model.TypeDeclaration) []*model.TypeDeclaration {
	return skeleton.Targets(s.annotations, decls)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
