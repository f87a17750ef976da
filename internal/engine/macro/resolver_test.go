package macro_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/engine/macro"
	"go.trai.ch/zerr"
)

func newResolver() *macro.Resolver {
	doc := &domain.ProjectDocument{
		Path:          filepath.FromSlash("/ws/src/App/App.proj.yaml"),
		Name:          "App",
		RootNamespace: "Acme.App",
		Properties:    map[string]string{"Vendor": "Acme", "OutDir": "ignored"},
	}
	sol := &domain.SolutionDocument{
		Name:       "Acme",
		Path:       filepath.FromSlash("/ws/refgraph.work.yaml"),
		Properties: map[string]string{"Channel": "stable"},
	}
	cfg := macro.ConfigScope(macro.ConfigValues{
		Key:        domain.NewConfigurationKey("Debug", "x64"),
		OutDir:     filepath.FromSlash("/ws/src/App/bin/Debug"),
		TargetName: "App",
		TargetExt:  ".exe",
	})
	return macro.New(cfg, macro.ProjectScope(doc), macro.SolutionScope(sol))
}

func TestExpand(t *testing.T) {
	r := newResolver()

	tests := []struct {
		in   string
		want string
	}{
		{"$(ConfigurationName)/$(TargetFileName)", "Debug/App.exe"},
		{"$(configurationname)|$(PLATFORMNAME)", "Debug|x64"},
		{"$(OutDir)", filepath.FromSlash("/ws/src/App/bin/Debug/")},
		{"$(TargetPath)", filepath.FromSlash("/ws/src/App/bin/Debug/App.exe")},
		{"$(ProjectDir)lib", filepath.FromSlash("/ws/src/App/") + "lib"},
		{"$(ProjectExt)", ".proj.yaml"},
		{"$(RootNamespace).$(Vendor)", "Acme.App.Acme"},
		{"$(SolutionName)-$(Channel)", "Acme-stable"},
		{"no macros here", "no macros here"},
		{"unterminated $(Foo", "unterminated $(Foo"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.Expand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_ConfigurationScopeWins(t *testing.T) {
	got, err := newResolver().Expand("$(OutDir)")
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", got)
}

func TestExpand_NoRecursiveExpansion(t *testing.T) {
	r := macro.New(macro.Values{"self": "$(Self)", "other": "$(ConfigurationName)"})

	got, err := r.Expand("[$(Self)] [$(Other)]")
	require.NoError(t, err)
	assert.Equal(t, "[$(Self)] [$(ConfigurationName)]", got)
}

func TestExpand_Unsupported(t *testing.T) {
	_, err := newResolver().Expand("bin/$(Bogus)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMacro))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "Bogus", zErr.Metadata()["macro"])
}

func TestExpand_Unimplemented(t *testing.T) {
	_, err := newResolver().Expand("$(DevEnvDir)tools")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnimplementedMacro))
	assert.False(t, errors.Is(err, domain.ErrUnsupportedMacro))
}

func TestExpand_WithoutSolution(t *testing.T) {
	r := macro.New(macro.ConfigScope(macro.ConfigValues{Key: domain.NewConfigurationKey("Release", "")}), macro.SolutionScope(nil))

	got, err := r.Expand("$(ConfigurationName)")
	require.NoError(t, err)
	assert.Equal(t, "Release", got)

	_, err = r.Expand("$(SolutionDir)")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMacro))

	_, err = r.Expand("$(OutDir)")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMacro), "directory macros are absent until the output directory is known")
}
