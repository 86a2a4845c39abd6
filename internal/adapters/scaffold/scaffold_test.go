package scaffold_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Khyonie/Wisteria/internal/adapters/scaffold"
	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports/mocks"
)

func newScaffolder(t *testing.T) *scaffold.Scaffolder {
	t.Helper()

	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return scaffold.NewScaffolder(logger)
}

func TestScaffolder_Create(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	root, err := newScaffolder(t).Create(parent, "demo", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "demo"), root)

	manifest, err := os.ReadFile(filepath.Join(root, domain.ManifestFileName))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `name = "demo"`)

	info, err := os.Stat(filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	metadata, err := os.ReadFile(domain.MetadataPath(root))
	require.NoError(t, err)
	assert.Contains(t, string(metadata), `current_configuration = "main"`)
}

func TestScaffolder_CreateRefusesExistingManifest(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	sc := newScaffolder(t)

	_, err := sc.Create(parent, "demo", false)
	require.NoError(t, err)

	_, err = sc.Create(parent, "demo", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProjectExists))
	assert.Contains(t, err.Error(), "demo")
}

func TestManifest_Golden(t *testing.T) {
	t.Parallel()
	g := goldie.New(t)

	g.Assert(t, "manifest_full", []byte(scaffold.Manifest("demo", false)))
	g.Assert(t, "manifest_minimal", []byte(scaffold.Manifest("demo", true)))
}

// The full starter manifest must itself parse as a valid project, or the
// first build after create would fail.
func TestManifest_StarterTargetsExpand(t *testing.T) {
	t.Parallel()

	expanded, err := domain.ExpandTarget(
		"targets/{configuration}/{project_name}-{version}.jar",
		domain.Project{Name: "demo", Version: "0.1.0"},
		"main",
	)
	require.NoError(t, err)
	assert.Equal(t, "targets/main/demo-0.1.0.jar", expanded)
}
