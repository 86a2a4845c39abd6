package maven_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khyonie/Wisteria/internal/adapters/maven"
	"github.com/Khyonie/Wisteria/internal/adapters/store"
	"github.com/Khyonie/Wisteria/internal/core/domain"
)

const gsonMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>com.google.code.gson</groupId>
  <artifactId>gson</artifactId>
  <versioning>
    <latest>2.11.0-beta1</latest>
    <release>2.10.1</release>
    <versions>
      <version>2.9.0</version>
      <version>2.10.1</version>
      <version>2.11.0-beta1</version>
    </versions>
  </versioning>
</metadata>`

// registry is a fake Maven repository serving fixed paths.
type registry struct {
	mu       sync.Mutex
	files    map[string]string
	requests []string
}

func newRegistry(files map[string]string) *registry {
	return &registry{files: files}
}

func (r *registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.requests = append(r.requests, req.URL.Path)
	body, ok := r.files[req.URL.Path]
	r.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}

func (r *registry) requestCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func gsonDep(registryURL, version string) domain.Dependency {
	return domain.Dependency{
		Name:       "gson",
		Kind:       domain.SourceRegistryArtifact,
		Registry:   registryURL,
		GroupID:    "com.google.code.gson",
		ArtifactID: "gson",
		Version:    version,
	}
}

func TestSource_Kind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.SourceRegistryArtifact, maven.NewSource(store.NewStore()).Kind())
}

func TestSource_Resolve_PinnedVersion(t *testing.T) {
	t.Parallel()

	reg := newRegistry(map[string]string{
		"/com/google/code/gson/gson/2.10.1/gson-2.10.1.jar": "gson-bytes",
	})
	server := httptest.NewServer(reg)
	defer server.Close()

	artifacts := store.NewStore()
	src := maven.NewSource(artifacts)
	root := t.TempDir()

	resolved, err := src.Resolve(context.Background(), root, gsonDep(server.URL, "2.10.1"), false)
	require.NoError(t, err)
	assert.Equal(t, "gson", resolved.Name)
	assert.Equal(t, "2.10.1", resolved.Version)
	require.Len(t, resolved.Paths, 1)
	assert.Equal(t, artifacts.Path(root, "com.google.code.gson/gson/2.10.1/gson.jar"), resolved.Paths[0])

	data, err := os.ReadFile(resolved.Paths[0])
	require.NoError(t, err)
	assert.Equal(t, "gson-bytes", string(data))

	// A pinned warm entry never touches the registry again.
	_, err = src.Resolve(context.Background(), root, gsonDep(server.URL, "2.10.1"), false)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.requestCount())
}

func TestSource_Resolve_UnpinnedPicksLatestStable(t *testing.T) {
	t.Parallel()

	reg := newRegistry(map[string]string{
		"/com/google/code/gson/gson/maven-metadata.xml":     gsonMetadata,
		"/com/google/code/gson/gson/2.10.1/gson-2.10.1.jar": "stable-bytes",
	})
	server := httptest.NewServer(reg)
	defer server.Close()

	artifacts := store.NewStore()
	src := maven.NewSource(artifacts)
	root := t.TempDir()

	resolved, err := src.Resolve(context.Background(), root, gsonDep(server.URL, ""), false)
	require.NoError(t, err)

	// The prerelease 2.11.0-beta1 loses to the stable 2.10.1.
	assert.Equal(t, "2.10.1", resolved.Version)
	assert.Equal(t, artifacts.Path(root, "com.google.code.gson/gson/latest/gson.jar"), resolved.Paths[0])
	assert.Equal(t, 2, reg.requestCount())

	data, err := os.ReadFile(resolved.Paths[0])
	require.NoError(t, err)
	assert.Equal(t, "stable-bytes", string(data))

	// Warm latest entry: no version check, no download, version reported
	// as the cache marker.
	again, err := src.Resolve(context.Background(), root, gsonDep(server.URL, ""), false)
	require.NoError(t, err)
	assert.Equal(t, domain.LatestVersion, again.Version)
	assert.Equal(t, 2, reg.requestCount())
}

func TestSource_Resolve_RefreshMovesLatest(t *testing.T) {
	t.Parallel()

	reg := newRegistry(map[string]string{
		"/com/google/code/gson/gson/maven-metadata.xml":     gsonMetadata,
		"/com/google/code/gson/gson/2.10.1/gson-2.10.1.jar": "stable-bytes",
	})
	server := httptest.NewServer(reg)
	defer server.Close()

	artifacts := store.NewStore()
	src := maven.NewSource(artifacts)
	root := t.TempDir()

	_, err := src.Resolve(context.Background(), root, gsonDep(server.URL, ""), false)
	require.NoError(t, err)

	resolved, err := src.Resolve(context.Background(), root, gsonDep(server.URL, ""), true)
	require.NoError(t, err)
	assert.Equal(t, "2.10.1", resolved.Version)
	assert.Equal(t, 4, reg.requestCount())
}

func TestSource_Resolve_ClassifierAndNameOverride(t *testing.T) {
	t.Parallel()

	reg := newRegistry(map[string]string{
		"/io/netty/netty-all/4.1.0/netty-all-4.1.0-linux-x86_64.jar": "native-bytes",
	})
	server := httptest.NewServer(reg)
	defer server.Close()

	artifacts := store.NewStore()
	src := maven.NewSource(artifacts)
	root := t.TempDir()

	dep := domain.Dependency{
		Name:       "netty",
		Kind:       domain.SourceRegistryArtifact,
		Registry:   server.URL,
		GroupID:    "io.netty",
		ArtifactID: "netty-all",
		Version:    "4.1.0",
		Classifier: "linux-x86_64",
	}

	resolved, err := src.Resolve(context.Background(), root, dep, false)
	require.NoError(t, err)
	assert.Equal(t, artifacts.Path(root, "io.netty/netty-all/4.1.0/netty-all-linux-x86_64.jar"), resolved.Paths[0])
}

func TestSource_Resolve_NoStableVersion(t *testing.T) {
	t.Parallel()

	metadata := `<metadata><versioning><versions>
		<version>1.0.0-alpha</version>
		<version>1.0.0-beta2</version>
	</versions></versioning></metadata>`

	reg := newRegistry(map[string]string{
		"/com/google/code/gson/gson/maven-metadata.xml": metadata,
	})
	server := httptest.NewServer(reg)
	defer server.Close()

	src := maven.NewSource(store.NewStore())

	_, err := src.Resolve(context.Background(), t.TempDir(), gsonDep(server.URL, ""), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoStableVersion)
}

func TestSource_Resolve_UnknownCoordinate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(newRegistry(nil))
	defer server.Close()

	src := maven.NewSource(store.NewStore())

	_, err := src.Resolve(context.Background(), t.TempDir(), gsonDep(server.URL, ""), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestSource_Resolve_PinnedVersionMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(newRegistry(nil))
	defer server.Close()

	artifacts := store.NewStore()
	src := maven.NewSource(artifacts)
	root := t.TempDir()

	_, err := src.Resolve(context.Background(), root, gsonDep(server.URL, "9.9.9"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	assert.False(t, artifacts.Has(root, "com.google.code.gson/gson/9.9.9/gson.jar"))
}
