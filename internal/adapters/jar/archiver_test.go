package jar_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khyonie/Wisteria/internal/adapters/jar"
	"github.com/Khyonie/Wisteria/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// buildJar assembles a dependency archive fixture from name/content pairs.
func buildJar(t *testing.T, path string, entries [][2]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))

	file, err := os.Create(path) //nolint:gosec // Test fixture under t.TempDir.
	require.NoError(t, err)
	writer := zip.NewWriter(file)
	for _, entry := range entries {
		w, err := writer.Create(entry[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(entry[1]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())
}

// readArchive returns the entry names in archive order and their contents.
func readArchive(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reader.Close())
	}()

	names := make([]string, 0, len(reader.File))
	contents := make(map[string]string, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)

		rc, err := file.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		contents[file.Name] = string(content)
	}

	return names, contents
}

func TestArchiver_Package(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	classes := filepath.Join(root, "bin")
	writeFile(t, filepath.Join(classes, "com", "example", "App.class"), "app bytes")
	writeFile(t, filepath.Join(classes, "com", "example", "util", "Helper.class"), "helper bytes")
	writeFile(t, filepath.Join(root, "README.md"), "readme")
	writeFile(t, filepath.Join(root, "res", "messages.properties"), "greeting=hi")

	spec := domain.ArchiveSpec{
		Manifest: domain.JarManifest{
			MainClass: "com.example.App",
			ClassPath: []string{".wisteria/cache/gson/gson.jar"},
		},
		ClassDir:    classes,
		IncludeRoot: root,
		Includes:    []string{"README.md", "res"},
	}

	out := filepath.Join(root, "targets", "main", "demo.jar")
	require.NoError(t, jar.NewArchiver().Package(spec, out))

	names, contents := readArchive(t, out)
	assert.Equal(t, []string{
		"META-INF/MANIFEST.MF",
		"com/example/App.class",
		"com/example/util/Helper.class",
		"README.md",
		"res/messages.properties",
	}, names)

	want := "Manifest-Version: 1.0\n" +
		"Created-By: Wisteria 3\n" +
		"Main-Class: com.example.App\n" +
		"Class-Path: .wisteria/cache/gson/gson.jar\n"
	assert.Equal(t, want, contents["META-INF/MANIFEST.MF"])
	assert.Equal(t, "app bytes", contents["com/example/App.class"])
	assert.Equal(t, "greeting=hi", contents["res/messages.properties"])
}

func TestArchiver_FixedTimestamps(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	classes := filepath.Join(root, "bin")
	writeFile(t, filepath.Join(classes, "App.class"), "app bytes")

	out := filepath.Join(root, "app.jar")
	require.NoError(t, jar.NewArchiver().Package(domain.ArchiveSpec{ClassDir: classes}, out))

	reader, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reader.Close())
	}()

	stamp := time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, file := range reader.File {
		assert.True(t, file.Modified.Equal(stamp), file.Name)
	}
}

func TestArchiver_Deterministic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	classes := filepath.Join(root, "bin")
	writeFile(t, filepath.Join(classes, "com", "example", "App.class"), "app bytes")
	writeFile(t, filepath.Join(root, "NOTICE"), "notice")
	buildJar(t, filepath.Join(root, "dep.jar"), [][2]string{
		{"com/dep/Lib.class", "lib bytes"},
	})

	spec := domain.ArchiveSpec{
		Manifest:    domain.JarManifest{MainClass: "com.example.App"},
		ClassDir:    classes,
		IncludeRoot: root,
		Includes:    []string{"NOTICE"},
		Shaded:      []string{filepath.Join(root, "dep.jar")},
	}

	first := filepath.Join(root, "first.jar")
	second := filepath.Join(root, "second.jar")
	require.NoError(t, jar.NewArchiver().Package(spec, first))
	require.NoError(t, jar.NewArchiver().Package(spec, second))

	firstBytes, err := os.ReadFile(first)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes)
}

func TestArchiver_ShadedFirstWriterWins(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	classes := filepath.Join(root, "bin")
	writeFile(t, filepath.Join(classes, "com", "dep", "A.class"), "local A")

	buildJar(t, filepath.Join(root, "one.jar"), [][2]string{
		{"META-INF/MANIFEST.MF", "Manifest-Version: 1.0\nMain-Class: dep.Main\n"},
		{"com/dep/A.class", "shaded A"},
		{"shared.txt", "from one"},
	})
	buildJar(t, filepath.Join(root, "two.jar"), [][2]string{
		{"com/dep/B.class", "shaded B"},
		{"shared.txt", "from two"},
	})

	spec := domain.ArchiveSpec{
		Manifest: domain.JarManifest{MainClass: "com.example.App"},
		ClassDir: classes,
		Shaded: []string{
			filepath.Join(root, "one.jar"),
			filepath.Join(root, "two.jar"),
		},
	}

	out := filepath.Join(root, "app.jar")
	require.NoError(t, jar.NewArchiver().Package(spec, out))

	names, contents := readArchive(t, out)
	assert.Equal(t, []string{
		"META-INF/MANIFEST.MF",
		"com/dep/A.class",
		"shared.txt",
		"com/dep/B.class",
	}, names)

	// The archive manifest is never displaced by a shaded one.
	assert.Contains(t, contents["META-INF/MANIFEST.MF"], "Main-Class: com.example.App")
	assert.Equal(t, "local A", contents["com/dep/A.class"])
	assert.Equal(t, "from one", contents["shared.txt"])
	assert.Equal(t, "shaded B", contents["com/dep/B.class"])
}

func TestArchiver_IncludeOutsideRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "LICENSE")
	writeFile(t, outside, "license text")

	spec := domain.ArchiveSpec{
		IncludeRoot: root,
		Includes:    []string{outside},
	}

	out := filepath.Join(root, "app.jar")
	require.NoError(t, jar.NewArchiver().Package(spec, out))

	names, contents := readArchive(t, out)
	assert.Equal(t, []string{"META-INF/MANIFEST.MF", "LICENSE"}, names)
	assert.Equal(t, "license text", contents["LICENSE"])
}

func TestArchiver_MissingInclude(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	spec := domain.ArchiveSpec{
		IncludeRoot: root,
		Includes:    []string{"missing.txt"},
	}

	err := jar.NewArchiver().Package(spec, filepath.Join(root, "app.jar"))

	require.ErrorContains(t, err, "failed to read include")
}

func TestArchiver_MissingClassDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	spec := domain.ArchiveSpec{ClassDir: filepath.Join(root, "bin")}

	err := jar.NewArchiver().Package(spec, filepath.Join(root, "app.jar"))

	require.ErrorContains(t, err, "failed to read class directory")
}

func TestArchiver_CorruptShadedDependency(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dep.jar"), "not a zip")

	spec := domain.ArchiveSpec{Shaded: []string{filepath.Join(root, "dep.jar")}}

	err := jar.NewArchiver().Package(spec, filepath.Join(root, "app.jar"))

	require.ErrorContains(t, err, "failed to open shaded dependency")
}

func TestArchiver_ReplacesExistingTarget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	classes := filepath.Join(root, "bin")
	writeFile(t, filepath.Join(classes, "App.class"), "app bytes")

	out := filepath.Join(root, "app.jar")
	writeFile(t, out, "stale content")

	require.NoError(t, jar.NewArchiver().Package(domain.ArchiveSpec{ClassDir: classes}, out))

	names, contents := readArchive(t, out)
	assert.Equal(t, []string{"META-INF/MANIFEST.MF", "App.class"}, names)
	assert.Equal(t, "app bytes", contents["App.class"])
}
