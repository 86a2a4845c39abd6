package jar

import "github.com/Khyonie/Wisteria/internal/core/domain"

// RenderManifestForTest exposes the manifest renderer to tests.
func RenderManifestForTest(m domain.JarManifest) []byte {
	return renderManifest(m)
}
