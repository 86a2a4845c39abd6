package jar

import (
	"strings"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

// signature identifies the tool in every archive manifest.
const signature = "Wisteria 3"

// renderManifest produces the META-INF/MANIFEST.MF bytes for an archive.
// The Class-Path attribute is folded across continuation lines the way the
// jar tool historically renders it.
func renderManifest(m domain.JarManifest) []byte {
	var b strings.Builder

	b.WriteString("Manifest-Version: 1.0\n")
	b.WriteString("Created-By: " + signature + "\n")
	if m.MainClass != "" {
		b.WriteString("Main-Class: " + m.MainClass + "\n")
	}
	if len(m.ClassPath) > 0 {
		b.WriteString(foldAttribute("Class-Path: " + strings.Join(m.ClassPath, " ")))
	}

	return []byte(b.String())
}

// foldAttribute chops an attribute line into a 71-byte head and 70-byte
// continuations, each continuation line starting with a space.
func foldAttribute(raw string) string {
	var b strings.Builder

	limit := 71
	for len(raw) > 0 {
		n := min(limit, len(raw))
		b.WriteString(raw[:n])
		b.WriteString("\n ")
		raw = raw[n:]
		limit = 70
	}

	folded := b.String()
	// The final continuation prefix never gets content; keep the newline.
	return folded[:len(folded)-1]
}
