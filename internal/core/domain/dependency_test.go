package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

func TestDependency_CacheKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dep  domain.Dependency
		want string
	}{
		{
			name: "remote url keyed by name",
			dep: domain.Dependency{
				Name: "commons",
				Kind: domain.SourceRemoteURL,
				URL:  "https://example.com/commons.jar",
			},
			want: "commons/commons.jar",
		},
		{
			name: "pinned registry artifact",
			dep: domain.Dependency{
				Name:       "guava",
				Kind:       domain.SourceRegistryArtifact,
				GroupID:    "com.google.guava",
				ArtifactID: "guava",
				Version:    "33.0.0",
			},
			want: "com.google.guava/guava/33.0.0/guava.jar",
		},
		{
			name: "unpinned registry artifact floats on latest",
			dep: domain.Dependency{
				Name:       "guava",
				Kind:       domain.SourceRegistryArtifact,
				GroupID:    "com.google.guava",
				ArtifactID: "guava",
			},
			want: "com.google.guava/guava/latest/guava.jar",
		},
		{
			name: "classifier lands in the file name",
			dep: domain.Dependency{
				Name:       "netty",
				Kind:       domain.SourceRegistryArtifact,
				GroupID:    "io.netty",
				ArtifactID: "netty-all",
				Version:    "4.1.0",
				Classifier: "linux-x86_64",
			},
			want: "io.netty/netty-all/4.1.0/netty-all-linux-x86_64.jar",
		},
		{
			name: "release asset keyed by owner repo tag",
			dep: domain.Dependency{
				Name:       "api",
				Kind:       domain.SourceReleaseAsset,
				Owner:      "Khyonie",
				Repository: "hicoria-hopper",
				Tag:        "v2.1",
			},
			want: "Khyonie/hicoria-hopper/v2.1/hicoria-hopper.jar",
		},
		{
			name: "unpinned release asset floats on latest",
			dep: domain.Dependency{
				Name:       "api",
				Kind:       domain.SourceReleaseAsset,
				Owner:      "Khyonie",
				Repository: "hopper",
			},
			want: "Khyonie/hopper/latest/hopper.jar",
		},
		{
			name: "local archives are not cached",
			dep: domain.Dependency{
				Name: "vendored",
				Kind: domain.SourceLocalArchive,
				Path: "lib/vendored.jar",
			},
			want: "",
		},
		{
			name: "path separators in names are sanitized",
			dep: domain.Dependency{
				Name: "../escape",
				Kind: domain.SourceRemoteURL,
				URL:  "https://example.com/x.jar",
			},
			want: ".._escape/.._escape.jar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.dep.CacheKey())
		})
	}
}

func TestDependency_RemoteFileName(t *testing.T) {
	t.Parallel()

	dep := domain.Dependency{
		Kind:       domain.SourceRegistryArtifact,
		GroupID:    "com.google.code.gson",
		ArtifactID: "gson",
	}

	assert.Equal(t, "gson-2.11.0.jar", dep.RemoteFileName("2.11.0"))

	dep.Classifier = "sources"
	assert.Equal(t, "gson-2.11.0-sources.jar", dep.RemoteFileName("2.11.0"))

	dep.ArtifactName = "gson-full"
	assert.Equal(t, "gson-full-sources.jar", dep.RemoteFileName("2.11.0"))
}

func TestDependency_AssetName(t *testing.T) {
	t.Parallel()

	dep := domain.Dependency{Kind: domain.SourceReleaseAsset, Repository: "hopper"}
	assert.Equal(t, "hopper", dep.AssetName())

	dep.Asset = "hopper-dist"
	assert.Equal(t, "hopper-dist", dep.AssetName())
}

func TestDependency_Pinned(t *testing.T) {
	t.Parallel()

	assert.Empty(t, domain.Dependency{Kind: domain.SourceRegistryArtifact}.Pinned())
	assert.Equal(t, "1.2", domain.Dependency{Kind: domain.SourceRegistryArtifact, Version: "1.2"}.Pinned())
	assert.Equal(t, "v3", domain.Dependency{Kind: domain.SourceReleaseAsset, Tag: "v3"}.Pinned())
	assert.Equal(t,
		"https://example.com/a.jar",
		domain.Dependency{Kind: domain.SourceRemoteURL, URL: "https://example.com/a.jar"}.Pinned(),
	)
}
