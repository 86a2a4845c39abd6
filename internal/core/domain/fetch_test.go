package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

func TestDependency_ShouldRefresh(t *testing.T) {
	t.Parallel()

	modes := []domain.FetchMode{
		domain.FetchBuild,
		domain.FetchSwitch,
		domain.FetchRefresh,
		domain.FetchUpdate,
	}

	tests := []struct {
		policy domain.UpdatePolicy
		want   map[domain.FetchMode]bool
	}{
		{
			policy: domain.UpdateAlways,
			want: map[domain.FetchMode]bool{
				domain.FetchBuild:   true,
				domain.FetchSwitch:  true,
				domain.FetchRefresh: true,
				domain.FetchUpdate:  true,
			},
		},
		{
			policy: domain.UpdateOnSwitchOrUpdate,
			want: map[domain.FetchMode]bool{
				domain.FetchBuild:   false,
				domain.FetchSwitch:  true,
				domain.FetchRefresh: false,
				domain.FetchUpdate:  true,
			},
		},
		{
			policy: domain.UpdateOnlyExplicit,
			want: map[domain.FetchMode]bool{
				domain.FetchBuild:   false,
				domain.FetchSwitch:  false,
				domain.FetchRefresh: false,
				domain.FetchUpdate:  true,
			},
		},
		{
			policy: domain.UpdateNever,
			want: map[domain.FetchMode]bool{
				domain.FetchBuild:   false,
				domain.FetchSwitch:  false,
				domain.FetchRefresh: false,
				domain.FetchUpdate:  false,
			},
		},
		{
			// Unset policy falls back to SwitchOrUpdate.
			policy: "",
			want: map[domain.FetchMode]bool{
				domain.FetchBuild:   false,
				domain.FetchSwitch:  true,
				domain.FetchRefresh: false,
				domain.FetchUpdate:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			t.Parallel()

			dep := domain.Dependency{Name: "dep", UpdatePolicy: tt.policy}
			for _, mode := range modes {
				assert.Equalf(t, tt.want[mode], dep.ShouldRefresh(mode),
					"policy %q mode %s", tt.policy, mode)
			}
		})
	}
}

func TestDependency_CacheImmutable(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.Dependency{Kind: domain.SourceRegistryArtifact, Version: "1.0"}.CacheImmutable())
	assert.False(t, domain.Dependency{Kind: domain.SourceRegistryArtifact}.CacheImmutable())
	assert.True(t, domain.Dependency{Kind: domain.SourceReleaseAsset, Tag: "v1"}.CacheImmutable())
	assert.False(t, domain.Dependency{Kind: domain.SourceReleaseAsset}.CacheImmutable())
	assert.False(t, domain.Dependency{Kind: domain.SourceRemoteURL, URL: "https://x/y.jar"}.CacheImmutable())
	assert.False(t, domain.Dependency{Kind: domain.SourceLocalArchive, Path: "lib"}.CacheImmutable())
}
