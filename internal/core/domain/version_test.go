package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

func TestLatestStable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		versions []string
		want     string
		wantErr  bool
	}{
		{
			name:     "release beats newer prerelease",
			versions: []string{"1.0", "1.1", "2.0-beta", "2.0"},
			want:     "2.0",
		},
		{
			name:     "only prereleases",
			versions: []string{"1.0-alpha", "1.1-rc"},
			wantErr:  true,
		},
		{
			name:     "empty list",
			versions: nil,
			wantErr:  true,
		},
		{
			name:     "snapshot suffixes are prereleases",
			versions: []string{"3.2-SNAPSHOT", "3.1"},
			want:     "3.1",
		},
		{
			name:     "numeric segments compare numerically",
			versions: []string{"9.9", "10.0"},
			want:     "10.0",
		},
		{
			name:     "trailing zeros do not outrank",
			versions: []string{"1.0.0", "1.0.1"},
			want:     "1.0.1",
		},
		{
			name:     "single candidate",
			versions: []string{"0.4.2"},
			want:     "0.4.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := domain.LatestStable(tt.versions)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrNoStableVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLatestStable_OrderIndependent(t *testing.T) {
	t.Parallel()

	permutations := [][]string{
		{"1.0", "1.1", "2.0-beta", "2.0"},
		{"2.0", "2.0-beta", "1.1", "1.0"},
		{"2.0-beta", "1.0", "2.0", "1.1"},
	}

	for _, versions := range permutations {
		got, err := domain.LatestStable(versions)
		require.NoError(t, err)
		assert.Equal(t, "2.0", got)
	}
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1", "1.0.0", 0},
		{"1.0.1", "1", 1},
		{"1.2", "1.10", -1},
		{"2.0", "2.0-beta", 1},
		{"2.0-alpha", "2.0-beta", -1},
		{"1.4.2-SNAPSHOT", "1.4.2", -1},
		{"20240101", "20231231", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.CompareVersions(tt.a, tt.b), "compare %q %q", tt.a, tt.b)
		assert.Equal(t, -tt.want, domain.CompareVersions(tt.b, tt.a), "compare %q %q", tt.b, tt.a)
	}
}

func TestIsStableVersion(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.IsStableVersion("1.0"))
	assert.True(t, domain.IsStableVersion("10.2.3"))
	assert.False(t, domain.IsStableVersion("1.0-rc1"))
	assert.False(t, domain.IsStableVersion("1.0+build7"))
	assert.False(t, domain.IsStableVersion("2.0-M3"))
}
