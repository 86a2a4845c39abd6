package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// IsStableVersion reports whether a version string is a release. Any
// dash/plus-delimited suffix (2.0-beta, 1.4-SNAPSHOT, 3.1-rc2) marks a
// prerelease.
func IsStableVersion(v string) bool {
	return !strings.ContainsAny(v, "-+")
}

// LatestStable selects the highest version that is not a prerelease. The
// selection is a pure function of the candidate list: ties break by version
// precedence, never by list order. It fails with ErrNoStableVersion when
// every candidate is a prerelease.
func LatestStable(versions []string) (string, error) {
	best := ""
	for _, v := range versions {
		if v == "" || !IsStableVersion(v) {
			continue
		}
		if best == "" || CompareVersions(v, best) > 0 {
			best = v
		}
	}

	if best == "" {
		return "", zerr.With(ErrNoStableVersion, "candidates", strings.Join(versions, ", "))
	}
	return best, nil
}

// CompareVersions orders two version strings under standard precedence:
// dot-separated segments compare numerically when both are numeric and
// lexically otherwise, a longer chain with a non-zero remainder ranks
// higher, and a release outranks any prerelease of the same base.
func CompareVersions(a, b string) int {
	aBase, aPre := splitPrerelease(a)
	bBase, bPre := splitPrerelease(b)

	if c := compareSegments(aBase, bBase); c != 0 {
		return c
	}

	switch {
	case aPre == bPre:
		return 0
	case aPre == "":
		return 1
	case bPre == "":
		return -1
	default:
		return strings.Compare(aPre, bPre)
	}
}

// splitPrerelease separates the release base from the prerelease suffix.
func splitPrerelease(v string) (base, pre string) {
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		return v[:i], v[i+1:]
	}
	return v, ""
}

// compareSegments compares dot-separated version segments left to right.
func compareSegments(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}

	if len(as) > len(bs) && remainderSignificant(as[len(bs):]) {
		return 1
	}
	if len(bs) > len(as) && remainderSignificant(bs[len(as):]) {
		return -1
	}
	return 0
}

// compareSegment compares one segment pair, numerically when possible.
func compareSegment(a, b string) int {
	an, aErr := strconv.ParseInt(a, 10, 64)
	bn, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// remainderSignificant reports whether trailing segments change precedence.
// A run of zeros does not: 1.0.0 equals 1.
func remainderSignificant(segments []string) bool {
	for _, s := range segments {
		if n, err := strconv.ParseInt(s, 10, 64); err != nil || n != 0 {
			return true
		}
	}
	return false
}
