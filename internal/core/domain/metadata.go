package domain

import "time"

// BuildHistoryLimit caps the number of build durations kept in the metadata.
const BuildHistoryLimit = 30

// Metadata is the small per-project state file the tool keeps next to the
// manifest: the configuration selected by `switch`, and enough build history
// to skip an unchanged build and report an average build time. A missing
// metadata file is equivalent to the zero value.
type Metadata struct {
	CurrentConfiguration string
	LastBuildHash        string
	LastBuildUnix        int64
	BuildTimesMS         []int64
}

// RecordBuild updates the metadata after a successful build.
func (m *Metadata) RecordBuild(configuration, inputHash string, finished time.Time, elapsed time.Duration) {
	m.CurrentConfiguration = configuration
	m.LastBuildHash = inputHash
	m.LastBuildUnix = finished.Unix()

	m.BuildTimesMS = append(m.BuildTimesMS, elapsed.Milliseconds())
	if len(m.BuildTimesMS) > BuildHistoryLimit {
		m.BuildTimesMS = m.BuildTimesMS[len(m.BuildTimesMS)-BuildHistoryLimit:]
	}
}

// AverageBuildTime reports the mean of the recorded build durations, or zero
// when no build has completed yet.
func (m Metadata) AverageBuildTime() time.Duration {
	if len(m.BuildTimesMS) == 0 {
		return 0
	}

	var total int64
	for _, ms := range m.BuildTimesMS {
		total += ms
	}
	return time.Duration(total/int64(len(m.BuildTimesMS))) * time.Millisecond
}
