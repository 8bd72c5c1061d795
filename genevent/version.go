package genevent

import (
	"cmp"
	"slices"
)

// versionLog is the change record of one version.
type versionLog struct {
	name             string
	particles        []*Particle
	vertices         []*Vertex
	deletedParticles []*Particle
	deletedVertices  []*Vertex
}

// VersionRecord is a read-only snapshot of one version's change record.
type VersionRecord struct {
	index            Version
	name             string
	particles        []*Particle
	vertices         []*Vertex
	deletedParticles []*Particle
	deletedVertices  []*Vertex
}

func (vr VersionRecord) Index() Version {
	return vr.index
}

func (vr VersionRecord) Name() string {
	return vr.name
}

// Particles returns the particles introduced in this version in insertion order.
func (vr VersionRecord) Particles() []*Particle {
	return vr.particles
}

// Vertices returns the vertices introduced in this version in insertion order.
func (vr VersionRecord) Vertices() []*Vertex {
	return vr.vertices
}

// DeletedParticles returns the particles whose deletion was recorded in this version.
func (vr VersionRecord) DeletedParticles() []*Particle {
	return vr.deletedParticles
}

// DeletedVertices returns the vertices whose deletion was recorded in this version.
func (vr VersionRecord) DeletedVertices() []*Vertex {
	return vr.deletedVertices
}

// Versions returns the change records of all versions, version 0 first.
func (e *Event) Versions() []VersionRecord {
	records := make([]VersionRecord, len(e.versions))
	for i, changes := range e.versions {
		records[i] = VersionRecord{
			index:            Version(i),
			name:             changes.name,
			particles:        slices.Clone(changes.particles),
			vertices:         slices.Clone(changes.vertices),
			deletedParticles: slices.Clone(changes.deletedParticles),
			deletedVertices:  slices.Clone(changes.deletedVertices),
		}
	}

	return records
}

// VersionName returns the name of version v.
func (e *Event) VersionName(v Version) (string, error) {
	if err := e.checkVersion(v); err != nil {
		return "", err
	}

	return e.versions[v].name, nil
}

/***** Merged iteration *****/

// MergedParticles flattens the change logs of versions 0..current into one sequence of the
// particles live in the current version.
//
// Each change log is ordered by the absolute barcode of the production vertex (stable, so
// insertion order breaks ties) and the logs are merged by the same key; on equal keys the lower
// version wins. Particles without a production vertex come first.
func (e *Event) MergedParticles() []*Particle {
	logs := make([][]*Particle, 0, e.currentVersion+1)
	for _, changes := range e.versions[:e.currentVersion+1] {
		logs = append(logs, changes.particles)
	}

	return mergeLogs(
		logs,
		func(p *Particle) int { return abs(p.productionVertex) },
		func(p *Particle) bool { return p.IsLiveIn(e.currentVersion) },
	)
}

// MergedVertices flattens the change logs of versions 0..current into one sequence of the
// vertices live in the current version, keyed by the absolute vertex barcode.
func (e *Event) MergedVertices() []*Vertex {
	logs := make([][]*Vertex, 0, e.currentVersion+1)
	for _, changes := range e.versions[:e.currentVersion+1] {
		logs = append(logs, changes.vertices)
	}

	return mergeLogs(
		logs,
		func(v *Vertex) int { return abs(v.barcode) },
		func(v *Vertex) bool { return v.IsLiveIn(e.currentVersion) },
	)
}

// mergeLogs is a k-way merge of the given logs by key, keeping only the entries for which keep is true.
func mergeLogs[T any](logs [][]T, key func(T) int, keep func(T) bool) []T {
	sorted := make([][]T, len(logs))
	total := 0

	for i, log := range logs {
		sorted[i] = slices.DeleteFunc(slices.Clone(log), func(item T) bool { return !keep(item) })
		slices.SortStableFunc(sorted[i], func(a, b T) int { return cmp.Compare(key(a), key(b)) })
		total += len(sorted[i])
	}

	heads := make([]int, len(sorted))
	merged := make([]T, 0, total)

	for len(merged) < total {
		best := -1
		bestKey := 0

		for i, log := range sorted {
			if heads[i] >= len(log) {
				continue
			}

			if k := key(log[heads[i]]); best == -1 || k < bestKey {
				best = i
				bestKey = k
			}
		}

		merged = append(merged, sorted[best][heads[best]])
		heads[best]++
	}

	return merged
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
