package genevent

import (
	"errors"
	"fmt"
	"slices"
)

// SearchMode selects the candidate set of a Search.
type SearchMode int

const (
	// FindAll evaluates the predicate over all live particles of the event.
	FindAll SearchMode = iota

	// FindAllAncestors walks from the seed through production vertices and their incoming particles.
	FindAllAncestors

	// FindAllDescendants walks from the seed through end vertices and their outgoing particles.
	FindAllDescendants
)

// String provides the mode name for logging and debugging.
func (m SearchMode) String() string {
	switch m {
	case FindAll:
		return "find_all"
	case FindAllAncestors:
		return "find_all_ancestors"
	case FindAllDescendants:
		return "find_all_descendants"
	default:
		return "unknown"
	}
}

// SearchOption configures a Search.
type SearchOption func(*searchOptions)

type searchOptions struct {
	version    Version
	hasVersion bool
}

// AtVersion evaluates the search on the graph as it was live in version v instead of the current version.
func AtVersion(v Version) SearchOption {
	return func(o *searchOptions) {
		o.version = v
		o.hasVersion = true
	}
}

// Search is a point-in-time result set of a predicate query over an Event.
//
// Results are materialized once when the search is built; later mutations of the event are not
// reflected. NarrowDown only filters the materialized set.
type Search struct {
	mode      SearchMode
	predicate Predicate
	version   Version
	results   []*Particle
}

// FindParticles returns all particles live in the query version that match predicate, in barcode order.
func FindParticles(event *Event, predicate Predicate, options ...SearchOption) (*Search, error) {
	if event == nil {
		return nil, errors.Join(ErrInvalidQuerySeed, errors.New("event is nil"))
	}

	version, err := resolveSearchVersion(event, options)
	if err != nil {
		return nil, err
	}

	s := &Search{mode: FindAll, predicate: predicate, version: version}
	for _, p := range event.ParticlesAt(version) {
		if predicate.Match(p) {
			s.results = append(s.results, p)
		}
	}

	return s, nil
}

// FindAncestors returns all ancestors of seed that match predicate, in breadth-first order.
// The seed itself is never part of the result.
func FindAncestors(seed *Particle, predicate Predicate, options ...SearchOption) (*Search, error) {
	return findRelatives(seed, FindAllAncestors, predicate, options)
}

// FindDescendants returns all descendants of seed that match predicate, in breadth-first order.
// The seed itself is never part of the result.
func FindDescendants(seed *Particle, predicate Predicate, options ...SearchOption) (*Search, error) {
	return findRelatives(seed, FindAllDescendants, predicate, options)
}

// NarrowDown keeps only the results that also match extra and returns the search for chaining.
func (s *Search) NarrowDown(extra Predicate) *Search {
	s.results = slices.DeleteFunc(s.results, func(p *Particle) bool { return !extra.Match(p) })

	switch {
	case s.predicate.IsMatchAll():
		s.predicate = extra
	case extra.IsMatchAll():
	default:
		s.predicate = s.predicate.And(extra)
	}

	return s
}

// Results returns a copy of the current result sequence.
func (s *Search) Results() []*Particle {
	return slices.Clone(s.results)
}

func (s *Search) Len() int {
	return len(s.results)
}

// Predicate returns the effective predicate, including everything applied through NarrowDown.
func (s *Search) Predicate() Predicate {
	return s.predicate
}

func (s *Search) Mode() SearchMode {
	return s.mode
}

// Version returns the version the search was evaluated in.
func (s *Search) Version() Version {
	return s.version
}

func findRelatives(seed *Particle, mode SearchMode, predicate Predicate, options []SearchOption) (*Search, error) {
	if seed == nil {
		return nil, errors.Join(ErrInvalidQuerySeed, ErrNilEntity)
	}

	event := seed.event
	if event == nil {
		return nil, errors.Join(ErrInvalidQuerySeed, fmt.Errorf("%w: seed particle", ErrDetachedEntity))
	}

	version, err := resolveSearchVersion(event, options)
	if err != nil {
		return nil, err
	}

	s := &Search{mode: mode, predicate: predicate, version: version}

	visited := map[int]struct{}{seed.barcode: {}}
	queue := []*Particle{seed}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range relativesOf(event, current, mode, version) {
			if _, seen := visited[next.barcode]; seen {
				continue
			}

			visited[next.barcode] = struct{}{}
			queue = append(queue, next)

			if predicate.Match(next) {
				s.results = append(s.results, next)
			}
		}
	}

	return s, nil
}

// relativesOf returns the live direct parents or children of p, following a live vertex only.
func relativesOf(event *Event, p *Particle, mode SearchMode, version Version) []*Particle {
	barcode := p.endVertex
	if mode == FindAllAncestors {
		barcode = p.productionVertex
	}

	if barcode == 0 {
		return nil
	}

	vertex, ok := event.Vertex(barcode)
	if !ok || !vertex.IsLiveIn(version) {
		return nil
	}

	candidates := vertex.particlesOut
	if mode == FindAllAncestors {
		candidates = vertex.particlesIn
	}

	relatives := make([]*Particle, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.IsLiveIn(version) {
			relatives = append(relatives, candidate)
		}
	}

	return relatives
}

func resolveSearchVersion(event *Event, options []SearchOption) (Version, error) {
	o := searchOptions{}
	for _, option := range options {
		option(&o)
	}

	if !o.hasVersion {
		return event.currentVersion, nil
	}

	if err := event.checkVersion(o.version); err != nil {
		return 0, err
	}

	return o.version, nil
}
