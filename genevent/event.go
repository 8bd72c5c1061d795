package genevent

import (
	"errors"
	"fmt"
	"slices"
)

const defaultVersionName = "default"

// Event owns all particles and vertices of one simulated event, including deleted ones,
// together with the identity counters and the version history.
//
// Particles are stored at index barcode-1, vertices at index -barcode-1.
type Event struct {
	eventNumber    int
	particles      []*Particle
	vertices       []*Vertex
	versions       []versionLog
	currentVersion Version
	attributes     map[string]Attribute
	logger         Logger

	// Barcodes handed out before the last Release; they are never assigned again.
	releasedParticles int
	releasedVertices  int
}

// Option defines a functional option for configuring an Event.
type Option func(*Event)

// WithEventNumber sets the event number.
func WithEventNumber(number int) Option {
	return func(e *Event) {
		e.eventNumber = number
	}
}

// WithLogger sets the logger for the Event.
//
// Debug level: version cursor changes and soft deletions
// Warn level: rejected mutations (ownership conflicts, stale identities, invalid versions).
func WithLogger(logger Logger) Option {
	return func(e *Event) {
		e.logger = logger
	}
}

// NewEvent creates an empty Event holding only the implicit version 0.
func NewEvent(options ...Option) *Event {
	e := &Event{
		versions:   []versionLog{{name: defaultVersionName}},
		attributes: make(map[string]Attribute),
	}

	for _, option := range options {
		option(e)
	}

	return e
}

func (e *Event) EventNumber() int {
	return e.eventNumber
}

func (e *Event) SetEventNumber(number int) {
	e.eventNumber = number
}

/***** Mutation *****/

// AddParticle transfers ownership of p to the event and assigns the next particle barcode.
//
// Re-adding a particle the event already owns is a no-op.
// Returns ErrOwnershipConflict if p belongs to another event and ErrDuplicateIdentity if p
// still carries the barcode of a released event.
func (e *Event) AddParticle(p *Particle) error {
	if p == nil {
		return ErrNilEntity
	}

	if p.event == e {
		return nil
	}

	if err := e.checkAdoptable(p.event, p.barcode, entityParticle); err != nil {
		return err
	}

	e.adoptParticle(p)

	return nil
}

// AddVertex transfers ownership of v to the event, assigns the next vertex barcode and adopts
// every listed particle that is not owned yet.
//
// All preconditions are validated before anything is committed: if any listed particle belongs
// to another event, carries a stale barcode or is already linked to another vertex the event
// stays unchanged.
func (e *Event) AddVertex(v *Vertex) error {
	if v == nil {
		return ErrNilEntity
	}

	if v.event == e {
		return nil
	}

	if err := e.checkAdoptable(v.event, v.barcode, entityVertex); err != nil {
		return err
	}

	for _, p := range v.particlesIn {
		if err := e.checkLinkable(p, linkIncoming); err != nil {
			return err
		}
	}

	for _, p := range v.particlesOut {
		if err := e.checkLinkable(p, linkOutgoing); err != nil {
			return err
		}
	}

	e.adoptVertex(v)

	for _, p := range v.particlesIn {
		if p.event == nil {
			e.adoptParticle(p)
		}
	}

	for _, p := range v.particlesOut {
		if p.event == nil {
			e.adoptParticle(p)
		}
	}

	for _, p := range v.particlesIn {
		v.link(p, linkIncoming)
	}

	for _, p := range v.particlesOut {
		v.link(p, linkOutgoing)
	}

	return nil
}

// DeleteParticle marks p as deleted from the current version on.
// Links stay untouched and earlier versions keep seeing the particle.
func (e *Event) DeleteParticle(p *Particle) error {
	if p == nil {
		return ErrNilEntity
	}

	if err := e.checkOwned(p.event, p.barcode, entityParticle); err != nil {
		return err
	}

	if err := e.checkDeletable(p.versionCreated, p.barcode); err != nil {
		return err
	}

	if p.versionDeleted <= e.currentVersion {
		return nil
	}

	if p.versionDeleted != NeverDeleted {
		changes := &e.versions[p.versionDeleted]
		changes.deletedParticles = slices.DeleteFunc(changes.deletedParticles, func(q *Particle) bool { return q == p })
	}

	p.versionDeleted = e.currentVersion
	e.versions[e.currentVersion].deletedParticles = append(e.versions[e.currentVersion].deletedParticles, p)
	e.logDebug(logMsgParticleDeleted, logAttrBarcode, p.barcode, logAttrVersion, int(e.currentVersion))

	return nil
}

// DeleteVertex marks v as deleted from the current version on.
func (e *Event) DeleteVertex(v *Vertex) error {
	if v == nil {
		return ErrNilEntity
	}

	if err := e.checkOwned(v.event, v.barcode, entityVertex); err != nil {
		return err
	}

	if err := e.checkDeletable(v.versionCreated, v.barcode); err != nil {
		return err
	}

	if v.versionDeleted <= e.currentVersion {
		return nil
	}

	if v.versionDeleted != NeverDeleted {
		changes := &e.versions[v.versionDeleted]
		changes.deletedVertices = slices.DeleteFunc(changes.deletedVertices, func(w *Vertex) bool { return w == v })
	}

	v.versionDeleted = e.currentVersion
	e.versions[e.currentVersion].deletedVertices = append(e.versions[e.currentVersion].deletedVertices, v)
	e.logDebug(logMsgVertexDeleted, logAttrBarcode, v.barcode, logAttrVersion, int(e.currentVersion))

	return nil
}

// CreateNewVersion appends a version with an empty change log and makes it the current one.
func (e *Event) CreateNewVersion(name string) Version {
	e.versions = append(e.versions, versionLog{name: name})
	e.currentVersion = e.LastVersion()
	e.logDebug(logMsgVersionCreated, logAttrVersion, int(e.currentVersion), logAttrVersionName, name)

	return e.currentVersion
}

// SetCurrentVersion moves the mutation cursor to an existing version.
// Change logs already recorded for other versions are not touched.
func (e *Event) SetCurrentVersion(v Version) error {
	if err := e.checkVersion(v); err != nil {
		return err
	}

	e.currentVersion = v
	e.logDebug(logMsgVersionSelected, logAttrVersion, int(v))

	return nil
}

// Release destroys the event: every owned entity is detached and the event is reset to its
// initial state. Released entities keep their stale barcode and can't be added again.
// Barcode counters survive, so entities added afterwards get fresh barcodes.
func (e *Event) Release() {
	for _, p := range e.particles {
		p.event = nil
	}

	for _, v := range e.vertices {
		v.event = nil
	}

	e.logDebug(logMsgEventReleased,
		logAttrEventNumber, e.eventNumber,
		logAttrParticleCount, len(e.particles),
		logAttrVertexCount, len(e.vertices))

	e.releasedParticles += len(e.particles)
	e.releasedVertices += len(e.vertices)
	e.particles = nil
	e.vertices = nil
	e.versions = []versionLog{{name: defaultVersionName}}
	e.currentVersion = 0
	e.attributes = make(map[string]Attribute)
}

/***** Read access *****/

// Particle returns the particle with the given barcode, including deleted ones.
func (e *Event) Particle(barcode int) (*Particle, bool) {
	index := barcode - e.releasedParticles - 1
	if index < 0 || index >= len(e.particles) {
		return nil, false
	}

	return e.particles[index], true
}

// Vertex returns the vertex with the given barcode, including deleted ones.
func (e *Event) Vertex(barcode int) (*Vertex, bool) {
	index := -barcode - e.releasedVertices - 1
	if barcode >= 0 || index < 0 || index >= len(e.vertices) {
		return nil, false
	}

	return e.vertices[index], true
}

// Particles returns the particles live in the current version in barcode order.
func (e *Event) Particles() []*Particle {
	return e.ParticlesAt(e.currentVersion)
}

// ParticlesAt returns the particles live in version v in barcode order.
func (e *Event) ParticlesAt(v Version) []*Particle {
	live := make([]*Particle, 0, len(e.particles))
	for _, p := range e.particles {
		if p.IsLiveIn(v) {
			live = append(live, p)
		}
	}

	return live
}

// Vertices returns the vertices live in the current version in barcode order (-1, -2, ...).
func (e *Event) Vertices() []*Vertex {
	return e.VerticesAt(e.currentVersion)
}

// VerticesAt returns the vertices live in version v in barcode order (-1, -2, ...).
func (e *Event) VerticesAt(v Version) []*Vertex {
	live := make([]*Vertex, 0, len(e.vertices))
	for _, vtx := range e.vertices {
		if vtx.IsLiveIn(v) {
			live = append(live, vtx)
		}
	}

	return live
}

// AllParticles returns every particle the event owns, deleted ones included.
func (e *Event) AllParticles() []*Particle {
	return slices.Clone(e.particles)
}

// AllVertices returns every vertex the event owns, deleted ones included.
func (e *Event) AllVertices() []*Vertex {
	return slices.Clone(e.vertices)
}

// ParticleCount returns the number of owned particles, deleted ones included.
func (e *Event) ParticleCount() int {
	return len(e.particles)
}

// VertexCount returns the number of owned vertices, deleted ones included.
func (e *Event) VertexCount() int {
	return len(e.vertices)
}

// LastParticleBarcode returns the barcode most recently assigned to a particle, 0 if none ever was.
func (e *Event) LastParticleBarcode() int {
	return e.releasedParticles + len(e.particles)
}

// LastVertexBarcode returns the barcode most recently assigned to a vertex, 0 if none ever was.
func (e *Event) LastVertexBarcode() int {
	return -(e.releasedVertices + len(e.vertices))
}

func (e *Event) CurrentVersion() Version {
	return e.currentVersion
}

// LastVersion returns the highest version index created so far.
func (e *Event) LastVersion() Version {
	return Version(len(e.versions) - 1)
}

/***** Internals *****/

func (e *Event) checkAdoptable(owner *Event, barcode int, entity string) error {
	if owner != nil && owner != e {
		e.logWarn(logMsgOwnershipConflict, logAttrEntity, entity, logAttrBarcode, barcode)
		return fmt.Errorf("%w: %s %d", ErrOwnershipConflict, entity, barcode)
	}

	if owner == nil && barcode != 0 {
		e.logWarn(logMsgDuplicateIdentity, logAttrEntity, entity, logAttrBarcode, barcode)
		return fmt.Errorf("%w: %s %d", ErrDuplicateIdentity, entity, barcode)
	}

	return nil
}

// checkLinkable validates that p may become an incoming/outgoing particle of a vertex
// that is not linked to it yet.
func (e *Event) checkLinkable(p *Particle, direction linkDirection) error {
	if p.event == e {
		linked := p.endVertex
		if direction == linkOutgoing {
			linked = p.productionVertex
		}

		if linked != 0 {
			e.logWarn(logMsgAlreadyLinked, logAttrBarcode, p.barcode)
			return fmt.Errorf("%w: particle %d is linked to vertex %d", ErrAlreadyLinked, p.barcode, linked)
		}

		return nil
	}

	return e.checkAdoptable(p.event, p.barcode, entityParticle)
}

func (e *Event) checkOwned(owner *Event, barcode int, entity string) error {
	if owner == nil {
		return fmt.Errorf("%w: %s", ErrDetachedEntity, entity)
	}

	if owner != e {
		e.logWarn(logMsgOwnershipConflict, logAttrEntity, entity, logAttrBarcode, barcode)
		return fmt.Errorf("%w: %s %d", ErrOwnershipConflict, entity, barcode)
	}

	return nil
}

func (e *Event) checkDeletable(created Version, barcode int) error {
	if created > e.currentVersion {
		e.logWarn(logMsgInvalidVersion, logAttrBarcode, barcode, logAttrVersion, int(e.currentVersion))
		return errors.Join(
			ErrInvalidVersion,
			fmt.Errorf("entity %d was created in version %d after current version %d", barcode, created, e.currentVersion),
		)
	}

	return nil
}

func (e *Event) checkVersion(v Version) error {
	if v < 0 || v > e.LastVersion() {
		e.logWarn(logMsgInvalidVersion, logAttrVersion, int(v), logAttrLastVersion, int(e.LastVersion()))
		return errors.Join(ErrInvalidVersion, fmt.Errorf("version %d outside [0, %d]", v, e.LastVersion()))
	}

	return nil
}

func (e *Event) adoptParticle(p *Particle) {
	e.particles = append(e.particles, p)
	p.event = e
	p.barcode = e.LastParticleBarcode()
	p.versionCreated = e.currentVersion
	p.versionDeleted = NeverDeleted
	e.versions[e.currentVersion].particles = append(e.versions[e.currentVersion].particles, p)
}

func (e *Event) adoptVertex(v *Vertex) {
	e.vertices = append(e.vertices, v)
	v.event = e
	v.barcode = e.LastVertexBarcode()
	v.versionCreated = e.currentVersion
	v.versionDeleted = NeverDeleted
	e.versions[e.currentVersion].vertices = append(e.versions[e.currentVersion].vertices, v)
}

func (e *Event) logDebug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Event) logWarn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
