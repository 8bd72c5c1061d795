package genevent

import (
	"errors"
)

var ErrNilEntity = errors.New("nil particle or vertex supplied")
var ErrOwnershipConflict = errors.New("entity already belongs to a different event")
var ErrDuplicateIdentity = errors.New("entity already carries a barcode")
var ErrInvalidVersion = errors.New("version index out of range")
var ErrInvalidQuerySeed = errors.New("search seed does not belong to an event")
var ErrDetachedEntity = errors.New("entity does not belong to any event")
var ErrAlreadyLinked = errors.New("particle is already linked to another vertex")
var ErrEmptyAttributeName = errors.New("empty attribute name supplied")
var ErrNilAttribute = errors.New("nil attribute supplied")

const (
	logMsgOwnershipConflict = "rejected entity owned by another event"
	logMsgDuplicateIdentity = "rejected entity with stale barcode"
	logMsgAlreadyLinked     = "rejected particle linked to another vertex"
	logMsgVersionCreated    = "version created"
	logMsgVersionSelected   = "current version changed"
	logMsgInvalidVersion    = "rejected invalid version"
	logMsgParticleDeleted   = "particle deleted"
	logMsgVertexDeleted     = "vertex deleted"
	logMsgEventReleased     = "event released"
	logAttrBarcode          = "barcode"
	logAttrVersion          = "version"
	logAttrVersionName      = "version_name"
	logAttrLastVersion      = "last_version"
	logAttrEventNumber      = "event_number"
	logAttrParticleCount    = "particle_count"
	logAttrVertexCount      = "vertex_count"
	logAttrEntity           = "entity"
	entityParticle          = "particle"
	entityVertex            = "vertex"
)
