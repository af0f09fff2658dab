package domain

import "strings"

type EntityType string

const (
	EntityRawMaterial        EntityType = "RawMaterial"
	EntityIntermediate       EntityType = "Intermediate"
	EntityFinishedProduct    EntityType = "FinishedProduct"
	EntityPhase              EntityType = "Phase"
	EntityProcessInstruction EntityType = "ProcessInstruction"
	EntityMaterialLot        EntityType = "MaterialLot"
)

var entityTypes = []EntityType{
	EntityRawMaterial,
	EntityIntermediate,
	EntityFinishedProduct,
	EntityPhase,
	EntityProcessInstruction,
	EntityMaterialLot,
}

// EntityTypes returns the closed set of entity type tags.
func EntityTypes() []EntityType {
	out := make([]EntityType, len(entityTypes))
	copy(out, entityTypes)
	return out
}

func (t EntityType) Valid() bool {
	for _, v := range entityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseEntityType accepts the canonical tag case-insensitively, plus the
// short aliases used by older exports ("PI", "Material").
func ParseEntityType(s string) (EntityType, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "pi":
		return EntityProcessInstruction, true
	case "material":
		return EntityMaterialLot, true
	}
	for _, v := range entityTypes {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

// BOMListable reports whether entities of this type appear in a bill of materials.
func (t EntityType) BOMListable() bool {
	return t == EntityRawMaterial || t == EntityIntermediate
}

type RelationKind string

const (
	RelConsumedBy RelationKind = "consumed_by"
	RelProduces   RelationKind = "produces"
	RelUsedIn     RelationKind = "used_in"
	RelHasPhase   RelationKind = "has_phase"
	RelHasPI      RelationKind = "has_pi"
	RelNextPhase  RelationKind = "next_phase"
	RelNextStep   RelationKind = "next_step"
	RelPrecedes   RelationKind = "precedes"
	RelCoatedWith RelationKind = "coated_with"
)

var relationKinds = []RelationKind{
	RelConsumedBy,
	RelProduces,
	RelUsedIn,
	RelHasPhase,
	RelHasPI,
	RelNextPhase,
	RelNextStep,
	RelPrecedes,
	RelCoatedWith,
}

func (k RelationKind) Valid() bool {
	for _, v := range relationKinds {
		if v == k {
			return true
		}
	}
	return false
}

// MaterialFlow reports whether material physically moves along an edge of
// kind k. Structural and sequencing kinds (has_phase, precedes, ...) do not.
func (k RelationKind) MaterialFlow() bool {
	switch k {
	case RelConsumedBy, RelProduces, RelUsedIn, RelCoatedWith:
		return true
	}
	return false
}

// TraceDirection selects which side of the genealogy a trace highlights.
type TraceDirection string

const (
	TraceBackward TraceDirection = "backward"
	TraceForward  TraceDirection = "forward"
	TraceBoth     TraceDirection = "both"
	TraceNone     TraceDirection = "none"
)

func (d TraceDirection) Valid() bool {
	switch d {
	case TraceBackward, TraceForward, TraceBoth, TraceNone:
		return true
	}
	return false
}

func ParseTraceDirection(s string) (TraceDirection, bool) {
	switch d := TraceDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case TraceBackward, TraceForward, TraceBoth, TraceNone:
		return d, true
	case "":
		return TraceBoth, true
	}
	return "", false
}

// DanglingPolicy controls what the builder does with relations naming unknown batches.
type DanglingPolicy string

const (
	PolicySkip   DanglingPolicy = "skip"
	PolicyStrict DanglingPolicy = "strict"
)

func ParseDanglingPolicy(s string) (DanglingPolicy, bool) {
	switch p := DanglingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySkip, PolicyStrict:
		return p, true
	case "":
		return PolicySkip, true
	}
	return "", false
}
