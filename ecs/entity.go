package ecs

import "unsafe"

// EntityId packs the archetype an entity lives in (upper 32 bits) with its
// slot inside that archetype (lower 32 bits). The zero value never names a
// live entity.
type EntityId uint64

func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a handle that keeps pointing at the same entity for as long as
// it lives. Hold one when an entity must be found again on later ticks, for
// example the transform a controller writes to. Once the entity is deleted the
// ref reports itself invalid instead of aliasing a reused slot.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the ref still names a live entity.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}

// eface mirrors the runtime layout of an empty interface so component
// pointers can be pulled out of an `any` without reflection.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func dataPointer(v any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&v)).data
}
