package ecs

import (
	"errors"
	"iter"
	"unsafe"
)

var (
	// ErrNoEntities is returned by Query.Single when nothing matches.
	ErrNoEntities = errors.New("ecs: query matched no entities")
	// ErrMultipleEntities is returned by Query.Single when more than one
	// entity matches.
	ErrMultipleEntities = errors.New("ecs: query matched more than one entity")
)

// Query is a View snapshotted once per tick. As a System field it is bound
// and refreshed by the Scheduler right before the system runs; standalone
// queries must call Execute themselves.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops all caches.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the per-tick snapshot.
func (q *Query[T]) Execute() {
	if count := len(q.storage.archetypes); count != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = count
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	var result T
	for _, archetype := range q.cachedArchetypes {
		indices := q.view.buildStorageIndices(archetype)
		for entityIndex := range archetype.storages[0].Iter() {
			if !q.view.populateResult(unsafe.Pointer(&result), archetype, entityIndex, indices) {
				continue
			}
			q.cachedEntities = append(q.cachedEntities, NewEntityId(archetype.id, uint32(entityIndex)))
			q.cachedComponents = append(q.cachedComponents, result)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) mustBeExecuted(method string) {
	if !q.cacheValid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	q.mustBeExecuted("Len")
	return len(q.cachedEntities)
}

// Single returns the only matching entity. It fails with ErrNoEntities or
// ErrMultipleEntities otherwise; callers that expect a unique target (a
// camera, the player's animation target) decide for themselves whether that
// is fatal.
func (q *Query[T]) Single() (EntityId, T, error) {
	q.mustBeExecuted("Single")
	var zero T
	switch len(q.cachedEntities) {
	case 0:
		return 0, zero, ErrNoEntities
	case 1:
		return q.cachedEntities[0], q.cachedComponents[0], nil
	default:
		return 0, zero, ErrMultipleEntities
	}
}

func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeExecuted("Iter")
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeExecuted("Values")
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
