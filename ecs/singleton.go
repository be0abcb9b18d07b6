package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives systems typed access to a value that belongs to the world
// rather than to an entity: configuration, the player record, asset tables.
type Singleton[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
}

// NewSingleton returns an accessor for the T singleton, adding it first if
// storage does not have one yet (initializer[0] or the zero value).
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor. The Scheduler calls it on Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentPtr = nil
	s.updateCache()
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	}
}

// Get returns the singleton, or nil when it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return (*T)(s.componentPtr)
}

// MustGet is Get for singletons that setup guarantees to exist. A missing
// value means systems were scheduled before setup ran, so it panics.
func (s *Singleton[T]) MustGet() *T {
	v := s.Get()
	if v == nil {
		panic("ecs: singleton " + reflect.TypeFor[T]().String() + " used before it was added")
	}
	return v
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
