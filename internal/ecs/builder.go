package ecs

// EntityBuilder attaches components to a freshly spawned entity. Each With
// writes through to the world immediately; Build only hands back the handle.
type EntityBuilder struct {
	world  *World
	entity Entity
}

// With attaches c and returns the builder for chaining.
func (b EntityBuilder) With(c Component) EntityBuilder {
	b.world.Add(b.entity, c)
	return b
}

// Build returns the entity being built.
func (b EntityBuilder) Build() Entity {
	return b.entity
}

// WithComponent is the statically typed form of With.
func WithComponent[T any](b EntityBuilder, v T) EntityBuilder {
	AddComponent(b.world, b.entity, v)
	return b
}
