package core

import "slices"

// Kind tags the variant of an Entity.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindEnemy
	KindProjectile
	KindPickup
	KindParticle
	KindObstacle
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	case KindPickup:
		return "pickup"
	case KindParticle:
		return "particle"
	case KindObstacle:
		return "obstacle"
	}
	return "unknown"
}

// Payload is the kind-specific part of an Entity. The set of
// implementations is closed: one struct per Kind.
type Payload interface {
	Kind() Kind
}

// PlayerData is the payload of a player entity.
type PlayerData struct {
	Invulnerable int // ticks of remaining spawn protection
}

// EnemyData is the payload of an enemy entity.
type EnemyData struct {
	Type    string
	Health  int
	AITimer int
	Points  int
}

// Owner identifies who fired a projectile.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// ProjectileData is the payload of a projectile.
type ProjectileData struct {
	Speed float64
	Owner Owner
}

// PickupData is the payload of a pickup. Life counts down to expiry.
type PickupData struct {
	Life   int
	Effect string
}

// ParticleData is the payload of a cosmetic particle.
type ParticleData struct {
	Life int
}

// ObstacleData is the payload of cars, logs, turtles and platforms.
type ObstacleData struct {
	Variant string
	Timer   float64
}

func (*PlayerData) Kind() Kind     { return KindPlayer }
func (*EnemyData) Kind() Kind      { return KindEnemy }
func (*ProjectileData) Kind() Kind { return KindProjectile }
func (*PickupData) Kind() Kind     { return KindPickup }
func (*ParticleData) Kind() Kind   { return KindParticle }
func (*ObstacleData) Kind() Kind   { return KindObstacle }

// Entity is any simulated object taking part in update and collision.
type Entity struct {
	ID   int
	Pos  Vec
	Vel  Vec
	Size Vec // width, height, depth
	Data Payload
}

// Kind returns the variant tag derived from the payload.
func (e *Entity) Kind() Kind {
	if e.Data == nil {
		return 0
	}
	return e.Data.Kind()
}

// Bounds returns the entity's bounding box in the X/Y plane.
func (e *Entity) Bounds() Box {
	return Box{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// Center returns the center of the entity's bounds.
func (e *Entity) Center() Vec {
	return Vec{X: e.Pos.X + e.Size.X/2, Y: e.Pos.Y + e.Size.Y/2, Z: e.Pos.Z + e.Size.Z/2}
}

// Advance moves the entity by its per-tick velocity.
func (e *Entity) Advance() {
	e.Pos = e.Pos.Add(e.Vel)
}

// Enemy returns the enemy payload, or nil for other kinds.
func (e *Entity) Enemy() *EnemyData {
	d, _ := e.Data.(*EnemyData)
	return d
}

// Projectile returns the projectile payload, or nil for other kinds.
func (e *Entity) Projectile() *ProjectileData {
	d, _ := e.Data.(*ProjectileData)
	return d
}

// Pickup returns the pickup payload, or nil for other kinds.
func (e *Entity) Pickup() *PickupData {
	d, _ := e.Data.(*PickupData)
	return d
}

// Particle returns the particle payload, or nil for other kinds.
func (e *Entity) Particle() *ParticleData {
	d, _ := e.Data.(*ParticleData)
	return d
}

// Obstacle returns the obstacle payload, or nil for other kinds.
func (e *Entity) Obstacle() *ObstacleData {
	d, _ := e.Data.(*ObstacleData)
	return d
}

// Store is the mutable collection of a simulation's entities.
// Iteration follows insertion order so collision handling is deterministic.
type Store struct {
	items  []*Entity
	nextID int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add inserts e, assigns it an ID and returns it.
func (s *Store) Add(e *Entity) *Entity {
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e
}

// Get returns the entity with the given ID, or nil.
func (s *Store) Get(id int) *Entity {
	for _, e := range s.items {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Remove deletes the entity with the given ID.
func (s *Store) Remove(id int) bool {
	for i, e := range s.items {
		if e.ID == id {
			s.items = slices.Delete(s.items, i, i+1)
			return true
		}
	}
	return false
}

// RemoveIf deletes every entity matching pred, keeping the order of the
// rest, and returns how many were removed.
func (s *Store) RemoveIf(pred func(*Entity) bool) int {
	kept := s.items[:0]
	removed := 0
	for _, e := range s.items {
		if pred(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return removed
}

// Of returns the entities of kind k in insertion order.
// The slice is a copy; the entities are shared.
func (s *Store) Of(k Kind) []*Entity {
	var out []*Entity
	for _, e := range s.items {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}

// Each calls fn for every entity of kind k. fn must not add or remove
// entities; iterate over Of for that.
func (s *Store) Each(k Kind, fn func(*Entity)) {
	for _, e := range s.items {
		if e.Kind() == k {
			fn(e)
		}
	}
}

// All returns every entity in insertion order.
func (s *Store) All() []*Entity {
	return append([]*Entity(nil), s.items...)
}

// Count returns the number of entities of kind k.
func (s *Store) Count(k Kind) int {
	n := 0
	for _, e := range s.items {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

// Len returns the total number of entities.
func (s *Store) Len() int {
	return len(s.items)
}

// Clear removes every entity. IDs keep increasing.
func (s *Store) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
