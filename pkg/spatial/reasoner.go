// Package spatial derives axis-aligned bounds from WDL entities and answers
// proximity, collision and placement queries over a world.
//
// Entity bounds deliberately ignore rotation: the box is centered at the
// transform position with half the scale as extent on each axis. Collision
// and placement semantics downstream are defined against exactly this
// derivation, so it must not be "improved".
package spatial

import (
	"math"

	"github.com/omniworld-xyz/builder/pkg/cmath"
	"github.com/omniworld-xyz/builder/pkg/wdl"
)

const (
	placementAngleStepDeg = 30
	placementRangeFactor  = 2
)

// Reasoner answers spatial queries for one world at a time. Derived entity
// bounds are cached per entity id; pointing the reasoner at another world
// drops the whole cache. Not safe for concurrent use.
type Reasoner struct {
	world  *wdl.World
	bounds map[string]Box
}

func NewReasoner(world *wdl.World) *Reasoner {
	return &Reasoner{
		world:  world,
		bounds: make(map[string]Box),
	}
}

// SetWorld replaces the world under analysis and invalidates cached bounds.
func (r *Reasoner) SetWorld(world *wdl.World) {
	r.world = world
	r.bounds = make(map[string]Box)
}

// EntityBounds derives the axis-aligned box of an entity from its position
// and scale. Rotation is ignored (see package doc).
func (r *Reasoner) EntityBounds(e *wdl.Entity) Box {
	if b, ok := r.bounds[e.ID]; ok {
		return b
	}
	half := e.Transform.Scale.Scaled(0.5)
	b := Box{
		Min: e.Transform.Position.Sub(half),
		Max: e.Transform.Position.Add(half),
	}
	r.bounds[e.ID] = b
	return b
}

// WorldBounds is the union of all entity boxes. The second return is false
// when the world has no entities.
func (r *Reasoner) WorldBounds() (Box, bool) {
	if r.world == nil || len(r.world.Entities) == 0 {
		return Box{}, false
	}
	union := r.EntityBounds(r.world.Entities[0])
	for _, e := range r.world.Entities[1:] {
		b := r.EntityBounds(e)
		union.Min.X = math.Min(union.Min.X, b.Min.X)
		union.Min.Y = math.Min(union.Min.Y, b.Min.Y)
		union.Min.Z = math.Min(union.Min.Z, b.Min.Z)
		union.Max.X = math.Max(union.Max.X, b.Max.X)
		union.Max.Y = math.Max(union.Max.Y, b.Max.Y)
		union.Max.Z = math.Max(union.Max.Z, b.Max.Z)
	}
	return union, true
}

// NearestEntity scans linearly; ties keep the first entity in list order.
// Returns (nil, +Inf) for an empty world.
func (r *Reasoner) NearestEntity(position cmath.Vec3) (*wdl.Entity, float64) {
	var nearest *wdl.Entity
	nearestDist := math.Inf(1)
	if r.world == nil {
		return nil, nearestDist
	}
	for _, e := range r.world.Entities {
		if d := cmath.Distance(position, e.Transform.Position); d < nearestDist {
			nearestDist = d
			nearest = e
		}
	}
	return nearest, nearestDist
}

// EntitiesInRadius returns entities whose position is within radius of
// center, boundary inclusive.
func (r *Reasoner) EntitiesInRadius(center cmath.Vec3, radius float64) []*wdl.Entity {
	out := make([]*wdl.Entity, 0)
	if r.world == nil {
		return out
	}
	radiusSq := radius * radius
	for _, e := range r.world.Entities {
		if cmath.DistanceSquared(center, e.Transform.Position) <= radiusSq {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesInBounds returns entities whose position (not full box) lies
// inside the query box.
func (r *Reasoner) EntitiesInBounds(bounds Box) []*wdl.Entity {
	out := make([]*wdl.Entity, 0)
	if r.world == nil {
		return out
	}
	for _, e := range r.world.Entities {
		if bounds.ContainsPoint(e.Transform.Position) {
			out = append(out, e)
		}
	}
	return out
}

// CheckCollision tests whether the derived bounds of two entities intersect.
func (r *Reasoner) CheckCollision(e1, e2 *wdl.Entity) bool {
	return r.EntityBounds(e1).Intersects(r.EntityBounds(e2))
}

// CollidingEntities lists every other entity whose bounds intersect the
// given one's.
func (r *Reasoner) CollidingEntities(entity *wdl.Entity) []*wdl.Entity {
	out := make([]*wdl.Entity, 0)
	if r.world == nil {
		return out
	}
	for _, e := range r.world.Entities {
		if e.ID != entity.ID && r.CheckCollision(entity, e) {
			out = append(out, e)
		}
	}
	return out
}

// CollisionPair is an unordered pair of intersecting entities, kept in
// entity-list order (First precedes Second).
type CollisionPair struct {
	First  *wdl.Entity
	Second *wdl.Entity
}

// AllCollisions enumerates every intersecting pair with i<j in entity list
// order. Output order is part of the contract.
func (r *Reasoner) AllCollisions() []CollisionPair {
	pairs := make([]CollisionPair, 0)
	if r.world == nil {
		return pairs
	}
	entities := r.world.Entities
	for i, e1 := range entities {
		for _, e2 := range entities[i+1:] {
			if r.CheckCollision(e1, e2) {
				pairs = append(pairs, CollisionPair{First: e1, Second: e2})
			}
		}
	}
	return pairs
}

// SuggestPlacement searches concentric rings in the horizontal plane at
// preferredY for a point at least minClearance from every entity position.
// Ring step equals minClearance, angular step is 30 degrees, and the search
// radius is bounded by twice the world's current horizontal extent. With no
// entities it returns the origin immediately. A false return means the
// bounded search was exhausted, which is a normal no-result, not an error.
// Clearance is measured between positions, not boxes, so size does not
// influence the search.
func (r *Reasoner) SuggestPlacement(size cmath.Vec3, minClearance, preferredY float64) (cmath.Vec3, bool) {
	origin := cmath.Vec3{Y: preferredY}
	if r.world == nil || len(r.world.Entities) == 0 {
		return origin, true
	}
	worldBounds, ok := r.WorldBounds()
	if !ok {
		return origin, true
	}

	extent := worldBounds.Size()
	searchRange := math.Max(extent.X, extent.Z) * placementRangeFactor
	steps := int(searchRange / minClearance)

	for ring := 0; ring < steps; ring++ {
		radius := float64(ring) * minClearance
		for angle := 0; angle < 360; angle += placementAngleStepDeg {
			rad := float64(angle) * math.Pi / 180
			candidate := cmath.Vec3{
				X: radius * math.Cos(rad),
				Y: preferredY,
				Z: radius * math.Sin(rad),
			}
			if r.isClear(candidate, minClearance) {
				return candidate, true
			}
		}
	}
	return cmath.Vec3{}, false
}

func (r *Reasoner) isClear(candidate cmath.Vec3, minClearance float64) bool {
	for _, e := range r.world.Entities {
		if cmath.Distance(candidate, e.Transform.Position) < minClearance {
			return false
		}
	}
	return true
}

// Density is the entity count inside a region divided by the region volume,
// defined as zero for degenerate regions.
func (r *Reasoner) Density(region Box) float64 {
	volume := region.Volume()
	if volume == 0 {
		return 0
	}
	return float64(len(r.EntitiesInBounds(region))) / volume
}
