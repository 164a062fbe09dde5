package spatial

import "github.com/omniworld-xyz/builder/pkg/cmath"

// BoundsReport describes the derived world bounds for reporting.
type BoundsReport struct {
	Min    cmath.Vec3 `json:"min"`
	Max    cmath.Vec3 `json:"max"`
	Size   cmath.Vec3 `json:"size"`
	Volume float64    `json:"volume"`
}

// NamePair is a collision pair by entity name, for reporting.
type NamePair struct {
	Entity1 string `json:"entity1"`
	Entity2 string `json:"entity2"`
}

// Report is the aggregate spatial analysis of a world.
type Report struct {
	EntityCount    int           `json:"entity_count"`
	WorldBounds    *BoundsReport `json:"world_bounds"`
	Collisions     []NamePair    `json:"collisions"`
	CollisionCount int           `json:"collision_count"`
	Density        float64       `json:"density"`
}

// Analysis computes the full spatial report: counts, derived bounds, the
// collision pair list and density over the derived bounds. An empty world
// yields the zero report with a nil WorldBounds.
func (r *Reasoner) Analysis() Report {
	report := Report{Collisions: []NamePair{}}
	if r.world == nil {
		return report
	}
	report.EntityCount = len(r.world.Entities)

	bounds, ok := r.WorldBounds()
	if !ok {
		return report
	}
	report.WorldBounds = &BoundsReport{
		Min:    bounds.Min,
		Max:    bounds.Max,
		Size:   bounds.Size(),
		Volume: bounds.Volume(),
	}

	pairs := r.AllCollisions()
	for _, p := range pairs {
		report.Collisions = append(report.Collisions, NamePair{
			Entity1: p.First.Name,
			Entity2: p.Second.Name,
		})
	}
	report.CollisionCount = len(pairs)
	report.Density = r.Density(bounds)
	return report
}
