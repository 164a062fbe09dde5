// Package wdl defines the World Description Language, the engine-agnostic
// intermediate representation for a 3D scene. A World aggregate owns its
// entities, lights and systems in insertion order; parent and target
// references between them are weak ids resolved through the World.
//
// The canonical serialized form is JSON. Strict decoding (Decode) rejects
// malformed documents with a SchemaError; the FromMap constructors accept
// loosely typed data and fall back to documented defaults instead.
package wdl

import (
	"encoding/json"
)

// World is the root aggregate. Mutate it only through the Add* operations;
// concurrent mutation and reads need caller-side synchronization.
type World struct {
	Metadata    Metadata    `json:"metadata"`
	Environment Environment `json:"environment"`
	Entities    []*Entity   `json:"entities"`
	Lights      []*Lighting `json:"lights"`
	Systems     []*System   `json:"systems"`
	Bounds      WorldBounds `json:"bounds"`
}

// NewWorld builds a world with default environment and bounds. The metadata
// title is required.
func NewWorld(meta Metadata) (*World, error) {
	if err := meta.Check(); err != nil {
		return nil, prefixed("metadata", err)
	}
	return &World{
		Metadata:    meta,
		Environment: DefaultEnvironment(),
		Entities:    []*Entity{},
		Lights:      []*Lighting{},
		Systems:     []*System{},
		Bounds:      DefaultBounds(),
	}, nil
}

func (w *World) UnmarshalJSON(data []byte) error {
	type alias World
	a := alias{
		Environment: DefaultEnvironment(),
		Bounds:      DefaultBounds(),
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*w = World(a)
	return nil
}

func (w *World) AddEntity(e *Entity) {
	w.Entities = append(w.Entities, e)
}

func (w *World) AddLight(l *Lighting) {
	w.Lights = append(w.Lights, l)
}

func (w *World) AddSystem(s *System) {
	w.Systems = append(w.Systems, s)
}

// EntityByID resolves a weak entity reference.
func (w *World) EntityByID(id string) (*Entity, bool) {
	for _, e := range w.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// EntitiesByType returns a fresh slice; the backing collection is not shared.
func (w *World) EntitiesByType(t EntityType) []*Entity {
	out := make([]*Entity, 0)
	for _, e := range w.Entities {
		if e.EntityType == t {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) EntitiesByTag(tag string) []*Entity {
	out := make([]*Entity, 0)
	for _, e := range w.Entities {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// Check verifies the structural schema of the world: required fields, value
// ranges, enum tags. Referential integrity (duplicate ids, dangling
// references) is deliberately left to the validator, which reports issues
// instead of failing.
func (w *World) Check() error {
	if err := w.Metadata.Check(); err != nil {
		return prefixed("metadata", err)
	}
	if err := w.Environment.Check(); err != nil {
		return prefixed("environment", err)
	}
	for _, e := range w.Entities {
		if e == nil {
			return schemaErrorf("entities", "null element")
		}
		if err := e.Check(); err != nil {
			return prefixed("entities", err)
		}
	}
	for _, l := range w.Lights {
		if l == nil {
			return schemaErrorf("lights", "null element")
		}
		if err := l.Check(); err != nil {
			return prefixed("lights", err)
		}
	}
	for _, s := range w.Systems {
		if s == nil {
			return schemaErrorf("systems", "null element")
		}
		if err := s.Check(); err != nil {
			return prefixed("systems", err)
		}
	}
	return nil
}

// Encode serializes the world to its canonical JSON form.
func (w *World) Encode() ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// Decode parses and checks a canonical WDL document. All failures come back
// as a *SchemaError; Decode never panics on malformed input.
func Decode(data []byte) (*World, error) {
	w := new(World)
	if err := json.Unmarshal(data, w); err != nil {
		return nil, &SchemaError{Reason: "malformed document: " + err.Error()}
	}
	if err := w.Check(); err != nil {
		return nil, err
	}
	return w, nil
}
