package wdl

import (
	"reflect"
	"testing"
	"time"

	"github.com/omniworld-xyz/builder/pkg/cmath"
)

func sampleWorld(t *testing.T) *World {
	t.Helper()

	meta := NewMetadata("Test World")
	meta.Description = "round-trip fixture"
	meta.Author = "QA"
	meta.CreatedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	meta.UpdatedAt = meta.CreatedAt
	meta.Tags = []string{"fixture"}

	w, err := NewWorld(meta)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	ground := NewEntity("Ground", EntityTerrain)
	ground.Transform.Scale = cmath.NewVec3(100, 1, 100)
	w.AddEntity(ground)

	crate := NewEntity("Crate", EntityDynamicObject)
	crate.Transform.Position = cmath.NewVec3(2, 0.5, -3)
	crate.Material = NewMaterial("CrateWood")
	crate.Material.MaterialType = MaterialPBR
	crate.Material.Metallic = 0.1
	emission := cmath.Color{R: 1, G: 0.5, B: 0, A: 1}
	crate.Material.EmissionColor = &emission
	crate.Material.EmissionStrength = 2
	crate.Physics.Enabled = true
	crate.Physics.Mass = 12.5
	crate.Collider = NewCollider(ColliderBox)
	crate.ParentID = ground.ID
	crate.Tags = []string{"loot", "wood"}
	crate.Metadata = map[string]any{"hp": 25.0, "variant": "old"}
	w.AddEntity(crate)

	sun := NewLighting("Sun", LightDirectional)
	sun.Intensity = 1.2
	sun.Transform.Rotation = cmath.NewVec3(50, -30, 0)
	w.AddLight(sun)

	lamp := NewLighting("Lamp", LightSpot)
	lampRange := 15.0
	lamp.Range = &lampRange
	angle := 35.0
	lamp.SpotAngle = &angle
	w.AddLight(lamp)

	pickup := NewSystem("PickupSystem")
	pickup.Description = "crate pickup"
	pickup.Priority = 5
	pickup.Interactions = append(pickup.Interactions, Interaction{
		TriggerType:    InteractionUse,
		ActionType:     ActionDestroy,
		TargetEntityID: crate.ID,
		Parameters:     map[string]any{"sound": "crunch"},
	})
	w.AddSystem(pickup)

	w.Environment.Weather = WeatherFoggy
	w.Environment.FogEnabled = true
	w.Environment.FogDensity = 0.2
	w.Environment.AudioReverbPreset = "cave"

	return w
}

func TestRoundTrip(t *testing.T) {
	w := sampleWorld(t)

	data, err := w.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(w, got) {
		t.Errorf("round trip mismatch\nwant: %+v\ngot:  %+v", w, got)
	}
}

func TestDecodeFillsDefaults(t *testing.T) {
	w, err := Decode([]byte(`{"metadata":{"title":"Minimal"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w.Environment.Weather != WeatherClear {
		t.Errorf("expected clear weather, got %q", w.Environment.Weather)
	}
	if w.Environment.TimeOfDay.Hour != 12 {
		t.Errorf("expected default hour 12, got %d", w.Environment.TimeOfDay.Hour)
	}
	if w.Environment.Gravity != cmath.NewVec3(0, -9.81, 0) {
		t.Errorf("unexpected default gravity: %+v", w.Environment.Gravity)
	}
	if w.Bounds != DefaultBounds() {
		t.Errorf("unexpected default bounds: %+v", w.Bounds)
	}
	if w.Metadata.Version != "1.0.0" {
		t.Errorf("expected default version, got %q", w.Metadata.Version)
	}
}

func TestDecodeEntityDefaults(t *testing.T) {
	doc := `{
		"metadata": {"title": "T"},
		"entities": [{"id": "e-1", "name": "Thing"}]
	}`
	w, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	e := w.Entities[0]
	if e.EntityType != EntityStaticMesh {
		t.Errorf("expected static_mesh default, got %q", e.EntityType)
	}
	if e.Transform.Scale != cmath.OneVec3() {
		t.Errorf("expected unit scale, got %+v", e.Transform.Scale)
	}
	if e.Physics.Mass != 1.0 || !e.Physics.UseGravity || !e.Physics.CollisionEnabled {
		t.Errorf("unexpected physics defaults: %+v", e.Physics)
	}
	if e.Physics.AngularDrag != 0.05 {
		t.Errorf("expected angular drag 0.05, got %v", e.Physics.AngularDrag)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "malformed json",
			doc:  `{"metadata": `,
		},
		{
			name: "missing title",
			doc:  `{"metadata": {"description": "no title"}}`,
		},
		{
			name: "unknown entity type",
			doc:  `{"metadata":{"title":"T"},"entities":[{"id":"e","name":"n","entity_type":"blob"}]}`,
		},
		{
			name: "unknown weather",
			doc:  `{"metadata":{"title":"T"},"environment":{"weather":"sharknado"}}`,
		},
		{
			name: "color channel out of range",
			doc:  `{"metadata":{"title":"T"},"lights":[{"name":"L","color":{"r":2,"g":0,"b":0,"a":1}}]}`,
		},
		{
			name: "negative mass",
			doc:  `{"metadata":{"title":"T"},"entities":[{"id":"e","name":"n","physics":{"mass":-1}}]}`,
		},
		{
			name: "metallic above one",
			doc:  `{"metadata":{"title":"T"},"entities":[{"id":"e","name":"n","material":{"name":"m","metallic":1.5}}]}`,
		},
		{
			name: "hour out of range",
			doc:  `{"metadata":{"title":"T"},"environment":{"time_of_day":{"hour":24}}}`,
		},
		{
			name: "null entity element",
			doc:  `{"metadata":{"title":"T"},"entities":[null]}`,
		},
		{
			name: "null light element",
			doc:  `{"metadata":{"title":"T"},"lights":[null]}`,
		},
		{
			name: "null system element",
			doc:  `{"metadata":{"title":"T"},"systems":[null]}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode([]byte(test.doc))
			if err == nil {
				t.Fatal("expected a schema error")
			}
			if _, ok := err.(*SchemaError); !ok {
				t.Errorf("expected *SchemaError, got %T: %v", err, err)
			}
		})
	}
}

func TestLookups(t *testing.T) {
	w := sampleWorld(t)

	crate, ok := w.EntityByID(w.Entities[1].ID)
	if !ok || crate.Name != "Crate" {
		t.Fatalf("EntityByID failed: %v %v", crate, ok)
	}
	if _, ok := w.EntityByID("nope"); ok {
		t.Error("expected miss for unknown id")
	}

	terrain := w.EntitiesByType(EntityTerrain)
	if len(terrain) != 1 || terrain[0].Name != "Ground" {
		t.Errorf("EntitiesByType: %v", terrain)
	}

	tagged := w.EntitiesByTag("loot")
	if len(tagged) != 1 || tagged[0].Name != "Crate" {
		t.Errorf("EntitiesByTag: %v", tagged)
	}
	// returned slice is fresh, appending must not disturb the world
	_ = append(tagged, NewEntity("X", EntityProp))
	if len(w.Entities) != 2 {
		t.Errorf("backing collection mutated, len=%d", len(w.Entities))
	}
}

func TestNewEntityIDsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		e := NewEntity("e", EntityProp)
		if _, dup := seen[e.ID]; dup {
			t.Fatalf("duplicate generated id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
}

func TestWorldFromMap(t *testing.T) {
	raw := map[string]any{
		"metadata": map[string]any{
			"description": "title is missing on purpose",
		},
		"environment": map[string]any{
			"weather":     "plasma storm", // unknown, falls back
			"fog_density": 3.0,            // clamped
		},
		"entities": []any{
			map[string]any{
				"id":          "dup",
				"name":        "A",
				"entity_type": "terrain",
			},
			map[string]any{
				"id":   "dup", // collides, regenerated
				"name": "B",
				"transform": map[string]any{
					"position": map[string]any{"x": 1.0, "y": "oops", "z": 3.0},
				},
				"physics": map[string]any{"enabled": true, "mass": -5.0},
			},
			"not a map", // skipped
		},
		"lights": []any{
			map[string]any{"name": "Sun", "light_type": "directional", "intensity": 2.0},
		},
		"systems": []any{
			map[string]any{
				"name": "S",
				"interactions": []any{
					map[string]any{"trigger_type": "use", "action_type": "explode"},
				},
			},
		},
	}

	w, err := WorldFromMap(raw)
	if err != nil {
		t.Fatalf("WorldFromMap: %v", err)
	}
	if w.Metadata.Title != "Untitled World" {
		t.Errorf("expected fallback title, got %q", w.Metadata.Title)
	}
	if w.Environment.Weather != WeatherClear {
		t.Errorf("expected fallback weather, got %q", w.Environment.Weather)
	}
	if w.Environment.FogDensity != 1.0 {
		t.Errorf("expected clamped fog density 1.0, got %v", w.Environment.FogDensity)
	}
	if len(w.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(w.Entities))
	}
	if w.Entities[0].EntityType != EntityTerrain {
		t.Errorf("expected terrain, got %q", w.Entities[0].EntityType)
	}
	b := w.Entities[1]
	if b.ID == "dup" {
		t.Error("expected colliding id to be regenerated")
	}
	if b.Transform.Position.X != 1.0 || b.Transform.Position.Y != 0 || b.Transform.Position.Z != 3.0 {
		t.Errorf("unexpected coerced position: %+v", b.Transform.Position)
	}
	if b.Physics.Mass != 0 {
		t.Errorf("expected clamped mass 0, got %v", b.Physics.Mass)
	}
	if len(w.Lights) != 1 || w.Lights[0].LightType != LightDirectional {
		t.Errorf("unexpected lights: %+v", w.Lights)
	}
	if got := w.Systems[0].Interactions[0].ActionType; got != ActionTriggerEvent {
		t.Errorf("expected fallback action, got %q", got)
	}

	// the coerced world has a valid schema
	if err := w.Check(); err != nil {
		t.Errorf("coerced world fails schema check: %v", err)
	}

	if _, err := WorldFromMap(nil); err == nil {
		t.Error("expected error for nil document")
	}
}
