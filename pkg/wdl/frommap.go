package wdl

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/omniworld-xyz/builder/pkg/cmath"
	"github.com/omniworld-xyz/builder/utils"
)

// FromMap constructors build WDL values from loosely typed data, typically
// the raw output of an upstream text-generation pipeline. Unknown or
// malformed fields fall back to documented defaults, unrecognized enum tags
// to the default variant, and out-of-range numerics are clamped. Only a nil
// document is a hard failure.

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

func Vec3FromMap(m map[string]any, def cmath.Vec3) cmath.Vec3 {
	if m == nil {
		return def
	}
	return cmath.Vec3{
		X: utils.F64FromMap(m, "x", def.X),
		Y: utils.F64FromMap(m, "y", def.Y),
		Z: utils.F64FromMap(m, "z", def.Z),
	}
}

func ColorFromMap(m map[string]any, def cmath.Color) cmath.Color {
	if m == nil {
		return def
	}
	return cmath.Color{
		R: clamp01(utils.F64FromMap(m, "r", def.R)),
		G: clamp01(utils.F64FromMap(m, "g", def.G)),
		B: clamp01(utils.F64FromMap(m, "b", def.B)),
		A: clamp01(utils.F64FromMap(m, "a", def.A)),
	}
}

func TransformFromMap(m map[string]any) cmath.Transform {
	def := cmath.DefaultTransform()
	if m == nil {
		return def
	}
	return cmath.Transform{
		Position: Vec3FromMap(utils.MapFromMap(m, "position"), def.Position),
		Rotation: Vec3FromMap(utils.MapFromMap(m, "rotation"), def.Rotation),
		Scale:    Vec3FromMap(utils.MapFromMap(m, "scale"), def.Scale),
	}
}

func MaterialFromMap(m map[string]any) *Material {
	if m == nil {
		return nil
	}
	mat := defaultMaterial()
	mat.Name = utils.StringFromMap(m, "name", "Material")
	if t := MaterialType(utils.StringFromMap(m, "material_type", string(MaterialStandard))); t.Valid() {
		mat.MaterialType = t
	}
	mat.BaseColor = ColorFromMap(utils.MapFromMap(m, "base_color"), mat.BaseColor)
	mat.Metallic = clamp01(utils.F64FromMap(m, "metallic", mat.Metallic))
	mat.Roughness = clamp01(utils.F64FromMap(m, "roughness", mat.Roughness))
	if em := utils.MapFromMap(m, "emission_color"); em != nil {
		c := ColorFromMap(em, cmath.WhiteColor())
		mat.EmissionColor = &c
	}
	mat.EmissionStrength = clampMin(utils.F64FromMap(m, "emission_strength", 0), 0)
	mat.TexturePath = utils.StringFromMap(m, "texture_path", "")
	mat.NormalMapPath = utils.StringFromMap(m, "normal_map_path", "")
	return &mat
}

func PhysicsFromMap(m map[string]any) PhysicsSettings {
	p := DefaultPhysics()
	if m == nil {
		return p
	}
	p.Enabled = utils.BoolFromMap(m, "enabled", p.Enabled)
	p.IsKinematic = utils.BoolFromMap(m, "is_kinematic", p.IsKinematic)
	p.Mass = clampMin(utils.F64FromMap(m, "mass", p.Mass), 0)
	p.Drag = clampMin(utils.F64FromMap(m, "drag", p.Drag), 0)
	p.AngularDrag = clampMin(utils.F64FromMap(m, "angular_drag", p.AngularDrag), 0)
	p.UseGravity = utils.BoolFromMap(m, "use_gravity", p.UseGravity)
	p.CollisionEnabled = utils.BoolFromMap(m, "collision_enabled", p.CollisionEnabled)
	return p
}

func ColliderFromMap(m map[string]any) *Collider {
	if m == nil {
		return nil
	}
	c := defaultCollider()
	if t := ColliderType(utils.StringFromMap(m, "collider_type", string(ColliderBox))); t.Valid() {
		c.ColliderType = t
	}
	c.IsTrigger = utils.BoolFromMap(m, "is_trigger", false)
	c.Center = Vec3FromMap(utils.MapFromMap(m, "center"), c.Center)
	c.Size = Vec3FromMap(utils.MapFromMap(m, "size"), c.Size)
	if v, ok := m["radius"]; ok {
		r := utils.FromAny(v, 0.0)
		c.Radius = &r
	}
	if v, ok := m["height"]; ok {
		h := utils.FromAny(v, 0.0)
		c.Height = &h
	}
	return &c
}

func EntityFromMap(m map[string]any) *Entity {
	e := NewEntity(utils.StringFromMap(m, "name", "Entity"), EntityStaticMesh)
	if m == nil {
		return e
	}
	if id := utils.StringFromMap(m, "id", ""); id != "" {
		e.ID = id
	}
	if t := EntityType(utils.StringFromMap(m, "entity_type", string(EntityStaticMesh))); t.Valid() {
		e.EntityType = t
	}
	e.Transform = TransformFromMap(utils.MapFromMap(m, "transform"))
	e.Material = MaterialFromMap(utils.MapFromMap(m, "material"))
	e.Physics = PhysicsFromMap(utils.MapFromMap(m, "physics"))
	e.Collider = ColliderFromMap(utils.MapFromMap(m, "collider"))
	e.ParentID = utils.StringFromMap(m, "parent_id", "")
	if ids := utils.StringsFromMap(m, "children_ids"); ids != nil {
		e.ChildrenIDs = ids
	}
	if tags := utils.StringsFromMap(m, "tags"); tags != nil {
		e.Tags = tags
	}
	if meta := utils.MapFromMap(m, "metadata"); meta != nil {
		e.Metadata = meta
	}
	e.AssetReference = utils.StringFromMap(m, "asset_reference", "")
	e.PrefabReference = utils.StringFromMap(m, "prefab_reference", "")
	return e
}

func LightingFromMap(m map[string]any) *Lighting {
	l := defaultLighting()
	l.Name = utils.StringFromMap(m, "name", "Light")
	if m == nil {
		return &l
	}
	if t := LightType(utils.StringFromMap(m, "light_type", string(LightPoint))); t.Valid() {
		l.LightType = t
	}
	l.Color = ColorFromMap(utils.MapFromMap(m, "color"), l.Color)
	l.Intensity = clampMin(utils.F64FromMap(m, "intensity", l.Intensity), 0)
	if v, ok := m["range"]; ok {
		r := utils.FromAny(v, 0.0)
		l.Range = &r
	}
	if v, ok := m["spot_angle"]; ok {
		a := utils.FromAny(v, 0.0)
		l.SpotAngle = &a
	}
	l.CastShadows = utils.BoolFromMap(m, "cast_shadows", l.CastShadows)
	l.Transform = TransformFromMap(utils.MapFromMap(m, "transform"))
	return &l
}

func InteractionFromMap(m map[string]any) Interaction {
	i := Interaction{
		TriggerType: InteractionClick,
		ActionType:  ActionTriggerEvent,
		Parameters:  map[string]any{},
	}
	if m == nil {
		return i
	}
	if t := InteractionType(utils.StringFromMap(m, "trigger_type", string(InteractionClick))); t.Valid() {
		i.TriggerType = t
	}
	if t := ActionType(utils.StringFromMap(m, "action_type", string(ActionTriggerEvent))); t.Valid() {
		i.ActionType = t
	}
	i.TargetEntityID = utils.StringFromMap(m, "target_entity_id", "")
	if p := utils.MapFromMap(m, "parameters"); p != nil {
		i.Parameters = p
	}
	return i
}

func SystemFromMap(m map[string]any) *System {
	s := NewSystem(utils.StringFromMap(m, "name", "System"))
	if m == nil {
		return s
	}
	if id := utils.StringFromMap(m, "id", ""); id != "" {
		s.ID = id
	}
	s.Description = utils.StringFromMap(m, "description", "")
	for _, raw := range utils.SlicesFromMap(m, "interactions") {
		if im, ok := raw.(map[string]any); ok {
			s.Interactions = append(s.Interactions, InteractionFromMap(im))
		}
	}
	s.Enabled = utils.BoolFromMap(m, "enabled", true)
	s.Priority = utils.IntFromMap(m, "priority", 0)
	if c := utils.MapFromMap(m, "conditions"); c != nil {
		s.Conditions = c
	}
	return s
}

func EnvironmentFromMap(m map[string]any) Environment {
	env := DefaultEnvironment()
	if m == nil {
		return env
	}
	if t := WeatherType(utils.StringFromMap(m, "weather", string(WeatherClear))); t.Valid() {
		env.Weather = t
	}
	if tod := utils.MapFromMap(m, "time_of_day"); tod != nil {
		env.TimeOfDay.Hour = utils.IntFromMap(tod, "hour", env.TimeOfDay.Hour)
		env.TimeOfDay.Minute = utils.IntFromMap(tod, "minute", env.TimeOfDay.Minute)
		env.TimeOfDay.DayNightCycle = utils.BoolFromMap(tod, "day_night_cycle", env.TimeOfDay.DayNightCycle)
		env.TimeOfDay.CycleDurationSeconds = clampMin(
			utils.F64FromMap(tod, "cycle_duration_seconds", env.TimeOfDay.CycleDurationSeconds), 0)
		if env.TimeOfDay.Hour < 0 || env.TimeOfDay.Hour > 23 {
			env.TimeOfDay.Hour = 12
		}
		if env.TimeOfDay.Minute < 0 || env.TimeOfDay.Minute > 59 {
			env.TimeOfDay.Minute = 0
		}
	}
	env.AmbientLight = ColorFromMap(utils.MapFromMap(m, "ambient_light"), env.AmbientLight)
	env.FogEnabled = utils.BoolFromMap(m, "fog_enabled", env.FogEnabled)
	env.FogColor = ColorFromMap(utils.MapFromMap(m, "fog_color"), env.FogColor)
	env.FogDensity = clamp01(utils.F64FromMap(m, "fog_density", env.FogDensity))
	if sky := utils.MapFromMap(m, "skybox"); sky != nil {
		env.Skybox.SkyboxType = utils.StringFromMap(sky, "skybox_type", env.Skybox.SkyboxType)
		env.Skybox.TexturePath = utils.StringFromMap(sky, "texture_path", "")
		env.Skybox.TintColor = ColorFromMap(utils.MapFromMap(sky, "tint_color"), env.Skybox.TintColor)
		env.Skybox.Exposure = clampMin(utils.F64FromMap(sky, "exposure", env.Skybox.Exposure), 0)
		env.Skybox.Rotation = utils.F64FromMap(sky, "rotation", env.Skybox.Rotation)
	}
	env.Gravity = Vec3FromMap(utils.MapFromMap(m, "gravity"), env.Gravity)
	env.AudioReverbPreset = utils.StringFromMap(m, "audio_reverb_preset", "")
	return env
}

func MetadataFromMap(m map[string]any) Metadata {
	meta := NewMetadata(utils.StringFromMap(m, "title", "Untitled World"))
	if m == nil {
		return meta
	}
	meta.Description = utils.StringFromMap(m, "description", "")
	meta.Author = utils.StringFromMap(m, "author", "")
	meta.Version = utils.StringFromMap(m, "version", meta.Version)
	if ts := utils.StringFromMap(m, "created_at", ""); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			meta.CreatedAt = t
		}
	}
	if ts := utils.StringFromMap(m, "updated_at", ""); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			meta.UpdatedAt = t
		}
	}
	if tags := utils.StringsFromMap(m, "tags"); tags != nil {
		meta.Tags = tags
	}
	if platforms := utils.StringsFromMap(m, "target_platforms"); platforms != nil {
		meta.TargetPlatforms = platforms
	}
	return meta
}

func BoundsFromMap(m map[string]any) WorldBounds {
	b := DefaultBounds()
	if m == nil {
		return b
	}
	b.MinBounds = Vec3FromMap(utils.MapFromMap(m, "min_bounds"), b.MinBounds)
	b.MaxBounds = Vec3FromMap(utils.MapFromMap(m, "max_bounds"), b.MaxBounds)
	return b
}

// WorldFromMap coerces a raw document into a usable World. A nil document is
// the only hard failure; everything else degrades to defaults.
func WorldFromMap(m map[string]any) (*World, error) {
	if m == nil {
		return nil, errors.New("cannot build a world from a nil document")
	}
	w := &World{
		Metadata:    MetadataFromMap(utils.MapFromMap(m, "metadata")),
		Environment: EnvironmentFromMap(utils.MapFromMap(m, "environment")),
		Entities:    []*Entity{},
		Lights:      []*Lighting{},
		Systems:     []*System{},
		Bounds:      BoundsFromMap(utils.MapFromMap(m, "bounds")),
	}
	if w.Metadata.Title == "" {
		w.Metadata.Title = "Untitled World"
	}
	seen := map[string]struct{}{}
	for _, raw := range utils.SlicesFromMap(m, "entities") {
		em, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		e := EntityFromMap(em)
		// Colliding ids from untrusted input get regenerated so the result
		// is usable; the validator still reports duplicates on raw decode.
		if _, dup := seen[e.ID]; dup {
			e.ID = uuid.NewString()
		}
		seen[e.ID] = struct{}{}
		w.AddEntity(e)
	}
	for _, raw := range utils.SlicesFromMap(m, "lights") {
		if lm, ok := raw.(map[string]any); ok {
			w.AddLight(LightingFromMap(lm))
		}
	}
	for _, raw := range utils.SlicesFromMap(m, "systems") {
		if sm, ok := raw.(map[string]any); ok {
			w.AddSystem(SystemFromMap(sm))
		}
	}
	return w, nil
}
