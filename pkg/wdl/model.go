package wdl

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/omniworld-xyz/builder/pkg/cmath"
)

// Optional fields across the model are pointers (or omitempty strings) and
// are omitted from JSON when unset. Omitted non-optional fields are filled
// with their documented defaults on decode, so a document round-trips
// field-for-field.

// Material describes the visual appearance of an entity.
type Material struct {
	Name             string       `json:"name"`
	MaterialType     MaterialType `json:"material_type"`
	BaseColor        cmath.Color  `json:"base_color"`
	Metallic         float64      `json:"metallic"`
	Roughness        float64      `json:"roughness"`
	EmissionColor    *cmath.Color `json:"emission_color,omitempty"`
	EmissionStrength float64      `json:"emission_strength"`
	TexturePath      string       `json:"texture_path,omitempty"`
	NormalMapPath    string       `json:"normal_map_path,omitempty"`
}

func NewMaterial(name string) *Material {
	m := defaultMaterial()
	m.Name = name
	return &m
}

func defaultMaterial() Material {
	return Material{
		MaterialType: MaterialStandard,
		BaseColor:    cmath.WhiteColor(),
		Roughness:    0.5,
	}
}

func (m *Material) UnmarshalJSON(data []byte) error {
	type alias Material
	a := alias(defaultMaterial())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = Material(a)
	return nil
}

func (m *Material) Check() error {
	if m.Name == "" {
		return schemaErrorf("name", "required")
	}
	if !m.MaterialType.Valid() {
		return schemaErrorf("material_type", "unknown tag %q", m.MaterialType)
	}
	if err := m.BaseColor.Check(); err != nil {
		return prefixed("base_color", err)
	}
	if m.Metallic < 0 || m.Metallic > 1 {
		return schemaErrorf("metallic", "out of range: %v", m.Metallic)
	}
	if m.Roughness < 0 || m.Roughness > 1 {
		return schemaErrorf("roughness", "out of range: %v", m.Roughness)
	}
	if m.EmissionColor != nil {
		if err := m.EmissionColor.Check(); err != nil {
			return prefixed("emission_color", err)
		}
	}
	if m.EmissionStrength < 0 {
		return schemaErrorf("emission_strength", "must be >= 0, got %v", m.EmissionStrength)
	}
	return nil
}

// PhysicsSettings configures rigid body behavior for an entity.
type PhysicsSettings struct {
	Enabled          bool    `json:"enabled"`
	IsKinematic      bool    `json:"is_kinematic"`
	Mass             float64 `json:"mass"`
	Drag             float64 `json:"drag"`
	AngularDrag      float64 `json:"angular_drag"`
	UseGravity       bool    `json:"use_gravity"`
	CollisionEnabled bool    `json:"collision_enabled"`
}

func DefaultPhysics() PhysicsSettings {
	return PhysicsSettings{
		Mass:             1.0,
		AngularDrag:      0.05,
		UseGravity:       true,
		CollisionEnabled: true,
	}
}

func (p *PhysicsSettings) UnmarshalJSON(data []byte) error {
	type alias PhysicsSettings
	a := alias(DefaultPhysics())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = PhysicsSettings(a)
	return nil
}

func (p *PhysicsSettings) Check() error {
	if p.Mass < 0 {
		return schemaErrorf("mass", "must be >= 0, got %v", p.Mass)
	}
	if p.Drag < 0 {
		return schemaErrorf("drag", "must be >= 0, got %v", p.Drag)
	}
	if p.AngularDrag < 0 {
		return schemaErrorf("angular_drag", "must be >= 0, got %v", p.AngularDrag)
	}
	return nil
}

// Collider describes the collision shape of an entity. Radius and Height
// only apply to sphere/capsule shapes and stay unset otherwise.
type Collider struct {
	ColliderType ColliderType `json:"collider_type"`
	IsTrigger    bool         `json:"is_trigger"`
	Center       cmath.Vec3   `json:"center"`
	Size         cmath.Vec3   `json:"size"`
	Radius       *float64     `json:"radius,omitempty"`
	Height       *float64     `json:"height,omitempty"`
}

func defaultCollider() Collider {
	return Collider{
		ColliderType: ColliderBox,
		Size:         cmath.OneVec3(),
	}
}

func NewCollider(t ColliderType) *Collider {
	c := defaultCollider()
	c.ColliderType = t
	return &c
}

func (c *Collider) UnmarshalJSON(data []byte) error {
	type alias Collider
	a := alias(defaultCollider())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Collider(a)
	return nil
}

func (c *Collider) Check() error {
	if !c.ColliderType.Valid() {
		return schemaErrorf("collider_type", "unknown tag %q", c.ColliderType)
	}
	return nil
}

// Entity is the central placeable node of a world. ParentID and ChildrenIDs
// are weak references resolved through the owning World, never pointers.
type Entity struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	EntityType      EntityType      `json:"entity_type"`
	Transform       cmath.Transform `json:"transform"`
	Material        *Material       `json:"material,omitempty"`
	Physics         PhysicsSettings `json:"physics"`
	Collider        *Collider       `json:"collider,omitempty"`
	ParentID        string          `json:"parent_id,omitempty"`
	ChildrenIDs     []string        `json:"children_ids"`
	Tags            []string        `json:"tags"`
	Metadata        map[string]any  `json:"metadata"`
	AssetReference  string          `json:"asset_reference,omitempty"`
	PrefabReference string          `json:"prefab_reference,omitempty"`
}

// NewEntity returns an entity with a freshly generated unique id. The id is
// stable for the entity's lifetime.
func NewEntity(name string, entityType EntityType) *Entity {
	return &Entity{
		ID:          uuid.NewString(),
		Name:        name,
		EntityType:  entityType,
		Transform:   cmath.DefaultTransform(),
		Physics:     DefaultPhysics(),
		ChildrenIDs: []string{},
		Tags:        []string{},
		Metadata:    map[string]any{},
	}
}

func (e *Entity) UnmarshalJSON(data []byte) error {
	type alias Entity
	a := alias{
		EntityType: EntityStaticMesh,
		Transform:  cmath.DefaultTransform(),
		Physics:    DefaultPhysics(),
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = Entity(a)
	return nil
}

func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (e *Entity) Check() error {
	if e.ID == "" {
		return schemaErrorf("id", "required")
	}
	if e.Name == "" {
		return schemaErrorf("name", "required")
	}
	if !e.EntityType.Valid() {
		return schemaErrorf("entity_type", "unknown tag %q", e.EntityType)
	}
	if e.Material != nil {
		if err := e.Material.Check(); err != nil {
			return prefixed("material", err)
		}
	}
	if err := e.Physics.Check(); err != nil {
		return prefixed("physics", err)
	}
	if e.Collider != nil {
		if err := e.Collider.Check(); err != nil {
			return prefixed("collider", err)
		}
	}
	return nil
}

// Lighting is a light source placed in the world.
type Lighting struct {
	Name        string          `json:"name"`
	LightType   LightType       `json:"light_type"`
	Color       cmath.Color     `json:"color"`
	Intensity   float64         `json:"intensity"`
	Range       *float64        `json:"range,omitempty"`
	SpotAngle   *float64        `json:"spot_angle,omitempty"`
	CastShadows bool            `json:"cast_shadows"`
	Transform   cmath.Transform `json:"transform"`
}

func NewLighting(name string, lightType LightType) *Lighting {
	l := defaultLighting()
	l.Name = name
	l.LightType = lightType
	return &l
}

func defaultLighting() Lighting {
	return Lighting{
		LightType:   LightPoint,
		Color:       cmath.WhiteColor(),
		Intensity:   1.0,
		CastShadows: true,
		Transform:   cmath.DefaultTransform(),
	}
}

func (l *Lighting) UnmarshalJSON(data []byte) error {
	type alias Lighting
	a := alias(defaultLighting())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = Lighting(a)
	return nil
}

func (l *Lighting) Check() error {
	if l.Name == "" {
		return schemaErrorf("name", "required")
	}
	if !l.LightType.Valid() {
		return schemaErrorf("light_type", "unknown tag %q", l.LightType)
	}
	if err := l.Color.Check(); err != nil {
		return prefixed("color", err)
	}
	if l.Intensity < 0 {
		return schemaErrorf("intensity", "must be >= 0, got %v", l.Intensity)
	}
	return nil
}

// Interaction binds a trigger to an action inside a System. TargetEntityID
// is a weak reference; referential integrity is a validator concern.
type Interaction struct {
	TriggerType    InteractionType `json:"trigger_type"`
	ActionType     ActionType      `json:"action_type"`
	TargetEntityID string          `json:"target_entity_id,omitempty"`
	Parameters     map[string]any  `json:"parameters"`
}

func (i *Interaction) Check() error {
	if !i.TriggerType.Valid() {
		return schemaErrorf("trigger_type", "unknown tag %q", i.TriggerType)
	}
	if !i.ActionType.Valid() {
		return schemaErrorf("action_type", "unknown tag %q", i.ActionType)
	}
	return nil
}

// System is a named bundle of interaction rules layered over entities.
// Priority ordering semantics are left to the consuming engine; the model
// only preserves it.
type System struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Interactions []Interaction  `json:"interactions"`
	Enabled      bool           `json:"enabled"`
	Priority     int            `json:"priority"`
	Conditions   map[string]any `json:"conditions"`
}

func NewSystem(name string) *System {
	return &System{
		ID:           uuid.NewString(),
		Name:         name,
		Interactions: []Interaction{},
		Enabled:      true,
		Conditions:   map[string]any{},
	}
}

func (s *System) UnmarshalJSON(data []byte) error {
	type alias System
	a := alias{Enabled: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = System(a)
	return nil
}

func (s *System) Check() error {
	if s.ID == "" {
		return schemaErrorf("id", "required")
	}
	if s.Name == "" {
		return schemaErrorf("name", "required")
	}
	for i := range s.Interactions {
		if err := s.Interactions[i].Check(); err != nil {
			return prefixed("interactions", err)
		}
	}
	return nil
}

// WorldBounds is the axis-aligned legal region for entity placement.
type WorldBounds struct {
	MinBounds cmath.Vec3 `json:"min_bounds"`
	MaxBounds cmath.Vec3 `json:"max_bounds"`
}

func DefaultBounds() WorldBounds {
	return WorldBounds{
		MinBounds: cmath.NewVec3(-1000, -100, -1000),
		MaxBounds: cmath.NewVec3(1000, 500, 1000),
	}
}

func (b *WorldBounds) UnmarshalJSON(data []byte) error {
	type alias WorldBounds
	a := alias(DefaultBounds())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*b = WorldBounds(a)
	return nil
}

// Contains reports whether a point lies inside the bounds, boundary inclusive.
func (b WorldBounds) Contains(p cmath.Vec3) bool {
	return p.X >= b.MinBounds.X && p.X <= b.MaxBounds.X &&
		p.Y >= b.MinBounds.Y && p.Y <= b.MaxBounds.Y &&
		p.Z >= b.MinBounds.Z && p.Z <= b.MaxBounds.Z
}

// TimeOfDay configures the world clock and the optional day/night cycle.
type TimeOfDay struct {
	Hour                 int     `json:"hour"`
	Minute               int     `json:"minute"`
	DayNightCycle        bool    `json:"day_night_cycle"`
	CycleDurationSeconds float64 `json:"cycle_duration_seconds"`
}

func DefaultTimeOfDay() TimeOfDay {
	return TimeOfDay{Hour: 12, CycleDurationSeconds: 3600}
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	type alias TimeOfDay
	a := alias(DefaultTimeOfDay())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = TimeOfDay(a)
	return nil
}

func (t *TimeOfDay) Check() error {
	if t.Hour < 0 || t.Hour > 23 {
		return schemaErrorf("hour", "out of range: %d", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return schemaErrorf("minute", "out of range: %d", t.Minute)
	}
	if t.CycleDurationSeconds < 0 {
		return schemaErrorf("cycle_duration_seconds", "must be >= 0, got %v", t.CycleDurationSeconds)
	}
	return nil
}

// SkyboxSettings configures the sky rendering of the environment.
type SkyboxSettings struct {
	SkyboxType  string      `json:"skybox_type"`
	TexturePath string      `json:"texture_path,omitempty"`
	TintColor   cmath.Color `json:"tint_color"`
	Exposure    float64     `json:"exposure"`
	Rotation    float64     `json:"rotation"`
}

func DefaultSkybox() SkyboxSettings {
	return SkyboxSettings{
		SkyboxType: "procedural",
		TintColor:  cmath.WhiteColor(),
		Exposure:   1.0,
	}
}

func (s *SkyboxSettings) UnmarshalJSON(data []byte) error {
	type alias SkyboxSettings
	a := alias(DefaultSkybox())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = SkyboxSettings(a)
	return nil
}

func (s *SkyboxSettings) Check() error {
	if err := s.TintColor.Check(); err != nil {
		return prefixed("tint_color", err)
	}
	if s.Exposure < 0 {
		return schemaErrorf("exposure", "must be >= 0, got %v", s.Exposure)
	}
	return nil
}

// Environment holds the world-level ambience: weather, clock, fog, skybox
// and gravity.
type Environment struct {
	Weather           WeatherType    `json:"weather"`
	TimeOfDay         TimeOfDay      `json:"time_of_day"`
	AmbientLight      cmath.Color    `json:"ambient_light"`
	FogEnabled        bool           `json:"fog_enabled"`
	FogColor          cmath.Color    `json:"fog_color"`
	FogDensity        float64        `json:"fog_density"`
	Skybox            SkyboxSettings `json:"skybox"`
	Gravity           cmath.Vec3     `json:"gravity"`
	AudioReverbPreset string         `json:"audio_reverb_preset,omitempty"`
}

func DefaultEnvironment() Environment {
	return Environment{
		Weather:      WeatherClear,
		TimeOfDay:    DefaultTimeOfDay(),
		AmbientLight: cmath.GreyColor(0.2),
		FogColor:     cmath.GreyColor(0.5),
		FogDensity:   0.01,
		Skybox:       DefaultSkybox(),
		Gravity:      cmath.NewVec3(0, -9.81, 0),
	}
}

func (e *Environment) UnmarshalJSON(data []byte) error {
	type alias Environment
	a := alias(DefaultEnvironment())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = Environment(a)
	return nil
}

func (e *Environment) Check() error {
	if !e.Weather.Valid() {
		return schemaErrorf("weather", "unknown tag %q", e.Weather)
	}
	if err := e.TimeOfDay.Check(); err != nil {
		return prefixed("time_of_day", err)
	}
	if err := e.AmbientLight.Check(); err != nil {
		return prefixed("ambient_light", err)
	}
	if err := e.FogColor.Check(); err != nil {
		return prefixed("fog_color", err)
	}
	if e.FogDensity < 0 || e.FogDensity > 1 {
		return schemaErrorf("fog_density", "out of range: %v", e.FogDensity)
	}
	if err := e.Skybox.Check(); err != nil {
		return prefixed("skybox", err)
	}
	return nil
}

// Metadata describes the world document itself. Title is the only required
// field of a minimal WDL document.
type Metadata struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Author          string    `json:"author"`
	Version         string    `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Tags            []string  `json:"tags"`
	TargetPlatforms []string  `json:"target_platforms"`
}

func NewMetadata(title string) Metadata {
	now := time.Now().UTC()
	return Metadata{
		Title:           title,
		Version:         "1.0.0",
		CreatedAt:       now,
		UpdatedAt:       now,
		Tags:            []string{},
		TargetPlatforms: []string{"unity", "unreal", "horizon"},
	}
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	type alias Metadata
	a := alias{Version: "1.0.0"}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = Metadata(a)
	return nil
}

func (m *Metadata) Check() error {
	if m.Title == "" {
		return schemaErrorf("title", "required")
	}
	return nil
}
