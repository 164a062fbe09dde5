package wdl

// Enum values serialize as their string tag. Strict decoding rejects unknown
// tags with a SchemaError; the loose FromMap constructors fall back to each
// enum's default variant instead.

type EntityType string

const (
	EntityStaticMesh     EntityType = "static_mesh"
	EntityDynamicObject  EntityType = "dynamic_object"
	EntityCharacter      EntityType = "character"
	EntityProp           EntityType = "prop"
	EntityTrigger        EntityType = "trigger"
	EntitySpawnPoint     EntityType = "spawn_point"
	EntityWaypoint       EntityType = "waypoint"
	EntityLight          EntityType = "light"
	EntityCamera         EntityType = "camera"
	EntityAudioSource    EntityType = "audio_source"
	EntityParticleSystem EntityType = "particle_system"
	EntityTerrain        EntityType = "terrain"
)

var entityTypes = map[EntityType]struct{}{
	EntityStaticMesh: {}, EntityDynamicObject: {}, EntityCharacter: {},
	EntityProp: {}, EntityTrigger: {}, EntitySpawnPoint: {},
	EntityWaypoint: {}, EntityLight: {}, EntityCamera: {},
	EntityAudioSource: {}, EntityParticleSystem: {}, EntityTerrain: {},
}

func (t EntityType) Valid() bool {
	_, ok := entityTypes[t]
	return ok
}

type MaterialType string

const (
	MaterialStandard    MaterialType = "standard"
	MaterialPBR         MaterialType = "pbr"
	MaterialUnlit       MaterialType = "unlit"
	MaterialTransparent MaterialType = "transparent"
	MaterialEmissive    MaterialType = "emissive"
)

func (t MaterialType) Valid() bool {
	switch t {
	case MaterialStandard, MaterialPBR, MaterialUnlit, MaterialTransparent, MaterialEmissive:
		return true
	}
	return false
}

type LightType string

const (
	LightDirectional LightType = "directional"
	LightPoint       LightType = "point"
	LightSpot        LightType = "spot"
	LightArea        LightType = "area"
	LightAmbient     LightType = "ambient"
)

func (t LightType) Valid() bool {
	switch t {
	case LightDirectional, LightPoint, LightSpot, LightArea, LightAmbient:
		return true
	}
	return false
}

type ColliderType string

const (
	ColliderBox     ColliderType = "box"
	ColliderSphere  ColliderType = "sphere"
	ColliderCapsule ColliderType = "capsule"
	ColliderMesh    ColliderType = "mesh"
	ColliderConvex  ColliderType = "convex"
)

func (t ColliderType) Valid() bool {
	switch t {
	case ColliderBox, ColliderSphere, ColliderCapsule, ColliderMesh, ColliderConvex:
		return true
	}
	return false
}

type WeatherType string

const (
	WeatherClear  WeatherType = "clear"
	WeatherCloudy WeatherType = "cloudy"
	WeatherRainy  WeatherType = "rainy"
	WeatherStormy WeatherType = "stormy"
	WeatherSnowy  WeatherType = "snowy"
	WeatherFoggy  WeatherType = "foggy"
)

func (t WeatherType) Valid() bool {
	switch t {
	case WeatherClear, WeatherCloudy, WeatherRainy, WeatherStormy, WeatherSnowy, WeatherFoggy:
		return true
	}
	return false
}

type InteractionType string

const (
	InteractionClick     InteractionType = "click"
	InteractionHover     InteractionType = "hover"
	InteractionCollision InteractionType = "collision"
	InteractionProximity InteractionType = "proximity"
	InteractionGrab      InteractionType = "grab"
	InteractionUse       InteractionType = "use"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionClick, InteractionHover, InteractionCollision, InteractionProximity, InteractionGrab, InteractionUse:
		return true
	}
	return false
}

type ActionType string

const (
	ActionSpawn        ActionType = "spawn"
	ActionDestroy      ActionType = "destroy"
	ActionMove         ActionType = "move"
	ActionRotate       ActionType = "rotate"
	ActionAnimate      ActionType = "animate"
	ActionPlaySound    ActionType = "play_sound"
	ActionTriggerEvent ActionType = "trigger_event"
	ActionSetProperty  ActionType = "set_property"
	ActionTeleport     ActionType = "teleport"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionSpawn, ActionDestroy, ActionMove, ActionRotate, ActionAnimate,
		ActionPlaySound, ActionTriggerEvent, ActionSetProperty, ActionTeleport:
		return true
	}
	return false
}

// EntityTypes lists all entity type tags in declaration order, for
// schema-definition artifacts emitted by the generators.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityStaticMesh, EntityDynamicObject, EntityCharacter, EntityProp,
		EntityTrigger, EntitySpawnPoint, EntityWaypoint, EntityLight,
		EntityCamera, EntityAudioSource, EntityParticleSystem, EntityTerrain,
	}
}

func LightTypes() []LightType {
	return []LightType{LightDirectional, LightPoint, LightSpot, LightArea, LightAmbient}
}

func WeatherTypes() []WeatherType {
	return []WeatherType{WeatherClear, WeatherCloudy, WeatherRainy, WeatherStormy, WeatherSnowy, WeatherFoggy}
}

func InteractionTypes() []InteractionType {
	return []InteractionType{
		InteractionClick, InteractionHover, InteractionCollision,
		InteractionProximity, InteractionGrab, InteractionUse,
	}
}

func ActionTypes() []ActionType {
	return []ActionType{
		ActionSpawn, ActionDestroy, ActionMove, ActionRotate, ActionAnimate,
		ActionPlaySound, ActionTriggerEvent, ActionSetProperty, ActionTeleport,
	}
}
