package generate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniworld-xyz/builder/pkg/wdl"
)

// UnrealGenerator projects a world into declarative Python data tables
// consumed by Unreal editor scripting.
type UnrealGenerator struct{}

func NewUnrealGenerator() *UnrealGenerator {
	return &UnrealGenerator{}
}

func (g *UnrealGenerator) PlatformName() string {
	return "unreal"
}

func (g *UnrealGenerator) FileExtension() string {
	return ".py"
}

func (g *UnrealGenerator) Generate(world *wdl.World) (map[string]string, error) {
	if world == nil {
		return nil, errors.New("unreal generator: nil world")
	}
	dump, err := worldDataDump(world)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"Scripts/world_builder.py":      g.worldBuilder(world),
		"Scripts/entity_definitions.py": g.entityDefinitions(world),
		"Scripts/lighting_setup.py":     g.lightingSetup(world),
		"Scripts/environment_setup.py":  g.environmentSetup(world),
		"Scripts/wdl_types.py":          g.typeDefinitions(),
		"Data/world_data.json":          dump,
	}, nil
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func pyOpt(v *float64) string {
	if v == nil {
		return "None"
	}
	return ff(*v)
}

func pyStrOpt(s string) string {
	if s == "" {
		return "None"
	}
	return q(s)
}

func pyStrList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, q(item))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (g *UnrealGenerator) worldBuilder(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"""World builder for %s (version %s).

%s
"""

import unreal

from entity_definitions import ENTITY_DATA, spawn_entity
from environment_setup import setup_environment
from lighting_setup import setup_lighting

WORLD_TITLE = %s
WORLD_AUTHOR = %s
WORLD_BOUNDS_MIN = %s
WORLD_BOUNDS_MAX = %s


class WorldBuilder:
    """Drives the full scene construction from the generated data tables."""

    def build(self):
        unreal.log(f"Building world: {WORLD_TITLE}")
        setup_environment()
        actors = [spawn_entity(data) for data in ENTITY_DATA]
        lights = setup_lighting()
        unreal.log(f"World build complete: {len(actors)} entities, {len(lights)} lights")
        return actors, lights


if __name__ == "__main__":
    WorldBuilder().build()
`,
		world.Metadata.Title, world.Metadata.Version,
		world.Metadata.Description,
		q(world.Metadata.Title), q(world.Metadata.Author),
		vecTuple(world.Bounds.MinBounds), vecTuple(world.Bounds.MaxBounds))
	return b.String()
}

func (g *UnrealGenerator) entityDefinitions(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"""Entity data tables for %s. Total entities: %d"""

import unreal

from wdl_types import EntityData

ENTITY_DATA = [
`, world.Metadata.Title, len(world.Entities))
	for _, e := range world.Entities {
		fmt.Fprintf(&b, "    EntityData(\n")
		fmt.Fprintf(&b, "        id=%s,\n", q(e.ID))
		fmt.Fprintf(&b, "        name=%s,\n", q(e.Name))
		fmt.Fprintf(&b, "        entity_type=%s,\n", q(string(e.EntityType)))
		fmt.Fprintf(&b, "        position=%s,\n", vecTuple(e.Transform.Position))
		fmt.Fprintf(&b, "        rotation=%s,\n", vecTuple(e.Transform.Rotation))
		fmt.Fprintf(&b, "        scale=%s,\n", vecTuple(e.Transform.Scale))
		if e.Material != nil {
			m := e.Material
			fmt.Fprintf(&b, "        material_name=%s,\n", q(m.Name))
			fmt.Fprintf(&b, "        material_type=%s,\n", q(string(m.MaterialType)))
			fmt.Fprintf(&b, "        base_color=%s,\n", colorTuple(m.BaseColor))
			fmt.Fprintf(&b, "        metallic=%s,\n", ff(m.Metallic))
			fmt.Fprintf(&b, "        roughness=%s,\n", ff(m.Roughness))
			fmt.Fprintf(&b, "        emission_strength=%s,\n", ff(m.EmissionStrength))
		}
		fmt.Fprintf(&b, "        physics_enabled=%s,\n", pyBool(e.Physics.Enabled))
		fmt.Fprintf(&b, "        mass=%s,\n", ff(e.Physics.Mass))
		fmt.Fprintf(&b, "        use_gravity=%s,\n", pyBool(e.Physics.UseGravity))
		if e.Collider != nil {
			fmt.Fprintf(&b, "        collider_type=%s,\n", q(string(e.Collider.ColliderType)))
			fmt.Fprintf(&b, "        is_trigger=%s,\n", pyBool(e.Collider.IsTrigger))
		}
		fmt.Fprintf(&b, "        parent_id=%s,\n", pyStrOpt(e.ParentID))
		fmt.Fprintf(&b, "        tags=%s,\n", pyStrList(e.Tags))
		fmt.Fprintf(&b, "        asset_reference=%s,\n", pyStrOpt(e.AssetReference))
		fmt.Fprintf(&b, "        prefab_reference=%s,\n", pyStrOpt(e.PrefabReference))
		fmt.Fprintf(&b, "    ),\n")
	}
	b.WriteString(`]

MESH_BY_TYPE = {
    "static_mesh": "/Engine/BasicShapes/Cube",
    "dynamic_object": "/Engine/BasicShapes/Cube",
    "character": "/Engine/BasicShapes/Capsule",
    "prop": "/Engine/BasicShapes/Cube",
    "terrain": "/Engine/BasicShapes/Plane",
}


def spawn_entity(data):
    """Spawn an actor for a single entity data row."""
    location = unreal.Vector(*data.position)
    rotation = unreal.Rotator(*data.rotation)

    mesh_path = MESH_BY_TYPE.get(data.entity_type)
    if mesh_path is None:
        actor = unreal.EditorLevelLibrary.spawn_actor_from_class(
            unreal.Actor.static_class(), location, rotation
        )
    else:
        mesh = unreal.EditorAssetLibrary.load_asset(mesh_path)
        actor = unreal.EditorLevelLibrary.spawn_actor_from_object(mesh, location, rotation)

    if actor:
        actor.set_actor_label(data.name)
        actor.set_actor_scale3d(unreal.Vector(*data.scale))
        if data.physics_enabled:
            component = actor.get_component_by_class(unreal.StaticMeshComponent)
            if component:
                component.set_simulate_physics(True)
                component.set_mass_override_in_kg(mass_in_kg=data.mass)
                component.set_enable_gravity(data.use_gravity)
    return actor
`)
	return b.String()
}

func (g *UnrealGenerator) lightingSetup(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"""Lighting setup for %s. Total lights: %d"""

import unreal

from wdl_types import LightData

LIGHT_DATA = [
`, world.Metadata.Title, len(world.Lights))
	for _, l := range world.Lights {
		fmt.Fprintf(&b, "    LightData(\n")
		fmt.Fprintf(&b, "        name=%s,\n", q(l.Name))
		fmt.Fprintf(&b, "        light_type=%s,\n", q(string(l.LightType)))
		fmt.Fprintf(&b, "        color=%s,\n", colorTuple(l.Color))
		fmt.Fprintf(&b, "        intensity=%s,\n", ff(l.Intensity))
		fmt.Fprintf(&b, "        range=%s,\n", pyOpt(l.Range))
		fmt.Fprintf(&b, "        spot_angle=%s,\n", pyOpt(l.SpotAngle))
		fmt.Fprintf(&b, "        cast_shadows=%s,\n", pyBool(l.CastShadows))
		fmt.Fprintf(&b, "        position=%s,\n", vecTuple(l.Transform.Position))
		fmt.Fprintf(&b, "        rotation=%s,\n", vecTuple(l.Transform.Rotation))
		fmt.Fprintf(&b, "    ),\n")
	}
	b.WriteString(`]

LIGHT_CLASS_BY_TYPE = {
    "directional": unreal.DirectionalLight,
    "point": unreal.PointLight,
    "spot": unreal.SpotLight,
    "area": unreal.RectLight,
}


def spawn_light(data):
    light_class = LIGHT_CLASS_BY_TYPE.get(data.light_type, unreal.PointLight)
    location = unreal.Vector(*data.position)
    rotation = unreal.Rotator(*data.rotation)
    actor = unreal.EditorLevelLibrary.spawn_actor_from_class(light_class, location, rotation)
    if actor:
        actor.set_actor_label(data.name)
        component = actor.get_component_by_class(unreal.LightComponent)
        if component:
            component.set_intensity(data.intensity)
            component.set_light_color(unreal.LinearColor(*data.color[:3]))
            component.set_cast_shadows(data.cast_shadows)
            if data.range is not None and hasattr(component, "set_attenuation_radius"):
                component.set_attenuation_radius(data.range)
    return actor


def setup_lighting():
    lights = []
    for data in LIGHT_DATA:
        light = spawn_light(data)
        if light:
            lights.append(light)
    unreal.log(f"Lighting setup complete: {len(lights)} lights created")
    return lights
`)
	return b.String()
}

func (g *UnrealGenerator) environmentSetup(world *wdl.World) string {
	env := world.Environment
	var b strings.Builder
	fmt.Fprintf(&b, `"""Environment setup for %s."""

import unreal

ENVIRONMENT = {
    "weather": %s,
    "time_of_day": {"hour": %d, "minute": %d, "day_night_cycle": %s, "cycle_duration_seconds": %s},
    "ambient_light": %s,
    "fog_enabled": %s,
    "fog_color": %s,
    "fog_density": %s,
    "skybox": {"type": %s, "texture_path": %s, "tint": %s, "exposure": %s, "rotation": %s},
    "gravity": %s,
    "audio_reverb_preset": %s,
}


def setup_environment():
    unreal.log(f"Applying environment: {ENVIRONMENT['weather']}")

    if ENVIRONMENT["fog_enabled"]:
        fog = unreal.EditorLevelLibrary.spawn_actor_from_class(
            unreal.ExponentialHeightFog.static_class(), unreal.Vector(0, 0, 0)
        )
        component = fog.get_component_by_class(unreal.ExponentialHeightFogComponent)
        if component:
            component.set_fog_density(ENVIRONMENT["fog_density"])
            component.set_fog_inscattering_color(unreal.LinearColor(*ENVIRONMENT["fog_color"][:3]))

    gravity_z = ENVIRONMENT["gravity"][1] * 100  # WDL meters to Unreal centimeters
    unreal.SystemLibrary.execute_console_command(None, f"py.gravity {gravity_z}")
    return ENVIRONMENT
`,
		world.Metadata.Title,
		q(string(env.Weather)),
		env.TimeOfDay.Hour, env.TimeOfDay.Minute, pyBool(env.TimeOfDay.DayNightCycle), ff(env.TimeOfDay.CycleDurationSeconds),
		colorTuple(env.AmbientLight),
		pyBool(env.FogEnabled),
		colorTuple(env.FogColor),
		ff(env.FogDensity),
		q(env.Skybox.SkyboxType), pyStrOpt(env.Skybox.TexturePath), colorTuple(env.Skybox.TintColor), ff(env.Skybox.Exposure), ff(env.Skybox.Rotation),
		vecTuple(env.Gravity),
		pyStrOpt(env.AudioReverbPreset))
	return b.String()
}

// typeDefinitions emits the schema artifact: dataclasses and enum tag tuples.
func (g *UnrealGenerator) typeDefinitions() string {
	var b strings.Builder
	b.WriteString(`"""WDL type definitions for Unreal editor scripting."""

from dataclasses import dataclass, field
from typing import List, Optional, Tuple

`)
	writePyTagTuple(&b, "ENTITY_TYPES", entityTypeNames())
	writePyTagTuple(&b, "LIGHT_TYPES", lightTypeNames())
	writePyTagTuple(&b, "WEATHER_TYPES", weatherTypeNames())
	writePyTagTuple(&b, "INTERACTION_TYPES", interactionTypeNames())
	writePyTagTuple(&b, "ACTION_TYPES", actionTypeNames())
	b.WriteString(`

@dataclass
class EntityData:
    """One row of the entity data table."""

    id: str
    name: str
    entity_type: str
    position: Tuple[float, float, float]
    rotation: Tuple[float, float, float]
    scale: Tuple[float, float, float]
    material_name: Optional[str] = None
    material_type: Optional[str] = None
    base_color: Optional[Tuple[float, float, float, float]] = None
    metallic: float = 0.0
    roughness: float = 0.5
    emission_strength: float = 0.0
    physics_enabled: bool = False
    mass: float = 1.0
    use_gravity: bool = True
    collider_type: Optional[str] = None
    is_trigger: bool = False
    parent_id: Optional[str] = None
    tags: List[str] = field(default_factory=list)
    asset_reference: Optional[str] = None
    prefab_reference: Optional[str] = None


@dataclass
class LightData:
    """One row of the light data table."""

    name: str
    light_type: str
    color: Tuple[float, float, float, float]
    intensity: float
    range: Optional[float]
    spot_angle: Optional[float]
    cast_shadows: bool
    position: Tuple[float, float, float]
    rotation: Tuple[float, float, float]
`)
	return b.String()
}

func writePyTagTuple(b *strings.Builder, name string, values []string) {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, q(v))
	}
	fmt.Fprintf(b, "%s = (%s)\n", name, strings.Join(quoted, ", "))
}
