package generate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniworld-xyz/builder/pkg/cmath"
	"github.com/omniworld-xyz/builder/pkg/wdl"
)

// HorizonGenerator projects a world into TypeScript modules with typed
// interface definitions for Meta Horizon Worlds scripting.
type HorizonGenerator struct{}

func NewHorizonGenerator() *HorizonGenerator {
	return &HorizonGenerator{}
}

func (g *HorizonGenerator) PlatformName() string {
	return "horizon"
}

func (g *HorizonGenerator) FileExtension() string {
	return ".ts"
}

func (g *HorizonGenerator) Generate(world *wdl.World) (map[string]string, error) {
	if world == nil {
		return nil, errors.New("horizon generator: nil world")
	}
	dump, err := worldDataDump(world)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"scripts/WorldManager.ts":          g.worldManager(world),
		"scripts/EntityFactory.ts":         g.entityFactory(world),
		"scripts/EnvironmentController.ts": g.environmentController(world),
		"scripts/types.ts":                 g.typeDefinitions(),
		"data/worldData.ts":                g.worldDataModule(world),
		"data/world_data.json":             dump,
	}, nil
}

func tsVec(v cmath.Vec3) string {
	return fmt.Sprintf("{ x: %s, y: %s, z: %s }", ff(v.X), ff(v.Y), ff(v.Z))
}

func tsColor(c cmath.Color) string {
	return fmt.Sprintf("{ r: %s, g: %s, b: %s, a: %s }", ff(c.R), ff(c.G), ff(c.B), ff(c.A))
}

func tsBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func tsOpt(v *float64) string {
	if v == nil {
		return "null"
	}
	return ff(*v)
}

func tsStrOpt(s string) string {
	if s == "" {
		return "null"
	}
	return q(s)
}

func tsStrList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, q(item))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (g *HorizonGenerator) worldManager(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `// World manager for %s (version %s).
// %s
import { EntityFactory } from "./EntityFactory";
import { EnvironmentController } from "./EnvironmentController";
import { WORLD_DATA } from "../data/worldData";

export const WORLD_TITLE = %s;
export const WORLD_AUTHOR = %s;

export class WorldManager {
  private readonly factory = new EntityFactory();
  private readonly environment = new EnvironmentController();

  start(): void {
    console.log(`+"`"+`Starting world: ${WORLD_TITLE}`+"`"+`);
    this.environment.apply(WORLD_DATA.environment);
    for (const entity of WORLD_DATA.entities) {
      this.factory.spawn(entity);
    }
    this.factory.resolveHierarchy(WORLD_DATA.entities);
    console.log(`+"`"+`World ready: ${WORLD_DATA.entities.length} entities, ${WORLD_DATA.lights.length} lights`+"`"+`);
  }
}
`,
		world.Metadata.Title, world.Metadata.Version, world.Metadata.Description,
		q(world.Metadata.Title), q(world.Metadata.Author))
	return b.String()
}

func (g *HorizonGenerator) entityFactory(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `// Entity factory for %s. Total entities: %d
import { EntityRecord, EntityType } from "./types";

const SHAPE_BY_TYPE: Partial<Record<EntityType, string>> = {
  static_mesh: "Cube",
  dynamic_object: "Cube",
  character: "Capsule",
  prop: "Cube",
  terrain: "Plane",
};

export class EntityFactory {
  private readonly spawned = new Map<string, unknown>();

  spawn(record: EntityRecord): unknown {
    const shape = SHAPE_BY_TYPE[record.entityType] ?? "Empty";
    console.log(`+"`"+`Spawning ${record.name} (${record.entityType}) as ${shape}`+"`"+`);
    const handle = {
      name: record.name,
      shape,
      position: record.position,
      rotation: record.rotation,
      scale: record.scale,
      tags: record.tags,
      physics: record.physics,
      material: record.material,
      collider: record.collider,
    };
    this.spawned.set(record.id, handle);
    return handle;
  }

  resolveHierarchy(records: readonly EntityRecord[]): void {
    for (const record of records) {
      if (record.parentId !== null && this.spawned.has(record.parentId)) {
        console.log(`+"`"+`Attaching ${record.name} to parent ${record.parentId}`+"`"+`);
      }
    }
  }
}

// Spawn order, by entity type:
`, world.Metadata.Title, len(world.Entities))
	for _, t := range wdl.EntityTypes() {
		entities := world.EntitiesByType(t)
		if len(entities) == 0 {
			continue
		}
		names := make([]string, 0, len(entities))
		for _, e := range entities {
			names = append(names, e.Name)
		}
		fmt.Fprintf(&b, "//   %s: %s\n", t, strings.Join(names, ", "))
	}
	return b.String()
}

func (g *HorizonGenerator) environmentController(world *wdl.World) string {
	env := world.Environment
	var b strings.Builder
	fmt.Fprintf(&b, `// Environment and lighting control for %s. Total lights: %d
import { EnvironmentRecord, LightRecord } from "./types";

export const LIGHTS: readonly LightRecord[] = [
`, world.Metadata.Title, len(world.Lights))
	for _, l := range world.Lights {
		fmt.Fprintf(&b, "  {\n")
		fmt.Fprintf(&b, "    name: %s,\n", q(l.Name))
		fmt.Fprintf(&b, "    lightType: %s,\n", q(string(l.LightType)))
		fmt.Fprintf(&b, "    color: %s,\n", tsColor(l.Color))
		fmt.Fprintf(&b, "    intensity: %s,\n", ff(l.Intensity))
		fmt.Fprintf(&b, "    range: %s,\n", tsOpt(l.Range))
		fmt.Fprintf(&b, "    spotAngle: %s,\n", tsOpt(l.SpotAngle))
		fmt.Fprintf(&b, "    castShadows: %s,\n", tsBool(l.CastShadows))
		fmt.Fprintf(&b, "    position: %s,\n", tsVec(l.Transform.Position))
		fmt.Fprintf(&b, "    rotation: %s,\n", tsVec(l.Transform.Rotation))
		fmt.Fprintf(&b, "  },\n")
	}
	fmt.Fprintf(&b, `];

export class EnvironmentController {
  apply(env: EnvironmentRecord): void {
    console.log(`+"`"+`Applying environment: ${env.weather} at ${env.timeOfDay.hour}:${env.timeOfDay.minute}`+"`"+`);
    // ambient: %s, fog: %s (density %s), gravity: %s
    // skybox: %s (exposure %s)
    for (const light of LIGHTS) {
      console.log(`+"`"+`Creating ${light.lightType} light: ${light.name}`+"`"+`);
    }
  }
}
`,
		colorTuple(env.AmbientLight), tsBool(env.FogEnabled), ff(env.FogDensity), vecTuple(env.Gravity),
		env.Skybox.SkyboxType, ff(env.Skybox.Exposure))
	return b.String()
}

// worldDataModule embeds the typed world data as a TS constant so scripts
// can consume it without a JSON loader.
func (g *HorizonGenerator) worldDataModule(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `// Typed world data for %s.
import { WorldData } from "../scripts/types";

export const WORLD_DATA: WorldData = {
  metadata: {
    title: %s,
    description: %s,
    author: %s,
    version: %s,
    tags: %s,
    targetPlatforms: %s,
  },
  environment: {
    weather: %s,
    timeOfDay: { hour: %d, minute: %d, dayNightCycle: %s, cycleDurationSeconds: %s },
    ambientLight: %s,
    fogEnabled: %s,
    fogColor: %s,
    fogDensity: %s,
    skybox: { skyboxType: %s, texturePath: %s, tintColor: %s, exposure: %s, rotation: %s },
    gravity: %s,
    audioReverbPreset: %s,
  },
  entities: [
`,
		world.Metadata.Title,
		q(world.Metadata.Title), q(world.Metadata.Description), q(world.Metadata.Author), q(world.Metadata.Version),
		tsStrList(world.Metadata.Tags), tsStrList(world.Metadata.TargetPlatforms),
		q(string(world.Environment.Weather)),
		world.Environment.TimeOfDay.Hour, world.Environment.TimeOfDay.Minute,
		tsBool(world.Environment.TimeOfDay.DayNightCycle), ff(world.Environment.TimeOfDay.CycleDurationSeconds),
		tsColor(world.Environment.AmbientLight),
		tsBool(world.Environment.FogEnabled), tsColor(world.Environment.FogColor), ff(world.Environment.FogDensity),
		q(world.Environment.Skybox.SkyboxType), tsStrOpt(world.Environment.Skybox.TexturePath),
		tsColor(world.Environment.Skybox.TintColor), ff(world.Environment.Skybox.Exposure), ff(world.Environment.Skybox.Rotation),
		tsVec(world.Environment.Gravity),
		tsStrOpt(world.Environment.AudioReverbPreset))

	for _, e := range world.Entities {
		fmt.Fprintf(&b, "    {\n")
		fmt.Fprintf(&b, "      id: %s,\n", q(e.ID))
		fmt.Fprintf(&b, "      name: %s,\n", q(e.Name))
		fmt.Fprintf(&b, "      entityType: %s,\n", q(string(e.EntityType)))
		fmt.Fprintf(&b, "      position: %s,\n", tsVec(e.Transform.Position))
		fmt.Fprintf(&b, "      rotation: %s,\n", tsVec(e.Transform.Rotation))
		fmt.Fprintf(&b, "      scale: %s,\n", tsVec(e.Transform.Scale))
		if e.Material != nil {
			m := e.Material
			fmt.Fprintf(&b, "      material: { name: %s, materialType: %s, baseColor: %s, metallic: %s, roughness: %s, emissionStrength: %s },\n",
				q(m.Name), q(string(m.MaterialType)), tsColor(m.BaseColor), ff(m.Metallic), ff(m.Roughness), ff(m.EmissionStrength))
		} else {
			fmt.Fprintf(&b, "      material: null,\n")
		}
		fmt.Fprintf(&b, "      physics: { enabled: %s, isKinematic: %s, mass: %s, drag: %s, angularDrag: %s, useGravity: %s, collisionEnabled: %s },\n",
			tsBool(e.Physics.Enabled), tsBool(e.Physics.IsKinematic), ff(e.Physics.Mass),
			ff(e.Physics.Drag), ff(e.Physics.AngularDrag), tsBool(e.Physics.UseGravity), tsBool(e.Physics.CollisionEnabled))
		if c := e.Collider; c != nil {
			fmt.Fprintf(&b, "      collider: { colliderType: %s, isTrigger: %s, center: %s, size: %s, radius: %s, height: %s },\n",
				q(string(c.ColliderType)), tsBool(c.IsTrigger), tsVec(c.Center), tsVec(c.Size), tsOpt(c.Radius), tsOpt(c.Height))
		} else {
			fmt.Fprintf(&b, "      collider: null,\n")
		}
		fmt.Fprintf(&b, "      parentId: %s,\n", tsStrOpt(e.ParentID))
		fmt.Fprintf(&b, "      childrenIds: %s,\n", tsStrList(e.ChildrenIDs))
		fmt.Fprintf(&b, "      tags: %s,\n", tsStrList(e.Tags))
		fmt.Fprintf(&b, "      assetReference: %s,\n", tsStrOpt(e.AssetReference))
		fmt.Fprintf(&b, "      prefabReference: %s,\n", tsStrOpt(e.PrefabReference))
		fmt.Fprintf(&b, "    },\n")
	}
	b.WriteString("  ],\n  lights: [\n")
	for _, l := range world.Lights {
		fmt.Fprintf(&b, "    { name: %s, lightType: %s, color: %s, intensity: %s, range: %s, spotAngle: %s, castShadows: %s, position: %s, rotation: %s },\n",
			q(l.Name), q(string(l.LightType)), tsColor(l.Color), ff(l.Intensity),
			tsOpt(l.Range), tsOpt(l.SpotAngle), tsBool(l.CastShadows),
			tsVec(l.Transform.Position), tsVec(l.Transform.Rotation))
	}
	b.WriteString("  ],\n  systems: [\n")
	for _, s := range world.Systems {
		fmt.Fprintf(&b, "    {\n")
		fmt.Fprintf(&b, "      id: %s,\n", q(s.ID))
		fmt.Fprintf(&b, "      name: %s,\n", q(s.Name))
		fmt.Fprintf(&b, "      description: %s,\n", q(s.Description))
		fmt.Fprintf(&b, "      enabled: %s,\n", tsBool(s.Enabled))
		fmt.Fprintf(&b, "      priority: %d,\n", s.Priority)
		fmt.Fprintf(&b, "      interactions: [\n")
		for _, i := range s.Interactions {
			fmt.Fprintf(&b, "        { triggerType: %s, actionType: %s, targetEntityId: %s },\n",
				q(string(i.TriggerType)), q(string(i.ActionType)), tsStrOpt(i.TargetEntityID))
		}
		fmt.Fprintf(&b, "      ],\n    },\n")
	}
	fmt.Fprintf(&b, "  ],\n  bounds: { minBounds: %s, maxBounds: %s },\n};\n",
		tsVec(world.Bounds.MinBounds), tsVec(world.Bounds.MaxBounds))
	return b.String()
}

// typeDefinitions emits the schema artifact: union types and interfaces.
func (g *HorizonGenerator) typeDefinitions() string {
	var b strings.Builder
	b.WriteString("// WDL type definitions for Horizon Worlds scripting.\n\n")
	writeTsUnion(&b, "EntityType", entityTypeNames())
	writeTsUnion(&b, "LightType", lightTypeNames())
	writeTsUnion(&b, "WeatherType", weatherTypeNames())
	writeTsUnion(&b, "InteractionType", interactionTypeNames())
	writeTsUnion(&b, "ActionType", actionTypeNames())
	b.WriteString(`
export interface Vec3 {
  x: number;
  y: number;
  z: number;
}

export interface ColorRGBA {
  r: number;
  g: number;
  b: number;
  a: number;
}

export interface MaterialRecord {
  name: string;
  materialType: string;
  baseColor: ColorRGBA;
  metallic: number;
  roughness: number;
  emissionStrength: number;
}

export interface PhysicsRecord {
  enabled: boolean;
  isKinematic: boolean;
  mass: number;
  drag: number;
  angularDrag: number;
  useGravity: boolean;
  collisionEnabled: boolean;
}

export interface ColliderRecord {
  colliderType: string;
  isTrigger: boolean;
  center: Vec3;
  size: Vec3;
  radius: number | null;
  height: number | null;
}

export interface EntityRecord {
  id: string;
  name: string;
  entityType: EntityType;
  position: Vec3;
  rotation: Vec3;
  scale: Vec3;
  material: MaterialRecord | null;
  physics: PhysicsRecord;
  collider: ColliderRecord | null;
  parentId: string | null;
  childrenIds: string[];
  tags: string[];
  assetReference: string | null;
  prefabReference: string | null;
}

export interface LightRecord {
  name: string;
  lightType: string;
  color: ColorRGBA;
  intensity: number;
  range: number | null;
  spotAngle: number | null;
  castShadows: boolean;
  position: Vec3;
  rotation: Vec3;
}

export interface InteractionRecord {
  triggerType: InteractionType;
  actionType: ActionType;
  targetEntityId: string | null;
}

export interface SystemRecord {
  id: string;
  name: string;
  description: string;
  enabled: boolean;
  priority: number;
  interactions: InteractionRecord[];
}

export interface TimeOfDayRecord {
  hour: number;
  minute: number;
  dayNightCycle: boolean;
  cycleDurationSeconds: number;
}

export interface SkyboxRecord {
  skyboxType: string;
  texturePath: string | null;
  tintColor: ColorRGBA;
  exposure: number;
  rotation: number;
}

export interface EnvironmentRecord {
  weather: WeatherType;
  timeOfDay: TimeOfDayRecord;
  ambientLight: ColorRGBA;
  fogEnabled: boolean;
  fogColor: ColorRGBA;
  fogDensity: number;
  skybox: SkyboxRecord;
  gravity: Vec3;
  audioReverbPreset: string | null;
}

export interface MetadataRecord {
  title: string;
  description: string;
  author: string;
  version: string;
  tags: string[];
  targetPlatforms: string[];
}

export interface BoundsRecord {
  minBounds: Vec3;
  maxBounds: Vec3;
}

export interface WorldData {
  metadata: MetadataRecord;
  environment: EnvironmentRecord;
  entities: EntityRecord[];
  lights: LightRecord[];
  systems: SystemRecord[];
  bounds: BoundsRecord;
}
`)
	return b.String()
}

func writeTsUnion(b *strings.Builder, name string, values []string) {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, q(v))
	}
	fmt.Fprintf(b, "export type %s =\n  | %s;\n", name, strings.Join(quoted, "\n  | "))
}
