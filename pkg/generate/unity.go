package generate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniworld-xyz/builder/pkg/cmath"
	"github.com/omniworld-xyz/builder/pkg/wdl"
)

// UnityGenerator projects a world into C# MonoBehaviour scripts plus a
// serialized data dump loaded at runtime.
type UnityGenerator struct{}

func NewUnityGenerator() *UnityGenerator {
	return &UnityGenerator{}
}

func (g *UnityGenerator) PlatformName() string {
	return "unity"
}

func (g *UnityGenerator) FileExtension() string {
	return ".cs"
}

func (g *UnityGenerator) Generate(world *wdl.World) (map[string]string, error) {
	if world == nil {
		return nil, errors.New("unity generator: nil world")
	}
	dump, err := worldDataDump(world)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"Scripts/WorldLoader.cs":           g.worldLoader(world),
		"Scripts/EntitySpawner.cs":         g.entitySpawner(world),
		"Scripts/LightingSetup.cs":         g.lightingSetup(world),
		"Scripts/EnvironmentController.cs": g.environmentController(world),
		"Scripts/WorldData.cs":             g.worldData(),
		"Data/world_data.json":             dump,
	}, nil
}

func csVec(v cmath.Vec3) string {
	return fmt.Sprintf("new Vector3(%sf, %sf, %sf)", ff(v.X), ff(v.Y), ff(v.Z))
}

func csColor(c cmath.Color) string {
	return fmt.Sprintf("new Color(%sf, %sf, %sf, %sf)", ff(c.R), ff(c.G), ff(c.B), ff(c.A))
}

func csBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (g *UnityGenerator) worldLoader(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `// Generated from WDL world %s (version %s).
// World: %s
using System.IO;
using UnityEngine;

namespace OmniWorld.Generated
{
    public class WorldLoader : MonoBehaviour
    {
        public const string WorldTitle = %s;
        public const string WorldAuthor = %s;
        public const string WorldVersion = %s;
        public const string DataPath = "Data/world_data.json";

        public WorldDefinition World { get; private set; }

        private void Awake()
        {
            var json = File.ReadAllText(Path.Combine(Application.dataPath, DataPath));
            World = JsonUtility.FromJson<WorldDefinition>(json);
            Debug.Log($"Loaded world '{World.metadata.title}' with {World.entities.Length} entities");
        }

        private void Start()
        {
            GetComponent<EnvironmentController>().Apply();
            GetComponent<EntitySpawner>().SpawnAll();
            GetComponent<LightingSetup>().SetupAll();
        }
    }
}
`,
		q(world.Metadata.Title), world.Metadata.Version, world.Metadata.Description,
		q(world.Metadata.Title), q(world.Metadata.Author), q(world.Metadata.Version))
	return b.String()
}

func (g *UnityGenerator) entitySpawner(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `// Entity spawning for %s. Total entities: %d
using System.Collections.Generic;
using UnityEngine;

namespace OmniWorld.Generated
{
    public class EntitySpawner : MonoBehaviour
    {
        private readonly Dictionary<string, GameObject> spawned = new Dictionary<string, GameObject>();

`, q(world.Metadata.Title), len(world.Entities))

	names := make([]string, len(world.Entities))
	for i, e := range world.Entities {
		names[i] = e.Name
	}
	ids := identifiers(names)

	b.WriteString("        public void SpawnAll()\n        {\n")
	for i := range world.Entities {
		fmt.Fprintf(&b, "            Spawn_%s();\n", ids[i])
	}
	b.WriteString("            ResolveHierarchy();\n        }\n")

	for i, e := range world.Entities {
		id := ids[i]
		b.WriteString("\n")
		fmt.Fprintf(&b, "        // %s (%s) id=%s\n", e.Name, e.EntityType, e.ID)
		fmt.Fprintf(&b, "        private void Spawn_%s()\n        {\n", id)
		fmt.Fprintf(&b, "            var go = %s;\n", csPrimitiveFor(e))
		fmt.Fprintf(&b, "            go.name = %s;\n", q(e.Name))
		fmt.Fprintf(&b, "            go.transform.position = %s;\n", csVec(e.Transform.Position))
		fmt.Fprintf(&b, "            go.transform.eulerAngles = %s;\n", csVec(e.Transform.Rotation))
		fmt.Fprintf(&b, "            go.transform.localScale = %s;\n", csVec(e.Transform.Scale))
		if len(e.Tags) > 0 {
			fmt.Fprintf(&b, "            // tags: %s\n", strings.Join(e.Tags, ", "))
		}
		if e.AssetReference != "" {
			fmt.Fprintf(&b, "            // asset: %s\n", e.AssetReference)
		}
		if e.PrefabReference != "" {
			fmt.Fprintf(&b, "            // prefab: %s\n", e.PrefabReference)
		}
		if e.Material != nil {
			m := e.Material
			fmt.Fprintf(&b, "            var mat_%s = new Material(Shader.Find(\"Standard\")) { name = %s };\n",
				id, q(m.Name))
			fmt.Fprintf(&b, "            mat_%s.color = %s; // %s\n", id, csColor(m.BaseColor), m.MaterialType)
			fmt.Fprintf(&b, "            mat_%s.SetFloat(\"_Metallic\", %sf);\n", id, ff(m.Metallic))
			fmt.Fprintf(&b, "            mat_%s.SetFloat(\"_Glossiness\", %sf);\n", id, ff(1-m.Roughness))
			if m.EmissionColor != nil {
				fmt.Fprintf(&b, "            mat_%s.SetColor(\"_EmissionColor\", %s * %sf);\n",
					id, csColor(*m.EmissionColor), ff(m.EmissionStrength))
			}
			fmt.Fprintf(&b, "            go.GetComponent<Renderer>().material = mat_%s;\n", id)
		}
		if e.Physics.Enabled {
			fmt.Fprintf(&b, "            var rb = go.AddComponent<Rigidbody>();\n")
			fmt.Fprintf(&b, "            rb.mass = %sf;\n", ff(e.Physics.Mass))
			fmt.Fprintf(&b, "            rb.drag = %sf;\n", ff(e.Physics.Drag))
			fmt.Fprintf(&b, "            rb.angularDrag = %sf;\n", ff(e.Physics.AngularDrag))
			fmt.Fprintf(&b, "            rb.isKinematic = %s;\n", csBool(e.Physics.IsKinematic))
			fmt.Fprintf(&b, "            rb.useGravity = %s;\n", csBool(e.Physics.UseGravity))
			fmt.Fprintf(&b, "            rb.detectCollisions = %s;\n", csBool(e.Physics.CollisionEnabled))
		}
		if c := e.Collider; c != nil {
			fmt.Fprintf(&b, "            %s\n", csCollider(c))
		}
		fmt.Fprintf(&b, "            spawned[%s] = go;\n", q(e.ID))
		b.WriteString("        }\n")
	}

	b.WriteString(`
        private void ResolveHierarchy()
        {
`)
	for _, e := range world.Entities {
		if e.ParentID != "" {
			fmt.Fprintf(&b, "            Reparent(%s, %s);\n", q(e.ID), q(e.ParentID))
		}
	}
	b.WriteString(`        }

        private void Reparent(string childId, string parentId)
        {
            if (spawned.TryGetValue(childId, out var child) && spawned.TryGetValue(parentId, out var parent))
            {
                child.transform.SetParent(parent.transform, true);
            }
        }
    }
}
`)
	return b.String()
}

func csPrimitiveFor(e *wdl.Entity) string {
	switch e.EntityType {
	case wdl.EntityTerrain:
		return "GameObject.CreatePrimitive(PrimitiveType.Plane)"
	case wdl.EntityCharacter:
		return "GameObject.CreatePrimitive(PrimitiveType.Capsule)"
	case wdl.EntitySpawnPoint, wdl.EntityWaypoint, wdl.EntityTrigger,
		wdl.EntityCamera, wdl.EntityAudioSource, wdl.EntityParticleSystem, wdl.EntityLight:
		return fmt.Sprintf("new GameObject(%s)", q(string(e.EntityType)))
	default:
		return "GameObject.CreatePrimitive(PrimitiveType.Cube)"
	}
}

func csCollider(c *wdl.Collider) string {
	var b strings.Builder
	switch c.ColliderType {
	case wdl.ColliderSphere:
		b.WriteString("var col = go.AddComponent<SphereCollider>();")
		if c.Radius != nil {
			fmt.Fprintf(&b, " col.radius = %sf;", ff(*c.Radius))
		}
	case wdl.ColliderCapsule:
		b.WriteString("var col = go.AddComponent<CapsuleCollider>();")
		if c.Radius != nil {
			fmt.Fprintf(&b, " col.radius = %sf;", ff(*c.Radius))
		}
		if c.Height != nil {
			fmt.Fprintf(&b, " col.height = %sf;", ff(*c.Height))
		}
	case wdl.ColliderMesh, wdl.ColliderConvex:
		b.WriteString("var col = go.AddComponent<MeshCollider>();")
		if c.ColliderType == wdl.ColliderConvex {
			b.WriteString(" col.convex = true;")
		}
	default:
		b.WriteString("var col = go.AddComponent<BoxCollider>();")
		fmt.Fprintf(&b, " col.center = %s; col.size = %s;", csVec(c.Center), csVec(c.Size))
	}
	fmt.Fprintf(&b, " col.isTrigger = %s;", csBool(c.IsTrigger))
	return b.String()
}

func (g *UnityGenerator) lightingSetup(world *wdl.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, `// Lighting setup for %s. Total lights: %d
using UnityEngine;

namespace OmniWorld.Generated
{
    public class LightingSetup : MonoBehaviour
    {
        public void SetupAll()
        {
`, q(world.Metadata.Title), len(world.Lights))
	for _, l := range world.Lights {
		fmt.Fprintf(&b, "            Create(%s, LightType.%s, %s, %sf, %s, %s, %s, %s);\n",
			q(l.Name), csLightType(l.LightType), csColor(l.Color), ff(l.Intensity),
			ffOpt(l.Range, "-1")+"f", ffOpt(l.SpotAngle, "-1")+"f",
			csBool(l.CastShadows), csVec(l.Transform.Position))
		fmt.Fprintf(&b, "            // rotation %s, scale %s\n", vecTuple(l.Transform.Rotation), vecTuple(l.Transform.Scale))
	}
	b.WriteString(`        }

        private void Create(string name, LightType type, Color color, float intensity,
            float range, float spotAngle, bool castShadows, Vector3 position)
        {
            var go = new GameObject(name);
            go.transform.position = position;
            var light = go.AddComponent<Light>();
            light.type = type;
            light.color = color;
            light.intensity = intensity;
            if (range >= 0) light.range = range;
            if (spotAngle >= 0) light.spotAngle = spotAngle;
            light.shadows = castShadows ? LightShadows.Soft : LightShadows.None;
        }
    }
}
`)
	return b.String()
}

func csLightType(t wdl.LightType) string {
	switch t {
	case wdl.LightDirectional:
		return "Directional"
	case wdl.LightSpot:
		return "Spot"
	case wdl.LightArea:
		return "Area"
	default:
		// ambient has no dedicated Unity light type; point is the fallback
		return "Point"
	}
}

func (g *UnityGenerator) environmentController(world *wdl.World) string {
	env := world.Environment
	var b strings.Builder
	fmt.Fprintf(&b, `// Environment configuration for %s.
using UnityEngine;

namespace OmniWorld.Generated
{
    public class EnvironmentController : MonoBehaviour
    {
        // weather: %s, time of day: %02d:%02d (cycle: %s, %ss)
        public void Apply()
        {
            RenderSettings.ambientLight = %s;
            RenderSettings.fog = %s;
            RenderSettings.fogColor = %s;
            RenderSettings.fogDensity = %sf;
            Physics.gravity = %s;
            // skybox: %s (exposure %s, rotation %s, tint %s)
`,
		q(world.Metadata.Title),
		env.Weather, env.TimeOfDay.Hour, env.TimeOfDay.Minute,
		csBool(env.TimeOfDay.DayNightCycle), ff(env.TimeOfDay.CycleDurationSeconds),
		csColor(env.AmbientLight),
		csBool(env.FogEnabled),
		csColor(env.FogColor),
		ff(env.FogDensity),
		csVec(env.Gravity),
		env.Skybox.SkyboxType, ff(env.Skybox.Exposure), ff(env.Skybox.Rotation), colorTuple(env.Skybox.TintColor))
	if env.Skybox.TexturePath != "" {
		fmt.Fprintf(&b, "            // skybox texture: %s\n", env.Skybox.TexturePath)
	}
	if env.AudioReverbPreset != "" {
		fmt.Fprintf(&b, "            // audio reverb preset: %s\n", env.AudioReverbPreset)
	}
	b.WriteString(`        }
    }
}
`)
	return b.String()
}

// worldData emits the typed schema artifact: enums and serializable shapes
// for JsonUtility consumption. It depends only on the schema, not the world.
func (g *UnityGenerator) worldData() string {
	var b strings.Builder
	b.WriteString(`// WDL schema definitions for Unity. Deserialized via JsonUtility.
using System;
using UnityEngine;

namespace OmniWorld.Generated
{
`)
	writeCsEnum(&b, "WdlEntityType", entityTypeNames())
	writeCsEnum(&b, "WdlLightType", lightTypeNames())
	writeCsEnum(&b, "WdlWeatherType", weatherTypeNames())
	writeCsEnum(&b, "WdlInteractionType", interactionTypeNames())
	writeCsEnum(&b, "WdlActionType", actionTypeNames())
	b.WriteString(`
    [Serializable] public class Vec3Def { public float x; public float y; public float z; }
    [Serializable] public class ColorDef { public float r; public float g; public float b; public float a; }
    [Serializable] public class TransformDef { public Vec3Def position; public Vec3Def rotation; public Vec3Def scale; }
    [Serializable] public class MaterialDef { public string name; public string material_type; public ColorDef base_color; public float metallic; public float roughness; public ColorDef emission_color; public float emission_strength; public string texture_path; public string normal_map_path; }
    [Serializable] public class PhysicsDef { public bool enabled; public bool is_kinematic; public float mass; public float drag; public float angular_drag; public bool use_gravity; public bool collision_enabled; }
    [Serializable] public class ColliderDef { public string collider_type; public bool is_trigger; public Vec3Def center; public Vec3Def size; public float radius; public float height; }
    [Serializable] public class EntityDef { public string id; public string name; public string entity_type; public TransformDef transform; public MaterialDef material; public PhysicsDef physics; public ColliderDef collider; public string parent_id; public string[] children_ids; public string[] tags; public string asset_reference; public string prefab_reference; }
    [Serializable] public class LightDef { public string name; public string light_type; public ColorDef color; public float intensity; public float range; public float spot_angle; public bool cast_shadows; public TransformDef transform; }
    [Serializable] public class InteractionDef { public string trigger_type; public string action_type; public string target_entity_id; }
    [Serializable] public class SystemDef { public string id; public string name; public string description; public InteractionDef[] interactions; public bool enabled; public int priority; }
    [Serializable] public class TimeOfDayDef { public int hour; public int minute; public bool day_night_cycle; public float cycle_duration_seconds; }
    [Serializable] public class SkyboxDef { public string skybox_type; public string texture_path; public ColorDef tint_color; public float exposure; public float rotation; }
    [Serializable] public class EnvironmentDef { public string weather; public TimeOfDayDef time_of_day; public ColorDef ambient_light; public bool fog_enabled; public ColorDef fog_color; public float fog_density; public SkyboxDef skybox; public Vec3Def gravity; public string audio_reverb_preset; }
    [Serializable] public class BoundsDef { public Vec3Def min_bounds; public Vec3Def max_bounds; }
    [Serializable] public class MetadataDef { public string title; public string description; public string author; public string version; public string[] tags; public string[] target_platforms; }
    [Serializable] public class WorldDefinition { public MetadataDef metadata; public EnvironmentDef environment; public EntityDef[] entities; public LightDef[] lights; public SystemDef[] systems; public BoundsDef bounds; }
}
`)
	return b.String()
}

func writeCsEnum(b *strings.Builder, name string, values []string) {
	fmt.Fprintf(b, "    public enum %s { ", name)
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(csEnumMember(v))
	}
	b.WriteString(" }\n")
}

// csEnumMember converts a snake_case tag to PascalCase.
func csEnumMember(tag string) string {
	parts := strings.Split(tag, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}

func entityTypeNames() []string {
	out := make([]string, 0)
	for _, t := range wdl.EntityTypes() {
		out = append(out, string(t))
	}
	return out
}

func lightTypeNames() []string {
	out := make([]string, 0)
	for _, t := range wdl.LightTypes() {
		out = append(out, string(t))
	}
	return out
}

func weatherTypeNames() []string {
	out := make([]string, 0)
	for _, t := range wdl.WeatherTypes() {
		out = append(out, string(t))
	}
	return out
}

func interactionTypeNames() []string {
	out := make([]string, 0)
	for _, t := range wdl.InteractionTypes() {
		out = append(out, string(t))
	}
	return out
}

func actionTypeNames() []string {
	out := make([]string, 0)
	for _, t := range wdl.ActionTypes() {
		out = append(out, string(t))
	}
	return out
}
