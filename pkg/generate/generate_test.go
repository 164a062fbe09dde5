package generate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/omniworld-xyz/builder/pkg/cmath"
	"github.com/omniworld-xyz/builder/pkg/wdl"
)

func testWorld(t *testing.T) *wdl.World {
	t.Helper()

	meta := wdl.NewMetadata("Test Arena")
	meta.Author = "builder"
	world, err := wdl.NewWorld(meta)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	ground := wdl.NewEntity("Ground", wdl.EntityTerrain)
	ground.Transform.Scale = cmath.NewVec3(100, 1, 100)

	crate := wdl.NewEntity("Supply Crate", wdl.EntityStaticMesh)
	crate.Transform.Position = cmath.NewVec3(5, 0.5, -3)
	crate.Tags = []string{"loot", "wood"}
	crate.Material = wdl.NewMaterial("crate_wood")

	sun := wdl.NewLighting("Sun", wdl.LightDirectional)
	sun.Intensity = 1.2

	patrol := wdl.NewSystem("patrol_logic")
	patrol.Interactions = append(patrol.Interactions, wdl.Interaction{
		TriggerType:    wdl.InteractionProximity,
		ActionType:     wdl.ActionPlaySound,
		TargetEntityID: crate.ID,
	})

	world.AddEntity(ground)
	world.AddEntity(crate)
	world.AddLight(sun)
	world.AddSystem(patrol)
	return world
}

func TestGenerateAllPlatforms(t *testing.T) {
	world := testWorld(t)

	tests := []struct {
		gen      Generator
		platform string
		ext      string
		files    int
	}{
		{NewUnityGenerator(), "unity", ".cs", 6},
		{NewUnrealGenerator(), "unreal", ".py", 6},
		{NewHorizonGenerator(), "horizon", ".ts", 6},
	}
	for _, tc := range tests {
		t.Run(tc.platform, func(t *testing.T) {
			if got := tc.gen.PlatformName(); got != tc.platform {
				t.Errorf("PlatformName() = %q, want %q", got, tc.platform)
			}
			if got := tc.gen.FileExtension(); got != tc.ext {
				t.Errorf("FileExtension() = %q, want %q", got, tc.ext)
			}
			files, err := tc.gen.Generate(world)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(files) != tc.files {
				t.Errorf("got %d files, want %d", len(files), tc.files)
			}

			var all strings.Builder
			dumped := false
			for path, content := range files {
				if content == "" {
					t.Errorf("file %q is empty", path)
				}
				if strings.HasSuffix(path, "world_data.json") {
					dumped = true
					if !strings.Contains(content, `"Test Arena"`) {
						t.Errorf("data dump is missing the world title")
					}
				}
				all.WriteString(content)
			}
			if !dumped {
				t.Error("no world_data.json in output")
			}
			for _, name := range []string{"Ground", "Supply Crate", "Sun"} {
				if !strings.Contains(all.String(), name) {
					t.Errorf("output does not mention %q", name)
				}
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	world := testWorld(t)
	for _, gen := range []Generator{NewUnityGenerator(), NewUnrealGenerator(), NewHorizonGenerator()} {
		first, err := gen.Generate(world)
		if err != nil {
			t.Fatalf("%s: %v", gen.PlatformName(), err)
		}
		second, err := gen.Generate(world)
		if err != nil {
			t.Fatalf("%s: %v", gen.PlatformName(), err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s output differs between runs", gen.PlatformName())
		}
	}
}

func TestGenerateNilWorld(t *testing.T) {
	for _, gen := range []Generator{NewUnityGenerator(), NewUnrealGenerator(), NewHorizonGenerator()} {
		if _, err := gen.Generate(nil); err == nil {
			t.Errorf("%s: expected error for nil world", gen.PlatformName())
		}
	}
}

func TestUnityOutput(t *testing.T) {
	files, err := NewUnityGenerator().Generate(testWorld(t))
	if err != nil {
		t.Fatal(err)
	}
	loader, ok := files["Scripts/WorldLoader.cs"]
	if !ok {
		t.Fatal("missing Scripts/WorldLoader.cs")
	}
	for _, want := range []string{"namespace OmniWorld.Generated", "class WorldLoader", "using UnityEngine;"} {
		if !strings.Contains(loader, want) {
			t.Errorf("WorldLoader.cs is missing %q", want)
		}
	}
	if types := files["Scripts/WorldData.cs"]; !strings.Contains(types, "enum WdlEntityType") {
		t.Error("WorldData.cs is missing the entity type enum")
	}
}

func TestUnityCollapsedNamesStayDistinct(t *testing.T) {
	meta := wdl.NewMetadata("Dup World")
	world, err := wdl.NewWorld(meta)
	if err != nil {
		t.Fatal(err)
	}
	world.AddEntity(wdl.NewEntity("Crate!", wdl.EntityStaticMesh))
	world.AddEntity(wdl.NewEntity("Crate?", wdl.EntityStaticMesh))

	files, err := NewUnityGenerator().Generate(world)
	if err != nil {
		t.Fatal(err)
	}
	spawner := files["Scripts/EntitySpawner.cs"]
	for _, want := range []string{"private void Spawn_Crate()", "private void Spawn_Crate_1()"} {
		if !strings.Contains(spawner, want) {
			t.Errorf("EntitySpawner.cs is missing %q", want)
		}
	}
	if n := strings.Count(spawner, "private void Spawn_Crate()"); n != 1 {
		t.Errorf("Spawn_Crate declared %d times, want 1", n)
	}
}

func TestIdentifiers(t *testing.T) {
	got := identifiers([]string{"Crate!", "Crate?", "Lamp Post", ""})
	want := []string{"Crate", "Crate_1", "Lamp_Post", "unnamed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("identifiers() = %v, want %v", got, want)
	}
}

func TestUnrealOutput(t *testing.T) {
	files, err := NewUnrealGenerator().Generate(testWorld(t))
	if err != nil {
		t.Fatal(err)
	}
	builder, ok := files["Scripts/world_builder.py"]
	if !ok {
		t.Fatal("missing Scripts/world_builder.py")
	}
	for _, want := range []string{"import unreal", "class WorldBuilder"} {
		if !strings.Contains(builder, want) {
			t.Errorf("world_builder.py is missing %q", want)
		}
	}
	if types := files["Scripts/wdl_types.py"]; !strings.Contains(types, "ENTITY_TYPES") {
		t.Error("wdl_types.py is missing ENTITY_TYPES")
	}
}

func TestHorizonOutput(t *testing.T) {
	files, err := NewHorizonGenerator().Generate(testWorld(t))
	if err != nil {
		t.Fatal(err)
	}
	manager, ok := files["scripts/WorldManager.ts"]
	if !ok {
		t.Fatal("missing scripts/WorldManager.ts")
	}
	for _, want := range []string{"class WorldManager", "import"} {
		if !strings.Contains(manager, want) {
			t.Errorf("WorldManager.ts is missing %q", want)
		}
	}
	if factory := files["scripts/EntityFactory.ts"]; !strings.Contains(factory, "class EntityFactory") {
		t.Error("EntityFactory.ts is missing the factory class")
	}
	types, ok := files["scripts/types.ts"]
	if !ok {
		t.Fatal("missing scripts/types.ts")
	}
	for _, want := range []string{"export type EntityType", "export interface WorldData", `"static_mesh"`} {
		if !strings.Contains(types, want) {
			t.Errorf("types.ts is missing %q", want)
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()

	platforms := reg.Platforms()
	if !reflect.DeepEqual(platforms, []string{"horizon", "unity", "unreal"}) {
		t.Errorf("Platforms() = %v", platforms)
	}

	gen, err := reg.Get("unity")
	if err != nil {
		t.Fatalf("Get(unity): %v", err)
	}
	if gen.PlatformName() != "unity" {
		t.Errorf("resolved wrong generator: %s", gen.PlatformName())
	}

	if _, err := reg.Get("playstation"); err == nil {
		t.Error("expected error for unknown platform")
	}

	reg.Set("custom", func() Generator { return NewUnityGenerator() })
	if _, err := reg.Get("custom"); err != nil {
		t.Errorf("Get(custom): %v", err)
	}
}
