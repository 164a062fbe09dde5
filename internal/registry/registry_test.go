package registry

import (
	"path/filepath"
	"testing"
)

func openTestRegistry(t *testing.T, path string) *Registry {
	t.Helper()
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
	})
	return r
}

func TestRegisterAndGet(t *testing.T) {
	r := openTestRegistry(t, filepath.Join(t.TempDir(), "assets.db"))

	stored, err := r.Register(Asset{
		Name:     "oak_tree",
		Category: CategoryModel,
		Path:     "models/oak_tree.fbx",
		Tags:     []string{"nature", "tree"},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("expected a generated id")
	}

	got, ok := r.Get(stored.ID)
	if !ok {
		t.Fatal("Get: asset not found")
	}
	if got.Name != "oak_tree" || got.Path != "models/oak_tree.fbx" {
		t.Errorf("got %+v", got)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
}

func TestRegisterValidation(t *testing.T) {
	r := openTestRegistry(t, filepath.Join(t.TempDir(), "assets.db"))

	if _, err := r.Register(Asset{Category: CategoryAudio}); err == nil {
		t.Error("expected error for missing name")
	}

	stored, err := r.Register(Asset{Name: "mystery", Category: "hologram"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if stored.Category != CategoryModel {
		t.Errorf("unknown category normalized to %q, want %q", stored.Category, CategoryModel)
	}
}

func TestRegisterOverwrite(t *testing.T) {
	r := openTestRegistry(t, filepath.Join(t.TempDir(), "assets.db"))

	first, err := r.Register(Asset{Name: "crate", Category: CategoryPrefab})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Register(Asset{ID: first.ID, Name: "crate_v2", Category: CategoryPrefab}); err != nil {
		t.Fatal(err)
	}

	got, ok := r.Get(first.ID)
	if !ok {
		t.Fatal("asset not found after overwrite")
	}
	if got.Name != "crate_v2" {
		t.Errorf("Name = %q, want crate_v2", got.Name)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
}

func TestQueries(t *testing.T) {
	r := openTestRegistry(t, filepath.Join(t.TempDir(), "assets.db"))

	fixtures := []Asset{
		{Name: "pine", Category: CategoryModel, Tags: []string{"nature"}},
		{Name: "birch", Category: CategoryModel, Tags: []string{"nature"}},
		{Name: "footsteps", Category: CategoryAudio, Platforms: []string{"unity"}},
		{Name: "bark", Category: CategoryTexture, Tags: []string{"nature"}, Platforms: []string{"unity", "unreal"}},
	}
	for _, a := range fixtures {
		if _, err := r.Register(a); err != nil {
			t.Fatal(err)
		}
	}

	models := r.ByCategory(CategoryModel)
	if len(models) != 2 || models[0].Name != "birch" || models[1].Name != "pine" {
		t.Errorf("ByCategory(model) = %v", names(models))
	}

	nature := r.ByTag("nature")
	if len(nature) != 3 {
		t.Errorf("ByTag(nature) returned %v", names(nature))
	}
	if len(r.ByTag("urban")) != 0 {
		t.Error("ByTag(urban) should be empty")
	}

	// Assets with no platform list are usable everywhere.
	horizon := r.ForPlatform("horizon")
	if len(horizon) != 2 || horizon[0].Name != "birch" || horizon[1].Name != "pine" {
		t.Errorf("ForPlatform(horizon) = %v", names(horizon))
	}
	if got := r.ForPlatform("unity"); len(got) != 4 {
		t.Errorf("ForPlatform(unity) = %v", names(got))
	}
}

func TestReopenRestoresIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.db")

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	stored, err := r.Register(Asset{
		Name:     "lava_rock",
		Category: CategoryMaterial,
		Metadata: map[string]string{"shader": "emissive"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := openTestRegistry(t, path)
	got, ok := reopened.Get(stored.ID)
	if !ok {
		t.Fatal("asset lost across reopen")
	}
	if got.Metadata["shader"] != "emissive" {
		t.Errorf("Metadata = %v", got.Metadata)
	}
}

func names(assets []*Asset) []string {
	res := make([]string, 0, len(assets))
	for _, a := range assets {
		res = append(res, a.Name)
	}
	return res
}
