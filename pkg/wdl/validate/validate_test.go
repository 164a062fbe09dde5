package validate

import (
	"strings"
	"testing"

	"github.com/omniworld-xyz/builder/pkg/cmath"
	"github.com/omniworld-xyz/builder/pkg/wdl"
)

func newWorld(t *testing.T) *wdl.World {
	t.Helper()
	w, err := wdl.NewWorld(wdl.NewMetadata("Validation Fixture"))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func TestValidWorld(t *testing.T) {
	w := newWorld(t)
	w.AddEntity(wdl.NewEntity("Ground", wdl.EntityTerrain))
	w.AddLight(wdl.NewLighting("Sun", wdl.LightDirectional))

	result := Validate(w)
	if !result.IsValid {
		t.Errorf("expected valid, issues: %+v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %+v", result.Issues)
	}
}

func TestDuplicateEntityIDs(t *testing.T) {
	w := newWorld(t)
	a := wdl.NewEntity("A", wdl.EntityProp)
	b := wdl.NewEntity("B", wdl.EntityProp)
	c := wdl.NewEntity("C", wdl.EntityProp)
	b.ID = a.ID
	c.ID = a.ID
	w.AddEntity(a)
	w.AddEntity(b)
	w.AddEntity(c)

	result := Validate(w)
	if result.IsValid {
		t.Error("expected invalid")
	}
	// first occurrence is not flagged: two collisions beyond it
	if got := len(result.Errors()); got != 2 {
		t.Errorf("expected exactly 2 duplicate-id errors, got %d: %+v", got, result.Issues)
	}
}

func TestDanglingParentReference(t *testing.T) {
	w := newWorld(t)
	e := wdl.NewEntity("Orphan", wdl.EntityProp)
	e.ParentID = "no-such-id"
	w.AddEntity(e)

	result := Validate(w)
	if result.IsValid {
		t.Error("expected invalid")
	}
	errs := result.Errors()
	if len(errs) != 1 || errs[0].FieldPath != "parent_id" {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

func TestParentAddedAfterChild(t *testing.T) {
	// referential integrity is not enforced at insertion time
	w := newWorld(t)
	child := wdl.NewEntity("Child", wdl.EntityProp)
	parent := wdl.NewEntity("Parent", wdl.EntityProp)
	child.ParentID = parent.ID
	w.AddEntity(child)
	w.AddEntity(parent)

	if result := Validate(w); !result.IsValid {
		t.Errorf("expected valid once parent exists, issues: %+v", result.Issues)
	}
}

func TestOutOfBoundsWarning(t *testing.T) {
	w := newWorld(t)
	inside := wdl.NewEntity("Edge", wdl.EntityProp)
	inside.Transform.Position = w.Bounds.MaxBounds // boundary is inclusive
	outside := wdl.NewEntity("Lost", wdl.EntityProp)
	outside.Transform.Position = cmath.NewVec3(0, 0, w.Bounds.MaxBounds.Z+1)
	w.AddEntity(inside)
	w.AddEntity(outside)

	result := Validate(w)
	if !result.IsValid {
		t.Errorf("bounds issues must be warnings, got errors: %+v", result.Errors())
	}
	warnings := result.Warnings()
	if len(warnings) != 1 || warnings[0].EntityID != outside.ID {
		t.Errorf("unexpected warnings: %+v", warnings)
	}
}

func TestHighIntensityLight(t *testing.T) {
	w := newWorld(t)
	sane := wdl.NewLighting("Sane", wdl.LightPoint)
	sane.Intensity = 100 // threshold itself is fine
	blinding := wdl.NewLighting("Blinding", wdl.LightPoint)
	blinding.Intensity = 100.5
	w.AddLight(sane)
	w.AddLight(blinding)

	result := Validate(w)
	if !result.IsValid {
		t.Error("light intensity must stay a warning")
	}
	warnings := result.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "Blinding") {
		t.Errorf("unexpected warnings: %+v", warnings)
	}
}

func TestSystemReference(t *testing.T) {
	w := newWorld(t)
	target := wdl.NewEntity("Door", wdl.EntityProp)
	w.AddEntity(target)

	good := wdl.NewSystem("Opener")
	good.Interactions = append(good.Interactions, wdl.Interaction{
		TriggerType:    wdl.InteractionUse,
		ActionType:     wdl.ActionAnimate,
		TargetEntityID: target.ID,
	})
	bad := wdl.NewSystem("Ghost")
	bad.Interactions = append(bad.Interactions, wdl.Interaction{
		TriggerType:    wdl.InteractionClick,
		ActionType:     wdl.ActionDestroy,
		TargetEntityID: "gone",
	})
	untargeted := wdl.NewSystem("Ambient")
	untargeted.Interactions = append(untargeted.Interactions, wdl.Interaction{
		TriggerType: wdl.InteractionProximity,
		ActionType:  wdl.ActionPlaySound,
	})
	w.AddSystem(good)
	w.AddSystem(bad)
	w.AddSystem(untargeted)

	result := Validate(w)
	errs := result.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "Ghost") {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

func TestPhysicsSanity(t *testing.T) {
	w := newWorld(t)
	weightless := wdl.NewEntity("Weightless", wdl.EntityProp)
	weightless.Physics.Enabled = true
	weightless.Physics.Mass = 0
	inert := wdl.NewEntity("Inert", wdl.EntityDynamicObject)
	w.AddEntity(weightless)
	w.AddEntity(inert)

	result := Validate(w)
	if !result.IsValid {
		t.Errorf("physics issues must not invalidate, got: %+v", result.Errors())
	}

	warnings := result.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "zero mass") {
		t.Errorf("expected one zero-mass warning, got %+v", warnings)
	}

	var infos []Issue
	for _, issue := range result.Issues {
		if issue.Severity == SeverityInfo {
			infos = append(infos, issue)
		}
	}
	if len(infos) != 1 || infos[0].EntityID != inert.ID {
		t.Errorf("expected one info for the inert dynamic object, got %+v", infos)
	}
}

func TestCustomRule(t *testing.T) {
	w := newWorld(t)
	e := wdl.NewEntity("Nameless", wdl.EntityProp)
	e.ParentID = "dangling"
	w.AddEntity(e)

	v := New()
	v.AddRule(func(world *wdl.World) []Issue {
		issues := make([]Issue, 0)
		for _, e := range world.Entities {
			if len(world.EntitiesByType(e.EntityType)) > 0 && e.Name == "Nameless" {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Message:  "placeholder entity name",
					EntityID: e.ID,
				})
			}
		}
		return issues
	})

	result := v.Validate(w)
	// the custom rule contributes without suppressing the built-in error
	if len(result.Errors()) != 1 {
		t.Errorf("built-in error missing: %+v", result.Issues)
	}
	if len(result.Warnings()) != 1 {
		t.Errorf("custom warning missing: %+v", result.Issues)
	}
	// custom issues come after built-ins
	last := result.Issues[len(result.Issues)-1]
	if last.Message != "placeholder entity name" {
		t.Errorf("custom issue not last: %+v", result.Issues)
	}
}

func TestPanickingRuleIsContained(t *testing.T) {
	w := newWorld(t)
	w.AddEntity(wdl.NewEntity("Fine", wdl.EntityProp))

	v := New()
	v.AddRule(func(world *wdl.World) []Issue {
		var nilWorld *wdl.World
		_ = nilWorld.Entities[0] // deliberate nil dereference
		return nil
	})

	result := v.Validate(w)
	if result.IsValid {
		t.Error("expected the recovered panic to surface as an error issue")
	}
	errs := result.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "failed to validate") {
		t.Errorf("unexpected errors: %+v", errs)
	}
}
