// Package validate runs referential and consistency checks over a WDL world
// and aggregates the findings into a report. Validation always completes:
// issues are collected, never thrown, and a misbehaving rule degrades to a
// single error issue instead of aborting the pass.
package validate

import (
	"fmt"

	"github.com/omniworld-xyz/builder/pkg/wdl"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single severity-tagged diagnostic against a world.
type Issue struct {
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	EntityID  string   `json:"entity_id,omitempty"`
	FieldPath string   `json:"field_path,omitempty"`
}

// Result is the outcome of a validation pass. IsValid is false iff at least
// one issue has error severity; warnings and info never affect it.
type Result struct {
	IsValid bool    `json:"is_valid"`
	Issues  []Issue `json:"issues"`
}

func (r *Result) add(issues ...Issue) {
	for _, issue := range issues {
		r.Issues = append(r.Issues, issue)
		if issue.Severity == SeverityError {
			r.IsValid = false
		}
	}
}

func (r *Result) Errors() []Issue {
	return r.bySeverity(SeverityError)
}

func (r *Result) Warnings() []Issue {
	return r.bySeverity(SeverityWarning)
}

func (r *Result) bySeverity(s Severity) []Issue {
	out := make([]Issue, 0)
	for _, issue := range r.Issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}

// Rule inspects a world and reports zero or more issues. Rules are
// independent: they must not rely on another rule's output.
type Rule func(*wdl.World) []Issue

// Validator runs a fixed, ordered rule list. The built-in order only fixes
// the ordering of the report, not its content.
type Validator struct {
	rules []Rule
}

func New() *Validator {
	return &Validator{
		rules: []Rule{
			checkUniqueEntityIDs,
			checkParentReferences,
			checkEntityBounds,
			checkLightSettings,
			checkSystemReferences,
			checkPhysicsSettings,
		},
	}
}

// AddRule appends a custom rule after the built-ins.
func (v *Validator) AddRule(rule Rule) {
	v.rules = append(v.rules, rule)
}

func (v *Validator) Validate(world *wdl.World) Result {
	result := Result{IsValid: true, Issues: []Issue{}}
	for _, rule := range v.rules {
		result.add(runRule(rule, world)...)
	}
	return result
}

// runRule keeps a panicking rule from taking down the whole pass; worlds
// reconstructed from untrusted generated data reach this path.
func runRule(rule Rule, world *wdl.World) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			issues = []Issue{{
				Severity: SeverityError,
				Message:  fmt.Sprintf("failed to validate: %v", r),
			}}
		}
	}()
	return rule(world)
}

// Validate runs the built-in rules over a world.
func Validate(world *wdl.World) Result {
	return New().Validate(world)
}

func checkUniqueEntityIDs(world *wdl.World) []Issue {
	issues := make([]Issue, 0)
	seen := make(map[string]struct{}, len(world.Entities))
	for _, e := range world.Entities {
		if _, dup := seen[e.ID]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("duplicate entity id: %s", e.ID),
				EntityID: e.ID,
			})
		}
		seen[e.ID] = struct{}{}
	}
	return issues
}

func checkParentReferences(world *wdl.World) []Issue {
	issues := make([]Issue, 0)
	ids := entityIDSet(world)
	for _, e := range world.Entities {
		if e.ParentID == "" {
			continue
		}
		if _, ok := ids[e.ParentID]; !ok {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Message:   fmt.Sprintf("entity %q references non-existent parent: %s", e.Name, e.ParentID),
				EntityID:  e.ID,
				FieldPath: "parent_id",
			})
		}
	}
	return issues
}

func checkEntityBounds(world *wdl.World) []Issue {
	issues := make([]Issue, 0)
	for _, e := range world.Entities {
		if !world.Bounds.Contains(e.Transform.Position) {
			issues = append(issues, Issue{
				Severity:  SeverityWarning,
				Message:   fmt.Sprintf("entity %q is outside world bounds", e.Name),
				EntityID:  e.ID,
				FieldPath: "transform.position",
			})
		}
	}
	return issues
}

const suspiciousLightIntensity = 100

func checkLightSettings(world *wdl.World) []Issue {
	issues := make([]Issue, 0)
	for _, l := range world.Lights {
		if l.Intensity > suspiciousLightIntensity {
			issues = append(issues, Issue{
				Severity:  SeverityWarning,
				Message:   fmt.Sprintf("light %q has unusually high intensity: %v", l.Name, l.Intensity),
				FieldPath: "intensity",
			})
		}
	}
	return issues
}

func checkSystemReferences(world *wdl.World) []Issue {
	issues := make([]Issue, 0)
	ids := entityIDSet(world)
	for _, s := range world.Systems {
		for _, interaction := range s.Interactions {
			if interaction.TargetEntityID == "" {
				continue
			}
			if _, ok := ids[interaction.TargetEntityID]; !ok {
				issues = append(issues, Issue{
					Severity:  SeverityError,
					Message:   fmt.Sprintf("system %q references non-existent entity: %s", s.Name, interaction.TargetEntityID),
					FieldPath: "interactions.target_entity_id",
				})
			}
		}
	}
	return issues
}

func checkPhysicsSettings(world *wdl.World) []Issue {
	issues := make([]Issue, 0)
	for _, e := range world.Entities {
		if e.Physics.Enabled && e.Physics.Mass == 0 {
			issues = append(issues, Issue{
				Severity:  SeverityWarning,
				Message:   fmt.Sprintf("entity %q has physics enabled but zero mass", e.Name),
				EntityID:  e.ID,
				FieldPath: "physics.mass",
			})
		}
		if e.EntityType == wdl.EntityDynamicObject && !e.Physics.Enabled {
			issues = append(issues, Issue{
				Severity:  SeverityInfo,
				Message:   fmt.Sprintf("dynamic object %q does not have physics enabled", e.Name),
				EntityID:  e.ID,
				FieldPath: "physics.enabled",
			})
		}
	}
	return issues
}

func entityIDSet(world *wdl.World) map[string]struct{} {
	ids := make(map[string]struct{}, len(world.Entities))
	for _, e := range world.Entities {
		ids[e.ID] = struct{}{}
	}
	return ids
}
