package main

import (
	"os"
	"path/filepath"

	"github.com/pborman/getopt/v2"
	"github.com/pkg/errors"

	"github.com/omniworld-xyz/builder/internal/config"
	"github.com/omniworld-xyz/builder/internal/export"
	"github.com/omniworld-xyz/builder/internal/logger"
	"github.com/omniworld-xyz/builder/internal/registry"
	"github.com/omniworld-xyz/builder/pkg/generate"
	"github.com/omniworld-xyz/builder/pkg/spatial"
	"github.com/omniworld-xyz/builder/pkg/wdl"
	"github.com/omniworld-xyz/builder/pkg/wdl/validate"
)

var log = logger.L()

func main() {
	if err := run(); err != nil {
		log.Fatal(errors.WithMessage(err, "error running"))
	}
}

func run() error {
	cfg := config.GetConfig()
	defer logger.Close()

	args := getopt.Args()
	if len(args) != 1 {
		return errors.New("usage: builder [options] <world.json>")
	}
	worldPath := args[0]

	data, err := os.ReadFile(worldPath)
	if err != nil {
		return errors.WithMessagef(err, "failed to read %q", worldPath)
	}
	world, err := wdl.Decode(data)
	if err != nil {
		return errors.WithMessagef(err, "failed to decode %q", worldPath)
	}
	log.Infof("Loaded world %q: %d entities, %d lights, %d systems",
		world.Metadata.Title, len(world.Entities), len(world.Lights), len(world.Systems))

	result := validate.Validate(world)
	for _, issue := range result.Issues {
		switch issue.Severity {
		case validate.SeverityError:
			log.Errorf("Validation: %s (%s)", issue.Message, issue.EntityID)
		case validate.SeverityWarning:
			log.Warnf("Validation: %s (%s)", issue.Message, issue.EntityID)
		default:
			log.Infof("Validation: %s (%s)", issue.Message, issue.EntityID)
		}
	}
	if !result.IsValid {
		return errors.Errorf("world failed validation with %d errors", len(result.Errors()))
	}

	reasoner := spatial.NewReasoner(world)
	report := reasoner.Analysis()
	log.Infof("Spatial: %d entities, %d collisions, density %.4f",
		report.EntityCount, report.CollisionCount, report.Density)
	for _, pair := range report.Collisions {
		log.Warnf("Spatial: %q overlaps %q", pair.Entity1, pair.Entity2)
	}

	assets, err := registry.Open(cfg.Builder.RegistryPath)
	if err != nil {
		return err
	}
	defer assets.Close()
	reportMissingAssets(world, assets)

	platforms := generate.DefaultRegistry()
	for _, platform := range cfg.Builder.Platforms {
		gen, err := platforms.Get(platform)
		if err != nil {
			return err
		}
		files, err := gen.Generate(world)
		if err != nil {
			return errors.WithMessagef(err, "failed to generate for %q", platform)
		}
		written, err := export.SaveAll(filepath.Join(cfg.Builder.OutputDir, platform), files)
		if err != nil {
			return err
		}
		log.Infof("Generated %d files for %s", len(written), platform)
	}
	return nil
}

func reportMissingAssets(world *wdl.World, assets *registry.Registry) {
	for _, e := range world.Entities {
		if e.AssetReference == "" {
			continue
		}
		if _, ok := assets.Get(e.AssetReference); !ok {
			log.Warnf("Entity %q references unknown asset %q", e.Name, e.AssetReference)
		}
	}
}
