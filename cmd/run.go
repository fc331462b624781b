package cmd

import (
	"errors"
	"fmt"

	"github.com/seralva/gapscope/core"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/internal/snapcache"
	"github.com/seralva/gapscope/schema"
)

// loadBundleForRun resolves the input bundle for an analysis command.
// An explicit bundle path wins and refreshes the niche snapshot; otherwise
// the cached snapshot selected by --niche is used.
func loadBundleForRun(cfg *contract.Config, mgr contract.SnapshotManager) (*schema.AnalysisBundle, error) {
	if cfg.BundlePath != "" {
		bundle, err := contract.LoadBundle(cfg.BundlePath)
		if err != nil {
			return nil, err
		}
		if cfg.Niche != "" {
			bundle.Niche = cfg.Niche
		}
		if err := snapcache.StoreBundle(mgr, bundle); err != nil {
			contract.LogWarn("Failed to snapshot bundle", err)
		}
		return bundle, nil
	}

	if cfg.Niche == "" {
		return nil, errors.New("a bundle path or --niche is required")
	}
	bundle, hit, err := snapcache.LoadCachedBundle(mgr, cfg.Niche)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, fmt.Errorf("no cached snapshot for niche %q; provide a bundle path", cfg.Niche)
	}
	return bundle, nil
}

// runForOutput loads the bundle and executes the full analysis once.
// Every subcommand renders a different slice of the same output.
func runForOutput(cfg *contract.Config, mgr contract.SnapshotManager) (*core.AnalysisOutput, error) {
	bundle, err := loadBundleForRun(cfg, mgr)
	if err != nil {
		return nil, err
	}
	return core.RunAnalysis(cfg, bundle)
}
