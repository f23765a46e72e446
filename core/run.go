package core

import (
	"context"
	"time"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/internal/outwriter"
	"github.com/parityscope/parityscope/internal/payload"
	"github.com/parityscope/parityscope/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// GetScoreResults runs a full scoring pass: payload load, equity and
// diversity scoring, gap ranking, and run tracking. It returns the
// enriched result without printing, for use by both the CLI and MCP.
func GetScoreResults(cfg *contract.Config, mgr contract.HistoryManager) (*schema.EnrichedDiversityResult, time.Duration, error) {
	preds, err := payload.Load(cfg.PredictionsFile, cfg.SetValues)
	if err != nil {
		return nil, 0, err
	}
	return ScoreProportions(preds, cfg, mgr)
}

// ScoreProportions scores an already-decoded prediction payload. The MCP
// server uses this entry point with inline payloads.
func ScoreProportions(preds schema.Proportions, cfg *contract.Config, mgr contract.HistoryManager) (*schema.EnrichedDiversityResult, time.Duration, error) {
	start := time.Now()

	engine, err := NewEngine(schema.DefaultRubric())
	if err != nil {
		return nil, 0, err
	}
	override := schema.OverrideForBasis(cfg.Basis)

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	var store contract.HistoryStore
	if mgr != nil {
		store = mgr.GetHistoryStore()
	}
	if store != nil {
		runID, err = store.BeginRun(start, cfg.Basis, payload.MarshalPayload(preds))
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Scoring ---
	result := engine.DiversityScore(preds, override)

	// --- 2. Gap Ranking ---
	burden := effectiveBurden(engine.Rubric(), override)
	gaps := LargestGaps(preds, burden, cfg.TopK)

	enriched := &schema.EnrichedDiversityResult{
		Label:           contract.GetPlainLabel(result.DiversityScore),
		GapSummary:      FormatGapSummary(gaps),
		Gaps:            gaps,
		DiversityResult: *result,
	}

	// --- 3. End Run Tracking ---
	if store != nil && runID > 0 {
		if err := store.RecordSubgroupScores(runID, start, result.Breakdown); err != nil {
			contract.LogWarn("Failed to record subgroup scores", err)
		}
		if err := store.EndRun(runID, time.Now(), result.EquityTotal, result.DiversityScore); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return enriched, time.Since(start), nil
}

// GetGapResults ranks representation gaps without printing, for use by
// both the CLI and MCP.
func GetGapResults(cfg *contract.Config) (*outwriter.GapReport, error) {
	preds, err := payload.Load(cfg.PredictionsFile, cfg.SetValues)
	if err != nil {
		return nil, err
	}
	return RankProportionGaps(preds, cfg)
}

// RankProportionGaps ranks gaps for an already-decoded payload.
func RankProportionGaps(preds schema.Proportions, cfg *contract.Config) (*outwriter.GapReport, error) {
	engine, err := NewEngine(schema.DefaultRubric())
	if err != nil {
		return nil, err
	}
	burden := effectiveBurden(engine.Rubric(), schema.OverrideForBasis(cfg.Basis))

	gaps := LargestGaps(preds, burden, cfg.TopK)
	return &outwriter.GapReport{
		Gaps:    gaps,
		Summary: FormatGapSummary(gaps),
	}, nil
}

// GetShortfallResults computes raw signed shortfalls for every burden
// key without printing.
func GetShortfallResults(cfg *contract.Config) ([]schema.ShortfallRow, error) {
	preds, err := payload.Load(cfg.PredictionsFile, cfg.SetValues)
	if err != nil {
		return nil, err
	}
	return ShortfallsForProportions(preds, cfg)
}

// ShortfallsForProportions computes shortfalls for an already-decoded payload.
func ShortfallsForProportions(preds schema.Proportions, cfg *contract.Config) ([]schema.ShortfallRow, error) {
	engine, err := NewEngine(schema.DefaultRubric())
	if err != nil {
		return nil, err
	}

	result := engine.DiversityScore(preds, schema.OverrideForBasis(cfg.Basis))
	return result.Shortfalls, nil
}

// ActiveRubric returns the shipped rubric with the basis override
// already folded into its burden table.
func ActiveRubric(basis schema.BurdenBasis) schema.Rubric {
	rubric := schema.DefaultRubric()
	for key, val := range schema.OverrideForBasis(basis) {
		rubric.Burden[key] = val
	}
	return rubric
}

// ExecuteScore runs a full scoring pass and prints results to stdout.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(_ context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	enriched, duration, err := GetScoreResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScoreResults(enriched, cfg, duration)
}

// ExecuteGaps ranks representation gaps and prints results to stdout.
// It serves as the main entry point for the 'gaps' command.
func ExecuteGaps(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	report, err := GetGapResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteGapResults(report, cfg)
}

// ExecuteShortfall computes raw signed shortfalls for every burden key
// and prints results to stdout. It serves as the main entry point for
// the 'shortfall' command.
func ExecuteShortfall(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	rows, err := GetShortfallResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteShortfallResults(rows, cfg)
}

// ExecuteRubric displays the active scoring rubric. This is a static
// display that does not require a prediction payload.
func ExecuteRubric(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	rubric := ActiveRubric(cfg.Basis)
	return outwriter.NewOutWriter().WriteRubric(&rubric, cfg.Basis, cfg)
}

// effectiveBurden merges a per-call override over the rubric's default
// burden table. Override keys win; everything else falls through.
func effectiveBurden(r schema.Rubric, override schema.BurdenOverride) map[schema.SubgroupKey]float64 {
	burden := make(map[schema.SubgroupKey]float64, len(r.Burden))
	for key, val := range r.Burden {
		burden[key] = val
	}
	for key, val := range override {
		burden[key] = val
	}
	return burden
}
