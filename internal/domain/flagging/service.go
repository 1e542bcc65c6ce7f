package flagging

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlis/lis/internal/domain/result"
)

// SyncItem is one incoming reference-range rule. Absent isActive
// defaults to active.
type SyncItem struct {
	TestCode      string     `json:"testCode"`
	ParameterName string     `json:"parameterName"`
	Description   string     `json:"description"`
	Unit          string     `json:"unit"`
	Gender        string     `json:"gender"`
	Min           *float64   `json:"min"`
	Max           *float64   `json:"max"`
	IsActive      *bool      `json:"isActive"`
	EffectiveDate *time.Time `json:"effectiveDate"`
}

// SyncSummary reports the outcome of one configuration sync.
type SyncSummary struct {
	Received       int `json:"received"`
	Applied        int `json:"applied"`
	Dropped        int `json:"dropped"`
	ResultsUpdated int `json:"resultsUpdated"`
}

type Service struct {
	configs Repository
	results result.Repository
	log     zerolog.Logger
}

func NewService(configs Repository, results result.Repository, log zerolog.Logger) *Service {
	return &Service{
		configs: configs,
		results: results,
		log:     log.With().Str("component", "flagging").Logger(),
	}
}

// Sync normalizes and upserts the incoming rules, then recomputes flags
// for exactly the test codes that were touched. Items with a blank test
// code are silently dropped; a failed upsert skips that item and the
// sync continues.
func (s *Service) Sync(ctx context.Context, items []SyncItem) (*SyncSummary, error) {
	summary := &SyncSummary{Received: len(items)}
	affected := make(map[string]bool)

	for _, item := range items {
		code := strings.ToUpper(strings.TrimSpace(item.TestCode))
		if code == "" {
			summary.Dropped++
			continue
		}

		active := true
		if item.IsActive != nil {
			active = *item.IsActive
		}
		cfg := &FlagConfig{
			TestCode:      code,
			ParameterName: strings.TrimSpace(item.ParameterName),
			Description:   strings.TrimSpace(item.Description),
			Unit:          strings.TrimSpace(item.Unit),
			Gender:        strings.TrimSpace(item.Gender),
			Min:           item.Min,
			Max:           item.Max,
			Active:        active,
			EffectiveDate: item.EffectiveDate,
		}
		if err := s.configs.Upsert(ctx, cfg); err != nil {
			s.log.Error().Err(err).Str("test_code", code).Msg("config upsert failed, skipping item")
			summary.Dropped++
			continue
		}
		summary.Applied++
		affected[code] = true
	}

	if len(affected) == 0 {
		return summary, nil
	}

	codes := make([]string, 0, len(affected))
	for code := range affected {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	updated, err := s.Recompute(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("recompute flags for %v: %w", codes, err)
	}
	summary.ResultsUpdated = updated
	return summary, nil
}

// Recompute re-evaluates every numeric result whose test code is in the
// set against the active configuration and bulk-applies the flags that
// changed. A gender-specific rule beats a gender-agnostic one; results
// with no applicable rule, and human-reviewed results, are left alone.
// It returns the number of results updated.
func (s *Service) Recompute(ctx context.Context, codes []string) (int, error) {
	cfgs, err := s.configs.ListActiveByTestCodes(ctx, codes)
	if err != nil {
		return 0, fmt.Errorf("load configs: %w", err)
	}
	if len(cfgs) == 0 {
		return 0, nil
	}

	byCode := make(map[string]map[string]*FlagConfig)
	for i := range cfgs {
		c := &cfgs[i]
		if byCode[c.TestCode] == nil {
			byCode[c.TestCode] = make(map[string]*FlagConfig)
		}
		byCode[c.TestCode][c.Gender] = c
	}

	results, err := s.results.ListNumericByTestCodes(ctx, codes)
	if err != nil {
		return 0, fmt.Errorf("load results: %w", err)
	}

	var updates []result.FlagUpdate
	for _, r := range results {
		if r.Reviewed {
			continue
		}
		byGender, ok := byCode[r.TestCode]
		if !ok {
			continue
		}
		cfg := byGender[r.Gender]
		if cfg == nil {
			cfg = byGender[""]
		}
		if cfg == nil {
			continue
		}
		flag, ok := cfg.Evaluate(r.ValueNumeric)
		if !ok || flag == r.Flag {
			continue
		}
		updates = append(updates, result.FlagUpdate{ID: r.ID, Flag: flag})
	}

	if len(updates) == 0 {
		return 0, nil
	}
	if err := s.results.BulkUpdateFlags(ctx, updates); err != nil {
		return 0, fmt.Errorf("apply flag updates: %w", err)
	}
	s.log.Info().Strs("test_codes", codes).Int("updated", len(updates)).
		Msg("recomputed result flags")
	return len(updates), nil
}
