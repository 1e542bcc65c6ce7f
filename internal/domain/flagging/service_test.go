package flagging

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openlis/lis/internal/domain/result"
)

type mockConfigRepo struct {
	configs map[string]*FlagConfig
}

func newMockConfigRepo() *mockConfigRepo {
	return &mockConfigRepo{configs: make(map[string]*FlagConfig)}
}

func configKey(code, param, gender string) string {
	return code + "|" + param + "|" + gender
}

func (m *mockConfigRepo) Upsert(_ context.Context, cfg *FlagConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	m.configs[configKey(cfg.TestCode, cfg.ParameterName, cfg.Gender)] = cfg
	return nil
}

func (m *mockConfigRepo) ListActiveByTestCodes(_ context.Context, codes []string) ([]FlagConfig, error) {
	inSet := make(map[string]bool)
	for _, c := range codes {
		inSet[c] = true
	}
	var out []FlagConfig
	for _, cfg := range m.configs {
		if cfg.Active && inSet[cfg.TestCode] {
			out = append(out, *cfg)
		}
	}
	return out, nil
}

func (m *mockConfigRepo) List(_ context.Context, limit, offset int) ([]FlagConfig, int, error) {
	var out []FlagConfig
	for _, cfg := range m.configs {
		out = append(out, *cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TestCode < out[j].TestCode })
	total := len(out)
	if offset >= total {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type mockResultRepo struct {
	results map[uuid.UUID]*result.NumericResult
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{results: make(map[uuid.UUID]*result.NumericResult)}
}

func (m *mockResultRepo) add(code string, value float64, gender string) uuid.UUID {
	id := uuid.New()
	m.results[id] = &result.NumericResult{ID: id, TestCode: code, ValueNumeric: value, Gender: gender}
	return id
}

func (m *mockResultRepo) Create(_ context.Context, _ *result.TestResult) error { return nil }

func (m *mockResultRepo) ListByOrder(_ context.Context, _ uuid.UUID) ([]result.TestResult, error) {
	return nil, nil
}

func (m *mockResultRepo) ListNumericByTestCodes(_ context.Context, codes []string) ([]result.NumericResult, error) {
	inSet := make(map[string]bool)
	for _, c := range codes {
		inSet[c] = true
	}
	var out []result.NumericResult
	for _, r := range m.results {
		if inSet[r.TestCode] {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockResultRepo) BulkUpdateFlags(_ context.Context, updates []result.FlagUpdate) error {
	for _, u := range updates {
		if r, ok := m.results[u.ID]; ok && !r.Reviewed {
			r.Flag = u.Flag
		}
	}
	return nil
}

func newTestService() (*Service, *mockConfigRepo, *mockResultRepo) {
	cfgs := newMockConfigRepo()
	results := newMockResultRepo()
	return NewService(cfgs, results, zerolog.Nop()), cfgs, results
}

func f64(v float64) *float64 { return &v }

func TestFlagBoundariesInclusive(t *testing.T) {
	svc, _, results := newTestService()

	cases := map[float64]string{
		9.99:  FlagLow,
		10:    FlagNormal,
		15:    FlagNormal,
		20:    FlagNormal,
		20.01: FlagHigh,
	}
	ids := make(map[uuid.UUID]string)
	for value, want := range cases {
		ids[results.add("WBC", value, "")] = want
	}

	summary, err := svc.Sync(context.Background(), []SyncItem{
		{TestCode: "WBC", Min: f64(10), Max: f64(20)},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if summary.Applied != 1 {
		t.Fatalf("applied %d, want 1", summary.Applied)
	}
	if summary.ResultsUpdated != len(cases) {
		t.Fatalf("results updated %d, want %d", summary.ResultsUpdated, len(cases))
	}
	for id, want := range ids {
		if got := results.results[id].Flag; got != want {
			t.Errorf("value %v: flag %q, want %q", results.results[id].ValueNumeric, got, want)
		}
	}
}

func TestGenderSpecificConfigWins(t *testing.T) {
	svc, _, results := newTestService()

	femaleID := results.add("HGB", 11, "Female")
	maleID := results.add("HGB", 11, "Male")

	_, err := svc.Sync(context.Background(), []SyncItem{
		{TestCode: "HGB", Gender: "Female", Min: f64(12), Max: f64(16)},
		{TestCode: "HGB", Min: f64(10), Max: f64(20)},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if got := results.results[femaleID].Flag; got != FlagLow {
		t.Errorf("female result flag %q, want %q", got, FlagLow)
	}
	if got := results.results[maleID].Flag; got != FlagNormal {
		t.Errorf("male result flag %q, want %q", got, FlagNormal)
	}
}

func TestRecomputeScopedToAffectedCodes(t *testing.T) {
	svc, _, results := newTestService()

	wbcID := results.add("WBC", 5, "")
	rbcID := results.add("RBC", 3, "")
	results.results[rbcID].Flag = FlagLow

	_, err := svc.Sync(context.Background(), []SyncItem{
		{TestCode: "WBC", Min: f64(4.5), Max: f64(11)},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if got := results.results[wbcID].Flag; got != FlagNormal {
		t.Errorf("WBC flag %q, want %q", got, FlagNormal)
	}
	if got := results.results[rbcID].Flag; got != FlagLow {
		t.Errorf("RBC flag changed to %q by an unrelated sync", got)
	}
}

func TestReviewedResultsUntouched(t *testing.T) {
	svc, _, results := newTestService()

	id := results.add("WBC", 3, "")
	results.results[id].Flag = FlagNormal
	results.results[id].Reviewed = true

	_, err := svc.Sync(context.Background(), []SyncItem{
		{TestCode: "WBC", Min: f64(4.5), Max: f64(11)},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if got := results.results[id].Flag; got != FlagNormal {
		t.Errorf("reviewed result reflagged to %q", got)
	}
}

func TestSyncNormalizesAndDropsBlankCodes(t *testing.T) {
	svc, cfgs, _ := newTestService()

	summary, err := svc.Sync(context.Background(), []SyncItem{
		{TestCode: "  wbc ", Min: f64(4.5), Max: f64(11)},
		{TestCode: "   "},
		{TestCode: ""},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if summary.Applied != 1 || summary.Dropped != 2 {
		t.Fatalf("summary %+v, want 1 applied / 2 dropped", summary)
	}
	cfg, ok := cfgs.configs[configKey("WBC", "", "")]
	if !ok {
		t.Fatal("expected a config keyed by the normalized code WBC")
	}
	if strings.TrimSpace(cfg.TestCode) != cfg.TestCode {
		t.Errorf("test code not trimmed: %q", cfg.TestCode)
	}
}

func TestInactiveConfigIsNoOp(t *testing.T) {
	svc, _, results := newTestService()

	id := results.add("WBC", 3, "")
	inactive := false
	_, err := svc.Sync(context.Background(), []SyncItem{
		{TestCode: "WBC", Min: f64(4.5), Max: f64(11), IsActive: &inactive},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if got := results.results[id].Flag; got != "" {
		t.Errorf("inactive config flagged a result %q", got)
	}
}

func TestRecomputeSkipsUnchangedFlags(t *testing.T) {
	svc, cfgs, results := newTestService()

	id := results.add("WBC", 5, "")
	results.results[id].Flag = FlagNormal
	if err := cfgs.Upsert(context.Background(), &FlagConfig{
		TestCode: "WBC", Min: f64(4.5), Max: f64(11), Active: true,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	updated, err := svc.Recompute(context.Background(), []string{"WBC"})
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if updated != 0 {
		t.Fatalf("updated %d results, want 0 when the flag is unchanged", updated)
	}
}

func TestRecomputeNoConfigIsNoOp(t *testing.T) {
	svc, _, results := newTestService()

	id := results.add("PLT", 100, "")
	updated, err := svc.Recompute(context.Background(), []string{"PLT"})
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if updated != 0 || results.results[id].Flag != "" {
		t.Fatalf("result without config was flagged %q", results.results[id].Flag)
	}
}
