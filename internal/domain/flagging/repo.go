package flagging

import "context"

type Repository interface {
	// Upsert inserts or updates the config identified by its
	// (test_code, parameter_name, gender) key.
	Upsert(ctx context.Context, cfg *FlagConfig) error
	ListActiveByTestCodes(ctx context.Context, codes []string) ([]FlagConfig, error)
	List(ctx context.Context, limit, offset int) ([]FlagConfig, int, error)
}
