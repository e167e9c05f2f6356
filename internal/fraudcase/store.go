package fraudcase

import "context"

// Store persists fraud cases. Insertion is a single attempt; the recorder
// treats failures as advisory and never retries.
type Store interface {
	Insert(ctx context.Context, c *Case) error
}
