// internal/integration/cancel_integration_test.go
package integration

import (
	"context"
	"io"
	"testing"

	"introsim/internal/app"
)

func TestCancelledRunExits130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	code := app.RunContext(ctx, smallRun(dir), io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
