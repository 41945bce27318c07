package e2e

import (
	"os"
	"testing"
)

// TestMain ensures prompt process exit after all tests complete. The shared
// fixture keeps background goroutines alive (httptest.Server accept loop,
// sql.DB connection opener), so we close it and then call os.Exit.
func TestMain(m *testing.M) {
	code := m.Run()

	if notesSharedFixture != nil {
		notesSharedFixture.server.Close()
	}

	os.Exit(code)
}
