package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ovationhq/ovation/internal/app"
	"github.com/ovationhq/ovation/internal/config"
)

// RunCleanExpiredSessions deletes sessions whose expiration time has
// passed. Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredSessions(ctx context.Context, format string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("cleaning expired sessions")

	defer closeContainer(container, logger)

	sessionUseCase, err := container.SessionUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize session use case: %w", err)
	}

	count, err := sessionUseCase.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean expired sessions: %w", err)
	}

	if format == "json" {
		outputCleanExpiredJSON(count)
	} else {
		outputCleanExpiredText(count)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))
	return nil
}

func outputCleanExpiredText(count int64) {
	fmt.Printf("Successfully deleted %d expired session(s)\n", count)
}

func outputCleanExpiredJSON(count int64) {
	result := map[string]interface{}{
		"count": count,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Println(string(jsonBytes))
}
