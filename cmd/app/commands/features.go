package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ovationhq/ovation/internal/app"
	"github.com/ovationhq/ovation/internal/config"
)

// RunGrantFeatures adds the given feature strings to a user's grant set.
// Features are comma-separated and validated against the catalog before
// persisting.
func RunGrantFeatures(ctx context.Context, username, featuresStr, format string) error {
	features := parseFeatureList(featuresStr)
	if len(features) == 0 {
		return fmt.Errorf("no features provided")
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	logger.Info("granting features",
		slog.String("username", username),
		slog.Any("features", features),
	)

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := userUseCase.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	updated, err := userUseCase.UpdateFeatures(ctx, username, mergeFeatures(user.Features, features))
	if err != nil {
		return fmt.Errorf("failed to update features: %w", err)
	}

	outputFeatures(updated.Username, updated.Features, format)
	return nil
}

// RunRevokeFeatures removes the given feature strings from a user's grant
// set. Features not currently granted are ignored.
func RunRevokeFeatures(ctx context.Context, username, featuresStr, format string) error {
	features := parseFeatureList(featuresStr)
	if len(features) == 0 {
		return fmt.Errorf("no features provided")
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	logger.Info("revoking features",
		slog.String("username", username),
		slog.Any("features", features),
	)

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := userUseCase.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	updated, err := userUseCase.UpdateFeatures(ctx, username, removeFeatures(user.Features, features))
	if err != nil {
		return fmt.Errorf("failed to update features: %w", err)
	}

	outputFeatures(updated.Username, updated.Features, format)
	return nil
}

// RunListFeatures prints a user's granted features, or the full feature
// catalog when no username is given.
func RunListFeatures(ctx context.Context, username, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	if username == "" {
		catalog, err := container.Catalog()
		if err != nil {
			return fmt.Errorf("failed to initialize catalog: %w", err)
		}
		all := catalog.Features()
		features := make([]string, 0, len(all))
		for _, feature := range all {
			features = append(features, string(feature))
		}
		outputFeatures("", features, format)
		return nil
	}

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := userUseCase.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	outputFeatures(user.Username, user.Features, format)
	return nil
}

// parseFeatureList splits a comma-separated feature list, trimming
// whitespace and dropping empty entries.
func parseFeatureList(featuresStr string) []string {
	parts := strings.Split(featuresStr, ",")
	features := make([]string, 0, len(parts))
	for _, part := range parts {
		feature := strings.TrimSpace(part)
		if feature != "" {
			features = append(features, feature)
		}
	}
	return features
}

// mergeFeatures returns current plus additions, deduplicated and preserving
// the original order.
func mergeFeatures(current, additions []string) []string {
	merged := make([]string, 0, len(current)+len(additions))
	merged = append(merged, current...)
	for _, feature := range additions {
		if !slices.Contains(merged, feature) {
			merged = append(merged, feature)
		}
	}
	return merged
}

// removeFeatures returns current without the removals.
func removeFeatures(current, removals []string) []string {
	remaining := make([]string, 0, len(current))
	for _, feature := range current {
		if !slices.Contains(removals, feature) {
			remaining = append(remaining, feature)
		}
	}
	return remaining
}

// outputFeatures prints the feature set in text or JSON format.
func outputFeatures(username string, features []string, format string) {
	if format == "json" {
		result := map[string]interface{}{
			"features": features,
		}
		if username != "" {
			result["username"] = username
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
			return
		}
		fmt.Println(string(jsonBytes))
		return
	}

	if username != "" {
		fmt.Printf("Features for %s:\n", username)
	} else {
		fmt.Println("Feature catalog:")
	}
	for _, feature := range features {
		fmt.Printf("  %s\n", feature)
	}
}
