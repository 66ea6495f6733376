package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/spendsense/internal/config"
	"github.com/Veraticus/spendsense/internal/engine"
	"github.com/Veraticus/spendsense/internal/model"
	"github.com/Veraticus/spendsense/internal/notify"
	"github.com/Veraticus/spendsense/internal/storage"
	"github.com/Veraticus/spendsense/internal/store"
)

// openEngine wires persistence, the rule store, and the engine. The
// returned cleanup flushes the store and closes the database.
func openEngine(ctx context.Context) (*engine.Engine, *store.RuleStore, func(), error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	persistence, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	ruleStore, err := store.New(ctx, persistence)
	if err != nil {
		_ = persistence.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize rule store: %w", err)
	}

	eng := engine.New(ruleStore, notify.NewLogNotifier(nil))

	cleanup := func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ruleStore.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush rule store", "error", err)
		}
		if err := persistence.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}
	return eng, ruleStore, cleanup, nil
}

// parseIssueType resolves a user-supplied issue type string.
func parseIssueType(s string) (model.IssueType, error) {
	issueType := model.IssueType(strings.ToLower(strings.TrimSpace(s)))
	if !issueType.Valid() {
		names := make([]string, len(model.AllIssueTypes))
		for i, t := range model.AllIssueTypes {
			names[i] = string(t)
		}
		return "", fmt.Errorf("unknown issue type %q (one of: %s)", s, strings.Join(names, ", "))
	}
	return issueType, nil
}

// parseFrequency resolves a user-supplied frequency string.
func parseFrequency(s string) (model.Frequency, error) {
	frequency := model.Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !frequency.Valid() {
		return "", fmt.Errorf("unknown frequency %q (one of: once, weekly, monthly, before_similar, before_merchant, before_category)", s)
	}
	return frequency, nil
}

// shortID abbreviates a uuid for table output.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// resolveID expands a full id or unique prefix against a list of known
// ids.
func resolveID(prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("id is required")
	}

	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no id matches %q", prefix)
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// formatMoney renders a dollar amount for table output.
func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// formatOptionalTime renders a nullable timestamp for table output.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("2006-01-02 15:04")
}

// flushTable flushes a tabwriter, logging rather than failing on error.
func flushTable(w *tabwriter.Writer) {
	if err := w.Flush(); err != nil {
		slog.Error("failed to flush table writer", "error", err)
	}
}
