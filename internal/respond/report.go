// internal/respond/report.go
package respond

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PrintHuman writes a readable cycle summary to the provided writer.
func PrintHuman(stats Stats, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "awaybot cycle — started %s\n", stats.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&builder, "  scanned: %d\n", stats.Scanned)
	fmt.Fprintf(&builder, "  replied: %d\n", stats.Replied)
	fmt.Fprintf(&builder, "  skipped: %d\n", stats.Skipped)
	fmt.Fprintf(&builder, "  failed:  %d\n", stats.Failed)
	if stats.LabelID != "" {
		fmt.Fprintf(&builder, "  marker label id: %s\n", stats.LabelID)
	}
	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("write cycle summary: %w", err)
	}
	return nil
}

// WriteJSON serializes the cycle stats to disk.
func WriteJSON(stats Stats, path string) error {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return fmt.Errorf("path must not be empty")
	}
	clean = filepath.Clean(clean)
	if filepath.IsAbs(clean) {
		return fmt.Errorf("output path must be relative, got %s", clean)
	}
	if strings.HasPrefix(clean, "..") {
		return fmt.Errorf("output path %s escapes working directory", clean)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	abs := filepath.Join(wd, clean)
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) // #nosec G304
	if err != nil {
		return fmt.Errorf("create %s: %w", abs, err)
	}
	defer func() { _ = f.Close() }()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if encodeErr := enc.Encode(stats); encodeErr != nil {
		return fmt.Errorf("encode stats: %w", encodeErr)
	}
	return nil
}
