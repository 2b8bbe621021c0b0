package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportResult appends a resolved round and the standings after it to a text file.
func ExportResult(roomID string, res Result, filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	fileExists := false
	if _, err := os.Stat(filename); err == nil {
		fileExists = true
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var sb strings.Builder

	// Header for the first round of a room
	if res.Round == 1 {
		if fileExists {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("Raja Mantri Chor Sipahi - Room %s\n", roomID))
		sb.WriteString(fmt.Sprintf("Started: %s\n", time.Now().Format("2006-01-02 15:04:05")))
		sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	}

	sb.WriteString(fmt.Sprintf("Room %s - Round %d\n", roomID, res.Round))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, e := range res.Entries {
		sb.WriteString(fmt.Sprintf("- %s (%s): %d points\n", e.Name, e.Role, e.Points))
	}
	if res.Correct {
		sb.WriteString("\nMantri caught the Chor\n")
	} else {
		sb.WriteString("\nChor got away\n")
	}

	if len(res.Standings) > 0 {
		sb.WriteString("\nScores after this round:\n")
		for _, s := range res.Standings {
			sb.WriteString(fmt.Sprintf("- %s: %d points\n", s.Name, s.Score))
		}
	}
	sb.WriteString("\n")

	if _, err := file.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}
