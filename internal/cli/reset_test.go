package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestResetRequiresConfirmation(t *testing.T) {
	dbPath := testDatabasePath(t)

	_, err := runCommand(t, newStubProviders(workoutReply), "", "--db", dbPath, "reset")
	if !errors.Is(err, errResetNotConfirmed) {
		t.Fatalf("expected errResetNotConfirmed, got %v", err)
	}
}

func TestResetClearsStoredData(t *testing.T) {
	dbPath := testDatabasePath(t)
	providers := newStubProviders(workoutReply)

	if _, err := runCommand(t, providers, "", "--db", dbPath, "generate", "workout", "--save"); err != nil {
		t.Fatalf("generate --save unexpected error: %v", err)
	}

	result, err := runCommand(t, providers, "", "--db", dbPath, "reset", "--yes")
	if err != nil {
		t.Fatalf("reset unexpected error: %v", err)
	}
	if !strings.Contains(result.stdout, "All data has been cleared.") || !strings.Contains(result.stdout, "Removed 1 saved plans") {
		t.Fatalf("unexpected reset output %q", result.stdout)
	}

	result, err = runCommand(t, providers, "", "--db", dbPath, "state", "workout")
	if err != nil {
		t.Fatalf("state workout unexpected error: %v", err)
	}
	if strings.Contains(result.stdout, "Full Body Basics") {
		t.Fatalf("expected plans to be gone, got %s", result.stdout)
	}
}
