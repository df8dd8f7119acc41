package services

import (
	"errors"
	"testing"
	"time"

	"github.com/devnandu/festserver/internal/models"
)

func TestValidateSchedule(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	err := validateSchedule(base, base.Add(4*time.Hour), base.Add(-24*time.Hour))
	if err != nil {
		t.Errorf("Expected valid schedule to pass, got: %v", err)
	}

	// Deadline after start.
	err = validateSchedule(base, base.Add(4*time.Hour), base.Add(time.Hour))
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for late deadline, got: %v", err)
	}

	// Start after end.
	err = validateSchedule(base, base.Add(-time.Hour), base.Add(-24*time.Hour))
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for inverted window, got: %v", err)
	}

	// Deadline equal to start is allowed.
	err = validateSchedule(base, base.Add(4*time.Hour), base)
	if err != nil {
		t.Errorf("Expected deadline equal to start to pass, got: %v", err)
	}
}

func TestNormalizeTeamSize(t *testing.T) {
	size, err := normalizeTeamSize(models.EventTypeSingle, 7)
	if err != nil {
		t.Fatalf("Unexpected error for single event: %v", err)
	}
	if size != 1 {
		t.Errorf("Expected single event size 1, got %d", size)
	}

	size, err = normalizeTeamSize(models.EventTypeTeam, 4)
	if err != nil {
		t.Fatalf("Unexpected error for team event: %v", err)
	}
	if size != 4 {
		t.Errorf("Expected team size 4, got %d", size)
	}

	if _, err := normalizeTeamSize(models.EventTypeTeam, 1); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for team size 1, got: %v", err)
	}

	if _, err := normalizeTeamSize("pair", 2); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for unknown type, got: %v", err)
	}
}

func TestApplyUpdatePartial(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	event := &models.Event{
		Title:                "Coding Sprint",
		Type:                 models.EventTypeTeam,
		TeamSize:             3,
		Amount:               150,
		StartTime:            start,
		EndTime:              start.Add(4 * time.Hour),
		RegistrationDeadline: start.Add(-24 * time.Hour),
	}

	title := "Hackathon"
	amount := 200.0
	set, err := applyUpdate(event, &models.EventUpdate{
		Title:  &title,
		Amount: &amount,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if set["title"] != "Hackathon" {
		t.Errorf("Expected title to be set, got %v", set["title"])
	}
	if set["amount"] != 200.0 {
		t.Errorf("Expected amount to be set, got %v", set["amount"])
	}
	if _, ok := set["type"]; ok {
		t.Error("Type was not provided and should not be in the update")
	}
	if _, ok := set["start_time"]; ok {
		t.Error("Schedule was not provided and should not be in the update")
	}
	if _, ok := set["updated_at"]; !ok {
		t.Error("Expected updated_at to always be set")
	}
}

func TestApplyUpdateRevalidatesMergedSchedule(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	event := &models.Event{
		Type:                 models.EventTypeSingle,
		TeamSize:             1,
		StartTime:            start,
		EndTime:              start.Add(4 * time.Hour),
		RegistrationDeadline: start.Add(-24 * time.Hour),
	}

	// Moving only the deadline past the stored start must fail.
	lateDeadline := start.Add(time.Hour)
	_, err := applyUpdate(event, &models.EventUpdate{RegistrationDeadline: &lateDeadline})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for merged schedule, got: %v", err)
	}

	// Moving the start forward together with the deadline is fine.
	newStart := start.Add(48 * time.Hour)
	set, err := applyUpdate(event, &models.EventUpdate{
		StartTime: &newStart,
		EndTime:   timePtr(newStart.Add(2 * time.Hour)),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if set["start_time"] != newStart {
		t.Errorf("Expected start_time %v, got %v", newStart, set["start_time"])
	}
	// Unchanged deadline is carried into the update alongside the new window.
	if set["registration_deadline"] != event.RegistrationDeadline {
		t.Errorf("Expected stored deadline to carry over, got %v", set["registration_deadline"])
	}
}

func TestApplyUpdateSwitchingToTeamNeedsSize(t *testing.T) {
	event := &models.Event{
		Type:     models.EventTypeSingle,
		TeamSize: 1,
	}

	team := models.EventTypeTeam
	if _, err := applyUpdate(event, &models.EventUpdate{Type: &team}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error when switching to team without a size, got: %v", err)
	}

	size := 5
	set, err := applyUpdate(event, &models.EventUpdate{Type: &team, TeamSize: &size})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if set["team_size"] != 5 {
		t.Errorf("Expected team_size 5, got %v", set["team_size"])
	}
}

func timePtr(t time.Time) *time.Time { return &t }
