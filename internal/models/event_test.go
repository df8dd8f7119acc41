package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEventProjections(t *testing.T) {
	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	event := &Event{
		ID:            primitive.NewObjectID(),
		Title:         "Battle of Bands",
		Description:   "Inter-college band face-off",
		EventCategory: EventCategoryCommon,
		Type:          EventTypeTeam,
		TeamSize:      5,
		UpiID:         "fest@upi",
		Amount:        500,
		Rules:         []string{"Max 15 minutes per band"},
		ImageURL:      "https://cdn.example.com/poster.jpg",
		ImagePublicID: "main_events/abc123",
		StartTime:     start,
	}

	form := event.FormView()
	if form.Title != event.Title || form.UpiID != event.UpiID || form.TeamSize != 5 {
		t.Errorf("Form view dropped fields: %+v", form)
	}

	public := event.PublicView()
	if public.Title != event.Title || public.ImageURL != event.ImageURL {
		t.Errorf("Public view dropped fields: %+v", public)
	}
	if public.StartTime != start {
		t.Errorf("Expected start time %v, got %v", start, public.StartTime)
	}
}
