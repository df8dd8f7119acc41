package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestParseRules(t *testing.T) {
	rules := parseRules([]string{"rule one", "rule two"})
	if len(rules) != 2 || rules[0] != "rule one" {
		t.Errorf("Expected repeated values to pass through, got %v", rules)
	}

	rules = parseRules([]string{`["max 5 members","report by 9am"]`})
	if len(rules) != 2 || rules[1] != "report by 9am" {
		t.Errorf("Expected JSON array to be decoded, got %v", rules)
	}

	// A single value that is not JSON stays a one-element list.
	rules = parseRules([]string{"just one rule"})
	if len(rules) != 1 || rules[0] != "just one rule" {
		t.Errorf("Expected plain single value to pass through, got %v", rules)
	}
}

func multipartContext(t *testing.T, fields map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field: %v", err)
		}
	}
	writer.Close()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c
}

func TestEventInputFromForm(t *testing.T) {
	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	c := multipartContext(t, map[string]string{
		"title":                "Tech Quiz",
		"type":                 "team",
		"teamSize":             "2",
		"upiId":                "fest@upi",
		"amount":               "100.50",
		"rules":                `["no phones"]`,
		"startTime":            start.Format(time.RFC3339),
		"endTime":              start.Add(2 * time.Hour).Format(time.RFC3339),
		"registrationDeadline": start.Add(-24 * time.Hour).Format(time.RFC3339),
	})

	input, err := eventInputFromForm(c)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if input.Title != "Tech Quiz" || input.TeamSize != 2 || input.Amount != 100.50 {
		t.Errorf("Form fields not parsed: %+v", input)
	}
	if !input.StartTime.Equal(start) {
		t.Errorf("Expected start time %v, got %v", start, input.StartTime)
	}
	if len(input.Rules) != 1 || input.Rules[0] != "no phones" {
		t.Errorf("Rules not parsed: %v", input.Rules)
	}
}

func TestEventInputFromFormBadTime(t *testing.T) {
	c := multipartContext(t, map[string]string{
		"title":     "Tech Quiz",
		"type":      "single",
		"upiId":     "fest@upi",
		"amount":    "50",
		"startTime": "tomorrow morning",
	})

	if _, err := eventInputFromForm(c); err == nil {
		t.Error("Expected error for malformed startTime")
	}
}

func TestEventUpdateFromFormPartial(t *testing.T) {
	c := multipartContext(t, map[string]string{
		"eventId": "64a000000000000000000001",
		"title":   "Renamed",
		"amount":  "250",
	})

	upd, err := eventUpdateFromForm(c)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if upd.EventID != "64a000000000000000000001" {
		t.Errorf("Expected event id to be set, got %q", upd.EventID)
	}
	if upd.Title == nil || *upd.Title != "Renamed" {
		t.Error("Expected title pointer to be set")
	}
	if upd.Amount == nil || *upd.Amount != 250 {
		t.Error("Expected amount pointer to be set")
	}
	if upd.Type != nil || upd.StartTime != nil || upd.IsActive != nil {
		t.Error("Absent fields must stay nil")
	}
}
