package observability

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSlackNotifier_NoReminders(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	if err := n.Notify(nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := n.Notify([]Reminder{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if called {
		t.Fatal("expected no HTTP request for empty reminders")
	}
}

func TestSlackNotifier_SendsReminders(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	due := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	reminders := []Reminder{
		{TaskID: 4, Title: "Late", Kind: KindOverdue, Heading: "Overdue Task!", Message: `"Late" was due 2 days ago`, DueDate: due.Add(-49 * time.Hour)},
		{TaskID: 3, Title: "Soon", Kind: KindUrgent, Heading: "Task Due Soon!", Message: `"Soon" is due in 45 minutes`, DueDate: due},
	}
	if err := NewSlackNotifier(srv.URL).Notify(reminders); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", receivedContentType)
	}
	var msg slackMessage
	if err := json.Unmarshal(receivedBody, &msg); err != nil {
		t.Fatalf("unmarshaling body: %v", err)
	}

	// header, section, divider, section
	if len(msg.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(msg.Blocks))
	}
	if msg.Blocks[0].Type != "header" || msg.Blocks[0].Text.Text != "Smart Task Manager Reminders" {
		t.Errorf("header block = %+v", msg.Blocks[0])
	}
	if msg.Blocks[2].Type != "divider" {
		t.Errorf("expected divider, got %s", msg.Blocks[2].Type)
	}
	section := msg.Blocks[3].Text
	if section.Type != "mrkdwn" || !strings.Contains(section.Text, `"Soon" is due in 45 minutes`) {
		t.Errorf("section = %+v", section)
	}
	if !strings.Contains(section.Text, "2025-03-10 13:00 UTC") {
		t.Errorf("section should carry the due date: %q", section.Text)
	}
}

func TestSlackNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewSlackNotifier(srv.URL).Notify([]Reminder{{TaskID: 1, Kind: KindReminder}})
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestSlackNotifier_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if err := NewSlackNotifier(url).Notify([]Reminder{{TaskID: 1}}); err == nil {
		t.Error("expected error for unreachable webhook")
	}
}
