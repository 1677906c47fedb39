package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers reminders to an external channel.
type Notifier interface {
	Notify(reminders []Reminder) error
}

// slackNotifier posts reminders to a Slack incoming webhook.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Notifier that posts to webhookURL.
func NewSlackNotifier(webhookURL string) Notifier {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify posts reminders as a single message. It makes no request when
// there is nothing to send.
func (s *slackNotifier) Notify(reminders []Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	body, err := json.Marshal(buildSlackMessage(reminders))
	if err != nil {
		return fmt.Errorf("marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func buildSlackMessage(reminders []Reminder) slackMessage {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "Smart Task Manager Reminders"},
		},
	}
	for i, r := range reminders {
		if i > 0 {
			blocks = append(blocks, slackBlock{Type: "divider"})
		}
		text := fmt.Sprintf("%s *%s* %s\n_due %s_",
			kindEmoji(r.Kind),
			r.Heading,
			r.Message,
			r.DueDate.UTC().Format("2006-01-02 15:04 UTC"),
		)
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: text},
		})
	}
	return slackMessage{Blocks: blocks}
}

func kindEmoji(kind ReminderKind) string {
	switch kind {
	case KindOverdue:
		return "⚠️"
	case KindUrgent:
		return "\U0001f514"
	case KindReminder:
		return "\U0001f4c5"
	default:
		return "❓"
	}
}
