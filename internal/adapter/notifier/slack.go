package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/corpgraph/kindred/internal/core/ports"
)

type SlackNotifier struct {
	botToken    string
	channel     string
	mentionTeam string
	httpClient  *http.Client
}

func NewSlackNotifier(botToken, channel, mentionTeam string) *SlackNotifier {
	return &SlackNotifier{
		botToken:    botToken,
		channel:     channel,
		mentionTeam: mentionTeam,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyHighConfidenceConnection sends a formatted alert for a newly scored
// high-confidence officer connection.
func (s *SlackNotifier) NotifyHighConfidenceConnection(conn ports.ConnectionNotification) error {
	blocks := s.buildConnectionBlocks(conn)

	payload := SlackMessage{
		Channel: s.channel,
		Blocks:  blocks,
		Text:    fmt.Sprintf("🔗 High-confidence family connection: %s ~ %s", conn.OfficerA, conn.OfficerB),
	}

	return s.sendMessage(payload)
}

// Build Slack message blocks for a scored connection
func (s *SlackNotifier) buildConnectionBlocks(conn ports.ConnectionNotification) []SlackBlock {
	blocks := []SlackBlock{
		{
			Type: "header",
			Text: &SlackText{
				Type: "plain_text",
				Text: "🔗 High-Confidence Family Connection",
			},
		},
		{
			Type: "section",
			Fields: []SlackText{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Officer A*\n%s", conn.OfficerA)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Officer B*\n%s", conn.OfficerB)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Company*\n%s", conn.CompanyNumber)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Score*\n%.0f (%s)", conn.TotalScore, conn.Confidence)},
			},
		},
		{
			Type: "divider",
		},
	}

	if len(conn.Reasons) > 0 {
		reasonsText := "*Evidence*\n"
		for _, reason := range conn.Reasons {
			reasonsText += fmt.Sprintf("• %s\n", reason)
		}
		blocks = append(blocks, SlackBlock{
			Type: "section",
			Text: &SlackText{
				Type: "mrkdwn",
				Text: reasonsText,
			},
		})
	}

	actionsText := fmt.Sprintf("*Recommended Actions*\n✓ Review filing history for %s\n✓ Check related-party transactions\n✓ Verify registered address currency", conn.CompanyNumber)
	if s.mentionTeam != "" {
		actionsText += fmt.Sprintf("\n\ncc: %s", s.mentionTeam)
	}
	blocks = append(blocks,
		SlackBlock{Type: "divider"},
		SlackBlock{
			Type: "section",
			Text: &SlackText{
				Type: "mrkdwn",
				Text: actionsText,
			},
		},
		SlackBlock{
			Type: "context",
			Elements: []SlackText{
				{
					Type: "mrkdwn",
					Text: fmt.Sprintf("Confidence: *%s* | Signals: *%d*", strings.ToUpper(conn.Confidence), len(conn.Reasons)),
				},
			},
		},
	)

	return blocks
}

// Send message to Slack
func (s *SlackNotifier) sendMessage(msg SlackMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	req, err := http.NewRequest("POST", "https://slack.com/api/chat.postMessage", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.botToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API returned status %d", resp.StatusCode)
	}

	return nil
}

// Slack API structures

type SlackMessage struct {
	Channel string       `json:"channel"`
	Blocks  []SlackBlock `json:"blocks"`
	Text    string       `json:"text"` // Fallback text
}

type SlackBlock struct {
	Type     string      `json:"type"`
	Text     *SlackText  `json:"text,omitempty"`
	Fields   []SlackText `json:"fields,omitempty"`
	Elements []SlackText `json:"elements,omitempty"`
}

type SlackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
