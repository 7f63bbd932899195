package notify

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/slack-go/slack"

	"github.com/warroom/warroom/internal/agents"
)

// SlackNotifier posts finished verdicts to a Slack channel.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlackNotifier creates a notifier posting to the given channel (ID or
// #name).
func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(botToken),
		channel: channel,
	}
}

// PostVerdict delivers the verdict to the configured channel.
func (n *SlackNotifier) PostVerdict(ctx context.Context, verdict *agents.JudgeVerdict, analyses map[string]agents.AgentAnalysis) error {
	message := FormatVerdict(verdict, analyses)
	_, ts, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(message, false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("failed to post verdict to %s: %w", n.channel, err)
	}
	log.Printf("Posted verdict to %s (ts=%s)", n.channel, ts)
	return nil
}

// FormatVerdict renders a verdict as a Slack message.
func FormatVerdict(verdict *agents.JudgeVerdict, analyses map[string]agents.AgentAnalysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(":rotating_light: *Root Cause Identified*\n\n*%s*\n", verdict.RootCauseHeadline))
	sb.WriteString(fmt.Sprintf("\n*Found By*\n%s\n", verdict.RootCauseAgent))
	sb.WriteString(fmt.Sprintf("\n*Causal Chain*\n%s\n", verdict.ScenariosLogic))
	sb.WriteString(fmt.Sprintf("\n*Remediation*\n%s\n", verdict.RemediationPlan))

	if len(analyses) > 0 {
		sb.WriteString("\n*Agent Reports*\n")
		names := make([]string, 0, len(analyses))
		for name := range analyses {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			a := analyses[name]
			sb.WriteString(fmt.Sprintf("%s *%s* (%s, confidence %.2f): %s\n",
				statusEmoji(a.Status), name, a.Status, a.ConfidenceScore, a.Hypothesis))
		}
	}

	if len(verdict.AgentAssessment) > 0 {
		sb.WriteString("\n*Judge Assessment*\n")
		names := make([]string, 0, len(verdict.AgentAssessment))
		for name := range verdict.AgentAssessment {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", name, verdict.AgentAssessment[name]))
		}
	}

	return sb.String()
}

func statusEmoji(status agents.AnalysisStatus) string {
	switch status {
	case agents.StatusCritical:
		return ":red_circle:"
	case agents.StatusWarning:
		return ":warning:"
	case agents.StatusHealthy:
		return ":white_check_mark:"
	default:
		return ":grey_question:"
	}
}
