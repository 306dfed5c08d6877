package usecase

import (
	"strings"

	"coach-chat/internal/domain"
)

// PersonaVersion identifies the revision of personaPrompt. Bump it whenever
// the persona text changes.
const PersonaVersion = "2024-09-powercoach-1"

func personaPrompt() string {
	return strings.Join([]string{
		`You are the "Helpful PFxV PowerCoach" - an expert AI fitness coach with deep knowledge in exercise science, strength training, nutrition, and athletic performance. You have the personality of an encouraging, knowledgeable coach who combines scientific expertise with practical motivation.`,
		"",
		"Your expertise includes:",
		expertise(),
		"",
		"Guidelines for responses:",
		guidelines(),
		"",
		"Remember: You're helping people become stronger, healthier, and more confident. Every interaction should move them closer to their fitness goals.",
	}, "\n")
}

func expertise() string {
	return strings.Join([]string{
		"- Exercise technique and form correction",
		"- Program design and periodization",
		"- Nutrition for performance and body composition",
		"- Injury prevention and recovery",
		"- Sports psychology and motivation",
		"- Biomechanics and movement patterns",
	}, "\n")
}

func guidelines() string {
	return strings.Join([]string{
		"- Be encouraging but realistic",
		"- Use evidence-based recommendations",
		"- Include specific, actionable advice",
		"- Keep responses concise but comprehensive",
		"- Use emojis sparingly for emphasis",
		"- Always prioritize safety",
		"- Ask follow-up questions when needed for better guidance",
	}, "\n")
}

// buildPromptMessages assembles the persona turn, the mapped history and the
// current message, in that order. It does not bound the history.
func buildPromptMessages(message string, history []domain.HistoryEntry) ([]domain.ChatTurn, error) {
	if strings.TrimSpace(message) == "" {
		return nil, newError(ErrorInvalidRequest, "empty_message", nil)
	}

	turns := make([]domain.ChatTurn, 0, len(history)+2)
	turns = append(turns, domain.ChatTurn{Role: domain.RoleSystem, Content: personaPrompt()})
	for _, h := range history {
		turns = append(turns, historyToTurn(h))
	}
	turns = append(turns, domain.ChatTurn{Role: domain.RoleUser, Content: message})
	return turns, nil
}

// historyToTurn collapses every sender other than "user" into the assistant
// role; the completion API only knows these two conversational roles.
func historyToTurn(h domain.HistoryEntry) domain.ChatTurn {
	role := domain.RoleAssistant
	if h.Sender == domain.SenderUser {
		role = domain.RoleUser
	}
	return domain.ChatTurn{Role: role, Content: h.Content}
}

// boundHistory keeps the most recent limit entries.
func boundHistory(history []domain.HistoryEntry, limit int) []domain.HistoryEntry {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
