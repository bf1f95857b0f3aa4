package llm

import (
	"fmt"
	"strings"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
)

// BuildSupportPrompt grounds the assistant on the company FAQ list so it only
// answers from what the admin configured.
func BuildSupportPrompt(companyName, greeting string, faqs []chatbot.FaqEntry) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are the website support assistant for %s, a textile export company.\n", companyName))
	if greeting != "" {
		sb.WriteString(fmt.Sprintf("Your greeting to visitors is: %q\n", greeting))
	}
	sb.WriteString("\n")

	if len(faqs) > 0 {
		sb.WriteString("=== FREQUENTLY ASKED QUESTIONS ===\n")
		for _, faq := range faqs {
			if faq.Question == "" && faq.Answer == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("Q: %s\nA: %s\n\n", faq.Question, faq.Answer))
		}
	}

	sb.WriteString("Instructions:\n")
	sb.WriteString("- Answer briefly and professionally, in at most three sentences\n")
	sb.WriteString("- Only use the information above\n")
	sb.WriteString("- If the answer is not covered, ask the visitor to use the contact form\n")
	sb.WriteString("- Never invent prices, delivery dates or certifications\n")

	return sb.String()
}
