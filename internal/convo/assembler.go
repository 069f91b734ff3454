package convo

import (
	"fmt"
	"strings"

	"github.com/saanpro/saanbot/internal/knowledge"
	"github.com/saanpro/saanbot/internal/llm"
	"github.com/saanpro/saanbot/internal/session"
)

// PurchaseURL is the direct store link offered when a question signals
// buying intent.
const PurchaseURL = "https://www.saanpro.com/store"

// buyingIntentKeywords trigger the purchase-link instruction. Matching
// is a case-insensitive substring check.
var buyingIntentKeywords = []string{
	"buy",
	"purchase",
	"quote",
	"get this",
	"interested in",
	"need this",
	"want this",
	"price of",
	"how much",
	"cost of",
}

// notFoundReply is the scripted deflection for questions the knowledge
// base cannot answer.
const notFoundReply = `I'm sorry, I couldn't find that specific detail in my current data. For more information, please contact Srinivas Perur Varda at +91 9342659932 or visit www.saanpro.com.`

// HasBuyingIntent reports whether the question contains any keyword from
// the fixed buying-intent set.
func HasBuyingIntent(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range buyingIntentKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Assemble builds the system prompt and ordered message list for one
// turn: the system message carries the rendered knowledge blocks plus
// behavioral instructions, followed by the session's prior turns in
// chronological order, followed by the new question. Pure function of
// its inputs; performs no I/O.
func Assemble(blocks knowledge.Blocks, history []session.Turn, question string) (string, []llm.Message) {
	var b strings.Builder

	b.WriteString("You are SAANBOT, a helpful and professional AI assistant working for SAAN Protocol Experts.\n")

	fmt.Fprintf(&b, "\nCompany Profile:\n%s\n", blocks.Company)
	fmt.Fprintf(&b, "\nContact:\n%s\n", blocks.Contact)
	fmt.Fprintf(&b, "\nAvailable Services:\n%s\n", blocks.Services)
	fmt.Fprintf(&b, "\nProducts:\n%s\n", blocks.Products)
	fmt.Fprintf(&b, "\nAwards:\n%s\n", blocks.Awards)
	fmt.Fprintf(&b, "\nBrands:\n%s\n", blocks.Brands)

	b.WriteString("\nGuidelines:\n")
	b.WriteString("- Answer the user's question as clearly and helpfully as possible using only the data above.\n")
	b.WriteString("- If the visitor has not shared their name, phone number, or email address, politely ask for the missing details so the team can follow up.\n")
	b.WriteString("- Never mention or recommend third-party retailers.\n")
	fmt.Fprintf(&b, "- If the answer cannot be found in the provided data, politely say: %q\n", notFoundReply)
	if HasBuyingIntent(question) {
		fmt.Fprintf(&b, "- The visitor seems ready to make a purchase. Share the direct purchase link %s in your reply.\n", PurchaseURL)
	}

	systemPrompt := b.String()

	messages := make([]llm.Message, 0, 2*len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: turn.Question},
			llm.Message{Role: llm.RoleAssistant, Content: turn.Answer})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	return systemPrompt, messages
}
