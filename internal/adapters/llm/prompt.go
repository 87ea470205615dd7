package llm

import (
	"google.golang.org/genai"

	"github.com/chatdesk/chatdesk/internal/domain"
)

// faqKnowledge is the static knowledge preamble. It is presented to the
// model as an initial scripted exchange: knowledge as a user turn, the
// acknowledgment below as the model's answer, before any real history.
const faqKnowledge = `
You are a helpful support agent for a small e-commerce store. Here's important information you should know:

SHIPPING POLICY:
- We ship worldwide via standard shipping (5-7 business days) and express shipping (2-3 business days)
- Standard shipping costs $5.99, express shipping costs $14.99
- Free shipping on orders over $50
- We ship to USA, Canada, UK, Australia, and most European countries
- Orders are processed within 1-2 business days

RETURN/REFUND POLICY:
- 30-day return policy from date of delivery
- Items must be in original condition with tags attached
- Refunds are processed within 5-7 business days after we receive the returned item
- Return shipping is free for defective or incorrect items
- For other returns, customer is responsible for return shipping costs

SUPPORT HOURS:
- Monday to Friday: 9:00 AM - 6:00 PM EST
- Saturday: 10:00 AM - 4:00 PM EST
- Sunday: Closed
- Email support: support@store.com
- Response time: Within 24 hours during business hours

GENERAL INFORMATION:
- We accept all major credit cards, PayPal, and Apple Pay
- Orders typically ship within 1-2 business days
- You can track your order using the tracking number sent via email
- For urgent inquiries, please call our support line during business hours

Answer questions clearly and concisely. If you don't know something specific, politely say so and offer to help them contact support.
`

const faqAcknowledgment = "I understand. I'm ready to help customers with their questions about shipping, returns, support hours, and other store-related inquiries."

// windowHistory keeps only the most recent n messages. Older turns are
// dropped outright; there is no summarization.
func windowHistory(history []*domain.Message, n int) []*domain.Message {
	if n > 0 && len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

// buildContents lays out the full prompt: the scripted FAQ exchange, the
// windowed history mapped to the model's role vocabulary, then the live
// user turn to answer.
func buildContents(history []*domain.Message, userText string, window int) []*genai.Content {
	recent := windowHistory(history, window)

	contents := make([]*genai.Content, 0, len(recent)+3)
	contents = append(contents,
		genai.NewContentFromText(faqKnowledge, genai.RoleUser),
		genai.NewContentFromText(faqAcknowledgment, genai.RoleModel),
	)

	for _, m := range recent {
		var role genai.Role = genai.RoleUser
		if m.Sender == domain.SenderAI {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	contents = append(contents, genai.NewContentFromText(userText, genai.RoleUser))
	return contents
}
