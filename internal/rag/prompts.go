package rag

import (
	"fmt"
	"strings"
)

// formatHistory serializes a conversation as role-prefixed lines in
// chronological order.
func formatHistory(history []Message) string {
	lines := make([]string, len(history))
	for i, msg := range history {
		lines[i] = msg.Role + ": " + msg.Content
	}
	return strings.Join(lines, "\n")
}

func intentPrompt(history []Message) string {
	return fmt.Sprintf(`You are the "brain" of a legal chatbot. Analyze the following conversation history.
Your task is to determine two things:
1. **response_type**: Is the user's latest message a new, detailed legal question that needs a full, structured analysis, or is it a short, conversational follow-up to the previous topic? Answer 'structured' or 'conversational'.
2. **search_query**: Create an optimal Google search query to find relevant case laws for the user's *actual* topic of conversation. This query should be self-contained and include context from the history.

CONVERSATION HISTORY:
---
%s
---

JSON OUTPUT:
`, formatHistory(history))
}

func structuredPrompt(query, localContext, webContext string) string {
	return fmt.Sprintf(`You are "Legal Sahayak," an expert AI legal assistant in India.
A user has the following question: %q
Analyze the context and populate a JSON object that strictly follows the provided schema.

---
CONTEXT FROM INTERNAL DOCUMENTS: %s
---
LATEST WEB SEARCH RESULTS: %s
---
`, query, localContext, webContext)
}

func conversationalPrompt(query, localContext, webContext string) string {
	return fmt.Sprintf(`You are "Legal Sahayak," an expert AI legal assistant.
A user has asked a follow-up question: %q

Using the provided context from internal documents and web search results, provide a direct, conversational answer.
Do not use a structured format, lists, or bold headings. Just answer the question naturally.

---
CONTEXT:
%s
---
WEB SEARCH RESULTS:
%s
---

CONVERSATIONAL ANSWER:
`, query, localContext, webContext)
}

func summaryPrompt(history []Message) string {
	return fmt.Sprintf(`Please provide a concise summary of the following legal conversation.
Focus on the key questions asked by the user and the main points of the legal advice provided.

CONVERSATION:
---
%s
---

SUMMARY:
`, formatHistory(history))
}
