package rag

import "encoding/json"

// Role of a conversation message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation. History is caller-owned and passed
// whole on every request; the service keeps no state between turns.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseType selects the shape of the generated answer.
type ResponseType string

const (
	ResponseStructured     ResponseType = "structured"
	ResponseConversational ResponseType = "conversational"
)

// Intent is the derived classification of a conversation turn: the shape the
// answer should take and a self-contained reformulated search query.
type Intent struct {
	ResponseType ResponseType `json:"response_type"`
	SearchQuery  string       `json:"search_query"`
}

// ActArticle names a statute or article and explains its relevance.
type ActArticle struct {
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
}

// CaseLaw names a precedent and the principle it established.
type CaseLaw struct {
	Name      string `json:"name"`
	Principle string `json:"principle"`
}

// StructuredResponse is the four-field legal brief. Fields may be empty when
// the model provides nothing for them; absence is valid, not an error.
type StructuredResponse struct {
	SummaryOfRights         string       `json:"summaryOfRights"`
	RelevantActsAndArticles []ActArticle `json:"relevantActsAndArticles"`
	SimilarCaseLaw          []CaseLaw    `json:"similarCaseLaw"`
	NextSteps               []string     `json:"nextSteps"`
}

// ConversationalResponse wraps a free-text answer.
type ConversationalResponse struct {
	ResponseText string `json:"response_text"`
}

// Response is the tagged union returned for a turn. Exactly one variant is
// set, selected by Type.
type Response struct {
	Type           ResponseType
	Structured     *StructuredResponse
	Conversational *ConversationalResponse
}

// MarshalJSON emits only the active variant, matching the wire shape callers
// expect: either the legal-brief object or {"response_text": ...}.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Type == ResponseStructured && r.Structured != nil {
		return json.Marshal(r.Structured)
	}
	return json.Marshal(r.Conversational)
}
