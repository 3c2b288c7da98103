// internal/models/chat.go
package models

// Intent is the closed set of question kinds the matcher can resolve.
type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentShopName        Intent = "shop_name"
	IntentWhatProducts    Intent = "what_products"
	IntentTimeQuery       Intent = "time_query"
	IntentPriceStats      Intent = "price_stats"
	IntentBestSellers     Intent = "best_sellers"
	IntentSuggestProducts Intent = "suggest_products"
	IntentFallback        Intent = "fallback"
)

// Card is a product card attached to a reply.
type Card struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle"`
	Image    string  `json:"image"`
	URL      string  `json:"url"`
}

// Reply is the outcome of handling one chat message.
type Reply struct {
	Text  string `json:"reply"`
	Cards []Card `json:"cards,omitempty"`
}

// ChatRequest is the inbound body of POST /api/ai/chat.
type ChatRequest struct {
	Message string `json:"message"`
}
