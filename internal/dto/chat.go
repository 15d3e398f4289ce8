package dto

type ChatHistoryMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

type ChatRequest struct {
	SessionID string               `json:"session_id"`
	Message   string               `json:"message" validate:"required"`
	History   []ChatHistoryMessage `json:"history,omitempty"`
}

type ChatResponse struct {
	Answer              string `json:"answer"`
	FollowUp            string `json:"follow_up,omitempty"`
	Score               int    `json:"score"`
	Source              string `json:"source"`
	Emotion             string `json:"emotion,omitempty"`
	Costume             string `json:"costume,omitempty"`
	ScrollTarget        string `json:"scroll_target,omitempty"`
	SuggestConfigurator bool   `json:"suggest_configurator,omitempty"`
	ShowLeadPrompt      bool   `json:"show_lead_prompt,omitempty"`
}
