package dto

type CreateLeadRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone" validate:"required"`
	Consent       bool   `json:"consent" validate:"required"`
	SourceMessage string `json:"source_message,omitempty"`
}

type LeadResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}
