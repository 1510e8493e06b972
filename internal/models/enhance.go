package models

// EnhanceRequest is the body the enhancement worker posts back.
type EnhanceRequest struct {
	TaskID        *string `json:"taskId"`
	EnhancedTitle *string `json:"enhancedTitle"`
}

type EnhanceResponse struct {
	OK bool `json:"ok"`
}
