package dto

import "time"

type LoginRequest struct {
	Name string `json:"name" binding:"required"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionDTO mirrors the session store's snapshot. IsLoading is true until
// hydration has completed; consumers must not treat a nil CurrentUser as
// "logged out" while it is set.
type SessionDTO struct {
	CurrentUser *UserDTO `json:"current_user,omitempty"`
	GeminiModel string   `json:"gemini_model"`
	HasToken    bool     `json:"has_token"`
	AIPrompt    string   `json:"ai_prompt,omitempty"`
	IsLoading   bool     `json:"is_loading"`
}

// SettingsUpdateRequest carries partial settings changes; nil fields are left
// untouched.
type SettingsUpdateRequest struct {
	GeminiToken *string `json:"gemini_token,omitempty"`
	GeminiModel *string `json:"gemini_model,omitempty"`
	AIPrompt    *string `json:"ai_prompt,omitempty"`
}
