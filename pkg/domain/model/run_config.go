package model

import "encoding/json"

// RunConfig is the per-request runtime configuration supplied by the caller
type RunConfig struct {
	CustomModelName string             `json:"customModelName,omitempty"`
	ModelConfig     *CustomModelConfig `json:"modelConfig,omitempty"`
	AssistantID     string             `json:"assistant_id,omitempty"`
	Documents       []ContextDocument  `json:"documents,omitempty"`
	SystemPrompt    string             `json:"systemPrompt,omitempty"`
	SupabaseSession *Session           `json:"supabase_session,omitempty"`
}

// CustomModelConfig holds user-selected generation settings for a model
type CustomModelConfig struct {
	Provider         string     `json:"provider,omitempty"`
	TemperatureRange FloatRange `json:"temperatureRange"`
	MaxTokens        IntRange   `json:"maxTokens"`
}

// FloatRange is a bounded setting with its current value
type FloatRange struct {
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Default float64  `json:"default"`
	Current *float64 `json:"current,omitempty"`
}

// IntRange is a bounded setting with its current value
type IntRange struct {
	Min     int  `json:"min"`
	Max     int  `json:"max"`
	Default int  `json:"default"`
	Current *int `json:"current,omitempty"`
}

// Session is an authentication session issued by Supabase
type Session struct {
	AccessToken  string          `json:"access_token" masq:"secret"`
	RefreshToken string          `json:"refresh_token,omitempty" masq:"secret"`
	ExpiresAt    int64           `json:"expires_at,omitempty"`
	TokenType    string          `json:"token_type,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

// User is an authenticated end user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
