package domain

import "time"

type ConnectionID string
type ModelID string
type ProviderID string

const (
	ProviderOpenAI ProviderID = "openai"
	ProviderGroq   ProviderID = "groq"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Timestamp = time.Time
