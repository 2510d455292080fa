package llm

func (e *endpoint) Model() string   { return e.model }
func (e *endpoint) APIKey() string  { return e.apiKey }
func (e *endpoint) BaseURL() string { return e.baseURL }

var (
	OpenAIEndpoint = openAIEndpoint
	AzureBaseURL   = azureBaseURL
	MaxTokens      = maxTokens
)
