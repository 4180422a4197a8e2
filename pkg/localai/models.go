package localai

// SamplingConfig holds the generation parameters sent with every
// completion request. The zero value is not useful, construct via
// DefaultSampling and override fields as needed.
type SamplingConfig struct {
	TopP             float64  `json:"top_p"`
	Temperature      float64  `json:"temperature"`
	Stop             []string `json:"stop"`
	MaxTokens        int      `json:"max_tokens"`
	PresencePenalty  float64  `json:"presence_penalty"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
}

type completionRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
	// Sampling parameters are always sent, zero values included
	TopP             float64  `json:"top_p"`
	Temperature      float64  `json:"temperature"`
	Stop             []string `json:"stop"`
	MaxTokens        int      `json:"max_tokens"`
	PresencePenalty  float64  `json:"presence_penalty"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
}

// completionChunk is one decoded line of the event stream. Every field
// is optional, a chunk without choices or without text is simply not
// worth yielding.
type completionChunk struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Text string `json:"text"`
}
