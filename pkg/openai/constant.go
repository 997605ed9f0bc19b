package openai

import "time"

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second
)

// Base URLs of OpenAI-compatible vendors.
const (
	BaseURLOpenAI     = "https://api.openai.com/v1"
	BaseURLDeepSeek   = "https://api.deepseek.com/v1"
	BaseURLQwen       = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	BaseURLOpenRouter = "https://openrouter.ai/api/v1"
)
