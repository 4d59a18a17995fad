package gemini

import (
	"sync"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

// Config configures a Generator.
type Config struct {
	APIKeys []string
	Model   string
	// BaseURL overrides the Gemini API endpoint.
	BaseURL string
}

type implGenerator struct {
	apiKeys []string
	model   string
	baseURL string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// New creates a Generator that rotates through the supplied Gemini API keys
// when one of them hits its quota.
func New(cfg Config, log logger.Logger) Generator {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGenerator{
		apiKeys: cfg.APIKeys,
		model:   model,
		baseURL: cfg.BaseURL,
		logger:  log,
	}
}
