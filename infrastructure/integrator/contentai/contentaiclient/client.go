package contentaiclient

import (
	"net/http"
	"time"

	"github.com/coachos/coach-os-api/internal/config"
)

type Client interface {
	GenerateBlueprint(description string) (*BlueprintResponse, error)
	GenerateContentPlan(niche string) ([]PostResponse, error)
}

type ContentAIClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &ContentAIClient{
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
		config: cfg,
	}
}
