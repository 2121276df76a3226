package api

import (
	"net/http"
	"time"

	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

const (
	// DefaultLocalURL is the local development backend.
	DefaultLocalURL = "http://localhost:8000"

	// ProductionURL is the deployed backend used when no local server
	// is reachable.
	ProductionURL = "https://9j03m9ro53.execute-api.ap-south-1.amazonaws.com/dev"
)

// ResolveBaseURL probes the local development server's health endpoint
// and returns its URL when it answers; otherwise the production URL.
// Called once at startup.
func ResolveBaseURL(httpClient *http.Client) string {
	return resolveBaseURL(httpClient, DefaultLocalURL, ProductionURL)
}

func resolveBaseURL(httpClient *http.Client, localURL, productionURL string) string {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Second}
	}

	resp, err := httpClient.Get(localURL + "/health")
	if err != nil {
		logger.Debug("Local backend unreachable, using production: %v", err)
		return productionURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("Local backend unhealthy (status %d), using production", resp.StatusCode)
		return productionURL
	}

	logger.Info("Using local backend at %s", localURL)
	return localURL
}
