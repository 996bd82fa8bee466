// Package http provides an HTTP client for fetching remote cover art.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Response size limits
//
// # Basic Usage
//
//	client := http.NewClient()
//	if http.IsURL(settings.CoverArtPath) {
//	    data, err := client.Get(ctx, settings.CoverArtPath)
//	}
package http
