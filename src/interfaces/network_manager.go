package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for HTTP requests against the provider.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a single GET round trip to the specified URL with parameters.
	// Returns the response body as bytes or an error. No internal retries.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)
}
