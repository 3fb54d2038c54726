package common

const (
	// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
	AccessTokenHeaderName = "access_token"

	// APIKeyHeaderName is the gRPC metadata key carrying the public API key
	// every client must present.
	APIKeyHeaderName = "api_key"
)
