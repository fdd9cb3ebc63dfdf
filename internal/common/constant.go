package common

// AccessTokenHeaderName is the gRPC metadata key (and websocket query
// parameter) used to carry the caller's access token.
const AccessTokenHeaderName = "access_token"

// WebhookAPIKeyHeaderName carries the shared key of the identity provider
// on webhook deliveries.
const WebhookAPIKeyHeaderName = "X-API-Key"
