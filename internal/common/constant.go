package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token
// on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is prepended to the token value in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a client-generated correlation id per request.
const RequestIDHeaderName = "X-Request-Id"
