package common

const (
	// TokenStorageKey is the local storage key holding the access token.
	TokenStorageKey = "token"

	// AuthorizationHeaderName carries the bearer token on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only authorization scheme the API accepts.
	BearerScheme = "Bearer"
)
