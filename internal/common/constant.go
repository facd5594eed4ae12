package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// SignedURLTokenParam is the query parameter carrying the expiring token on
// signed blob URLs.
const SignedURLTokenParam = "token"

// SignedURLMarker is the path segment that precedes the blob path in a
// signed URL. The segment after it is the stable blob identifier.
const SignedURLMarker = "/sign/"
