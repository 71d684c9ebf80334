package google

// DefaultOAuthScopes are the Google OAuth scopes required for the scheduling
// assistant. These scopes are used consistently across the application for
// OAuth configurations.
//
// The scopes provide access to:
//   - Google Calendar: full access (events, free/busy, calendar list)
//   - OpenID Connect: user identity for multi-account token management
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scope
	"https://www.googleapis.com/auth/calendar",
}
