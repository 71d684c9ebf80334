package google

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// accountNamePattern restricts account names to filesystem-safe identifiers.
var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName rejects account names that would be unsafe as part of
// a token file name.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphens and underscores are allowed", account)
	}
	return nil
}

// getTokenFilePath maps an account name to its token file on disk.
func getTokenFilePath(account string) string {
	cacheDir := filepath.Join(userCacheDir(), "teams-mcp")
	return filepath.Join(cacheDir, "google-"+account+".token")
}

// GetAuthenticationErrorMessage returns a user-facing message explaining how
// to authenticate the given account.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("no Google OAuth token found for account %q. "+
		"Run 'teams-mcp auth --account %s' to authorize calendar access via the Google OAuth flow", account, account)
}
