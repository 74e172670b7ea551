package cli

import (
	"github.com/spf13/pflag"

	"github.com/alexanderramin/boardwalk/internal/auth"
)

// principalFlags registers --user and --org, defaulting to the configured
// identity.
func principalFlags(fs *pflag.FlagSet, p *auth.Principal, defaults auth.Principal) {
	fs.StringVar(&p.UserID, "user", defaults.UserID, "User ID (defaults to the configured user)")
	fs.StringVar(&p.OrgID, "org", defaults.OrgID, "Organization ID (defaults to the configured org)")
}
