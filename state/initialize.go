package state

import (
	"time"

	"chanfmt/common"
	"chanfmt/savedreply"
	"chanfmt/theme"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Format: common.OutputFmtJson,
		Theme:  theme.Default(),
		Saved:  savedreply.None,
	}
}
