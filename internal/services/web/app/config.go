package app

import (
	module "github.com/builld/web/internal/services/web/module"
	"github.com/builld/web/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	PageModules         []module.Module
	APIModules          []module.Module
	CORSOrigin          string
	RequestSchemePolicy requestmeta.SchemePolicy
}
