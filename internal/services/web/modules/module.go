// Package modules defines web module registry helpers.
package modules

import (
	"log"

	module "github.com/builld/web/internal/services/web/module"
	"github.com/builld/web/internal/services/web/modules/contact"
	"github.com/builld/web/internal/services/web/modules/landing"
	"github.com/builld/web/internal/services/web/platform/publichandler"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the collaborators required to compose the web module
// registry. Each field is typed as the narrow interface defined by the
// consuming module.
type Dependencies struct {
	// Content supplies landing copy; nil renders the built-in defaults.
	Content landing.ContentSource
	// Submitter delivers contact submissions.
	Submitter contact.Submitter
	// Base is the shared page handler base carrying the layout shell.
	Base   publichandler.Base
	Logger *log.Logger
}
