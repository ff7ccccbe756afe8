package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/builld/web/internal/services/web/module"
	"github.com/builld/web/internal/services/web/platform/httpx"
	"github.com/builld/web/internal/services/web/platform/requestmeta"
	"github.com/builld/web/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	// PageModules serve HTML and form posts from the site origin.
	PageModules []module.Module
	// APIModules serve JSON under /api/ to any allowed origin.
	APIModules []module.Module
	// CORSOrigin is the Access-Control-Allow-Origin value for API modules.
	// Empty allows every origin.
	CORSOrigin          string
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	pageWrap := requireSameOriginMutation(input.RequestSchemePolicy)
	for _, feature := range input.PageModules {
		if feature == nil {
			return nil, fmt.Errorf("page module is nil")
		}
		if err := mountPageModule(root, feature, seen, pageWrap); err != nil {
			return nil, err
		}
	}

	apiWrap := httpx.CORS(input.CORSOrigin, []string{http.MethodPost, http.MethodOptions}, []string{"Content-Type"})
	for _, feature := range input.APIModules {
		if feature == nil {
			return nil, fmt.Errorf("api module is nil")
		}
		if err := mountAPIModule(root, feature, seen, apiWrap); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if root == nil || feature == nil {
		return nil
	}
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

// mountWithAlias registers prefix and its slashless form so "/contact" reaches
// the module mounted at "/contact/" without a redirect.
func mountWithAlias(root *http.ServeMux, feature module.Module, mount module.Mount, prefix string, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	if alias := slashlessPrefixAlias(prefix); alias != "" {
		if err := mountModule(root, feature, mount, alias, seen, wrap); err != nil {
			return err
		}
	}
	return nil
}

func mountPageModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if isAPIPrefix(prefix) {
		return fmt.Errorf("module %q has api prefix %q in page group", feature.ID(), prefix)
	}
	return mountWithAlias(root, feature, mount, prefix, seen, wrap)
}

func mountAPIModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !isAPIPrefix(prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.APIPrefix, prefix)
	}
	return mountWithAlias(root, feature, mount, prefix, seen, wrap)
}

func isAPIPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.APIPrefix)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	if feature == nil {
		return module.Mount{}, "", fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func slashlessPrefixAlias(prefix string) string {
	if prefix == "/" || !strings.HasSuffix(prefix, "/") {
		return ""
	}
	return strings.TrimSuffix(prefix, "/")
}

// requireSameOriginMutation rejects form posts that name another origin in
// their Origin or Referer header.
func requireSameOriginMutation(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isMutationMethod(r) && requestmeta.IsCrossOrigin(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
