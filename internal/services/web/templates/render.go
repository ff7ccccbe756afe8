package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component adapts a node tree to the templ.Component contract used by the
// page renderers.
func Component(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}

// children renders the templ children attached to ctx in place.
// The children must be read before ClearChildren resets the shared slot.
func children(ctx context.Context) g.Node {
	component := templ.GetChildren(ctx)
	return templNode{ctx: templ.ClearChildren(ctx), component: component}
}

type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (n templNode) Render(w io.Writer) error {
	if n.component == nil {
		return nil
	}
	return n.component.Render(n.ctx, w)
}
