//go:build js && wasm

package browser

import (
	"syscall/js"

	"github.com/builld/web/internal/site/scroll"
	"github.com/builld/web/internal/site/section"
)

// viewport measures and scrolls section roots in the live document.
type viewport struct {
	doc js.Value
	win js.Value
}

func (v viewport) Height() float64 {
	return v.win.Get("innerHeight").Float()
}

func (v viewport) Measure(s section.Section) (scroll.Rect, bool) {
	el := v.doc.Call("getElementById", s.ElementID())
	if !el.Truthy() {
		return scroll.Rect{}, false
	}
	box := el.Call("getBoundingClientRect")
	return scroll.Rect{Top: box.Get("top").Float(), Bottom: box.Get("bottom").Float()}, true
}

func (v viewport) ScrollIntoView(s section.Section) bool {
	el := v.doc.Call("getElementById", s.ElementID())
	if !el.Truthy() {
		return false
	}
	el.Call("scrollIntoView", map[string]any{"behavior": "smooth", "block": "start"})
	return true
}

func attr(el js.Value, name string) (string, bool) {
	if !el.Truthy() {
		return "", false
	}
	value := el.Call("getAttribute", name)
	if value.IsNull() {
		return "", false
	}
	return value.String(), true
}

func setAttr(el js.Value, name, value string) {
	if el.Truthy() {
		el.Call("setAttribute", name, value)
	}
}

func removeAttr(el js.Value, name string) {
	if el.Truthy() {
		el.Call("removeAttribute", name)
	}
}

func setHidden(el js.Value, hidden bool) {
	if !el.Truthy() {
		return
	}
	el.Set("hidden", hidden)
}

func setText(el js.Value, text string) {
	if el.Truthy() {
		el.Set("textContent", text)
	}
}

func query(root js.Value, selector string) js.Value {
	if !root.Truthy() {
		return js.Null()
	}
	return root.Call("querySelector", selector)
}

func queryAll(root js.Value, selector string) []js.Value {
	if !root.Truthy() {
		return nil
	}
	list := root.Call("querySelectorAll", selector)
	out := make([]js.Value, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, list.Index(i))
	}
	return out
}

// closest walks up from target to the first element matching selector. Text
// nodes and the document itself return null.
func closest(target js.Value, selector string) js.Value {
	if !target.Truthy() || target.Get("closest").Type() != js.TypeFunction {
		return js.Null()
	}
	return target.Call("closest", selector)
}

func element(doc js.Value, tag, class string) js.Value {
	el := doc.Call("createElement", tag)
	if class != "" {
		el.Set("className", class)
	}
	return el
}
