//go:build js && wasm

package browser

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"sync"
	"syscall/js"
	"time"

	"github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/site/contactform"
	"github.com/builld/web/internal/site/schedule"
	"github.com/builld/web/internal/site/scroll"
	"github.com/builld/web/internal/site/section"
	"github.com/builld/web/internal/site/splash"
	"github.com/builld/web/internal/site/stepper"
	"github.com/builld/web/internal/site/toast"
)

const submitTimeout = 15 * time.Second

var formFields = []contact.Field{
	contact.FieldEmail,
	contact.FieldPhoneNumber,
	contact.FieldBusinessStage,
	contact.FieldChallenge,
}

// App binds the landing page state machines to one document.
type App struct {
	doc   js.Value
	win   js.Value
	clock schedule.Scheduler

	mu        sync.Mutex
	funcs     []js.Func
	observers []js.Value
	closers   []func()
	failed    bool
}

// New returns an app bound to the global document.
func New() *App {
	win := js.Global()
	return &App{doc: win.Get("document"), win: win, clock: schedule.Clock{}}
}

// Run mounts every component. Missing elements disable the component that
// needs them.
func (a *App) Run(ctx context.Context) {
	defer a.recoverPanic()

	notifier := a.mountToasts()
	orchestrator := a.mountScroll()
	a.mountStepper()
	a.mountForm(ctx, notifier)
	a.mountSplash(orchestrator)
	a.doc.Get("body").Get("classList").Call("add", "runtime-ready")
}

// Close stops every timer, observer and listener.
func (a *App) Close() {
	a.mu.Lock()
	closers := a.closers
	observers := a.observers
	funcs := a.funcs
	a.closers, a.observers, a.funcs = nil, nil, nil
	a.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	for _, observer := range observers {
		observer.Call("disconnect")
	}
	for _, fn := range funcs {
		fn.Release()
	}
}

func (a *App) onClose(fn func()) {
	a.mu.Lock()
	a.closers = append(a.closers, fn)
	a.mu.Unlock()
}

func (a *App) listen(target js.Value, event string, fn func(ev js.Value)) {
	if !target.Truthy() {
		return
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer a.recoverPanic()
		ev := js.Null()
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	a.mu.Lock()
	a.funcs = append(a.funcs, cb)
	a.mu.Unlock()
	target.Call("addEventListener", event, cb)
}

// observe reports threshold crossings of el through an IntersectionObserver.
func (a *App) observe(el js.Value, threshold float64, fn func(inView bool)) {
	ctor := a.win.Get("IntersectionObserver")
	if !el.Truthy() || !ctor.Truthy() {
		return
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer a.recoverPanic()
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			fn(entry.Get("isIntersecting").Bool() && entry.Get("intersectionRatio").Float() >= threshold)
		}
		return nil
	})
	observer := ctor.New(cb, map[string]any{"threshold": []any{0, threshold}})
	observer.Call("observe", el)
	a.mu.Lock()
	a.funcs = append(a.funcs, cb)
	a.observers = append(a.observers, observer)
	a.mu.Unlock()
}

// guard runs fn with panic recovery; timer callbacks fire on their own
// goroutines and never pass through an event listener.
func guard[T any](a *App, fn func(T)) func(T) {
	return func(v T) {
		defer a.recoverPanic()
		fn(v)
	}
}

func (a *App) recoverPanic() {
	recovered := recover()
	if recovered == nil {
		return
	}
	log.Printf("site runtime panic: %v", recovered)
	a.showErrorScreen()
}

func (a *App) showErrorScreen() {
	a.mu.Lock()
	if a.failed {
		a.mu.Unlock()
		return
	}
	a.failed = true
	a.mu.Unlock()

	body := a.doc.Get("body")
	body.Set("innerHTML", ErrorScreenHTML)
	a.listen(query(body, "[data-reload]"), "click", func(js.Value) {
		a.win.Get("location").Call("reload")
	})
}

func (a *App) byID(id string) js.Value {
	return a.doc.Call("getElementById", id)
}

func (a *App) mountToasts() *toast.Notifier {
	region := a.byID("toast-region")
	var current uint64
	notifier := toast.NewNotifier(a.clock, guard(a, func(t toast.Toast) {
		current = a.renderToast(region, t, current)
	}))
	a.onClose(notifier.Close)

	a.listen(region, "mouseenter", func(js.Value) { notifier.PointerEnter() })
	a.listen(region, "mouseleave", func(js.Value) { notifier.PointerLeave() })
	a.listen(region, "click", func(ev js.Value) {
		if closest(ev.Get("target"), "[data-toast-close]").Truthy() {
			notifier.Hide()
		}
	})

	// A server-rendered notice hands over to the notifier so it gets the same
	// countdown and hover behavior.
	if seeded := query(region, "[data-toast-type]"); seeded.Truthy() {
		kind, _ := attr(seeded, "data-toast-type")
		position, _ := attr(region, "data-toast-position")
		duration, _ := attr(seeded, "data-toast-duration")
		message := query(seeded, ".toast-message")
		var description string
		if node := query(seeded, ".toast-description"); node.Truthy() {
			description = node.Get("textContent").String()
		}
		opts := SeededToastOptions(kind, position, duration, description)
		if message.Truthy() {
			notifier.Show(message.Get("textContent").String(), opts)
		}
	}
	return notifier
}

// renderToast draws t and returns the id of the toast now on screen.
func (a *App) renderToast(region js.Value, t toast.Toast, shown uint64) uint64 {
	if !region.Truthy() {
		return shown
	}
	if !t.Visible {
		region.Set("innerHTML", "")
		return 0
	}
	region.Set("className", ToastRegionClass(t.Position))
	node := query(region, "[data-toast-type]")
	if t.ID != shown || !node.Truthy() {
		region.Set("innerHTML", "")
		node = a.buildToast(t)
		region.Call("appendChild", node)
	}
	node.Set("className", ToastClass(t))

	bar := query(node, "[data-toast-progress]")
	if bar.Truthy() {
		style := bar.Get("style")
		style.Set("transition", "none")
		style.Set("width", ProgressWidth(t.Progress))
		if !t.Paused {
			// Reading layout commits the start width before the transition.
			_ = bar.Get("offsetWidth")
			style.Set("transition", "width "+strconv.FormatInt(Remaining(t).Milliseconds(), 10)+"ms linear")
			style.Set("width", "0%")
		}
	}
	return t.ID
}

func (a *App) buildToast(t toast.Toast) js.Value {
	node := element(a.doc, "div", ToastClass(t))
	node.Call("setAttribute", "role", "status")
	node.Call("setAttribute", "data-toast-type", string(t.Type))

	body := element(a.doc, "div", "toast-body")
	message := element(a.doc, "p", "toast-message")
	setText(message, t.Message)
	body.Call("appendChild", message)
	if t.Description != "" {
		description := element(a.doc, "p", "toast-description")
		setText(description, t.Description)
		body.Call("appendChild", description)
	}
	node.Call("appendChild", body)

	closeButton := element(a.doc, "button", "toast-close")
	closeButton.Call("setAttribute", "type", "button")
	closeButton.Call("setAttribute", "data-toast-close", "")
	closeButton.Call("setAttribute", "aria-label", "Close")
	closeButton.Set("innerHTML", "&times;")
	node.Call("appendChild", closeButton)

	bar := element(a.doc, "div", "toast-progress")
	bar.Call("setAttribute", "data-toast-progress", "")
	node.Call("appendChild", bar)
	return node
}

func (a *App) mountScroll() *scroll.Orchestrator {
	orchestrator := scroll.New(viewport{doc: a.doc, win: a.win}, a.clock)
	a.onClose(orchestrator.Close)

	indicator := scroll.NewIndicator(orchestrator, a.clock, guard(a, a.markNav))
	a.onClose(indicator.Close)

	for _, cfg := range scroll.DefaultReveals() {
		reveal := scroll.NewReveal(orchestrator, a.clock, cfg)
		a.onClose(reveal.Close)
		a.observe(a.byID(cfg.Section.ElementID()), cfg.Threshold, reveal.SetInView)
	}

	a.listen(a.win, "scroll", func(js.Value) { orchestrator.HandleScroll() })
	a.listen(a.doc, "click", func(ev js.Value) {
		link := closest(ev.Get("target"), "[data-scroll-to]")
		raw, ok := attr(link, "data-scroll-to")
		if !ok {
			return
		}
		target, err := section.Parse(raw)
		if err != nil {
			return
		}
		if orchestrator.ScrollToSection(target) {
			ev.Call("preventDefault")
		}
	})
	return orchestrator
}

func (a *App) markNav(active section.Section) {
	for _, link := range queryAll(a.doc, "[data-nav-section]") {
		if raw, _ := attr(link, "data-nav-section"); raw == active.String() {
			setAttr(link, "aria-current", "true")
		} else {
			removeAttr(link, "aria-current")
		}
	}
}

func (a *App) mountStepper() {
	root := query(a.doc, "[data-stepper]")
	if !root.Truthy() {
		return
	}
	steps := stepper.New(a.clock, guard(a, func(st stepper.State) { a.renderStepper(root, st) }))
	a.onClose(steps.Close)
	a.renderStepper(root, steps.State())

	a.observe(a.byID(section.ProcessSteps.ElementID()), 0.4, func(inView bool) {
		if inView {
			steps.Enter()
			return
		}
		steps.Leave()
	})
	a.listen(query(root, "[data-stepper-prev]"), "click", func(js.Value) { steps.Prev() })
	a.listen(query(root, "[data-stepper-next]"), "click", func(js.Value) { steps.Next() })
	a.listen(query(root, ".stepper-stack"), "click", func(ev js.Value) {
		raw, ok := attr(closest(ev.Get("target"), "[data-card-index]"), "data-card-index")
		if !ok {
			return
		}
		if index, err := strconv.Atoi(raw); err == nil {
			steps.Select(index)
		}
	})
	a.listen(a.win, "resize", func(js.Value) { a.renderStepper(root, steps.State()) })
}

func (a *App) renderStepper(root js.Value, st stepper.State) {
	bucket := stepper.BucketForWidth(a.win.Get("innerWidth").Float())
	for _, card := range queryAll(root, "[data-card-index]") {
		raw, _ := attr(card, "data-card-index")
		index, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		setAttr(card, "style", CardStyle(stepper.Transform(index-1, st.ActiveIndex, bucket)))
		if index == st.ActiveIndex {
			setAttr(card, "aria-current", "step")
		} else {
			removeAttr(card, "aria-current")
		}
	}
	setHidden(query(root, "[data-stepper-finale]"), !st.ShowFinalMessage)
	setHidden(query(root, "[data-stepper-autoplay]"), !st.Autoplay)
}

func (a *App) mountSplash(orchestrator *scroll.Orchestrator) {
	el := a.byID(section.Splash.ElementID())
	body := a.doc.Get("body")
	if !el.Truthy() {
		body.Get("classList").Call("add", "splash-done")
		return
	}
	bar := query(el, "[data-splash-bar]")
	percent := query(el, "[data-splash-percent]")
	sp := splash.New(a.clock, guard(a, func(st splash.State) {
		if bar.Truthy() {
			bar.Get("style").Set("width", SplashWidth(st.Progress))
		}
		setText(percent, SplashPercent(st.Progress))
		setAttr(el, "aria-valuenow", strconv.Itoa(int(math.Round(st.Progress))))
		if st.Exiting {
			body.Get("classList").Call("add", "splash-done")
		}
		if st.Done {
			setHidden(el, true)
		}
	}), func() {
		defer a.recoverPanic()
		orchestrator.SetActiveSection(section.Hero)
	})
	a.onClose(sp.Close)
	sp.Start()
}

func (a *App) mountForm(ctx context.Context, notifier *toast.Notifier) {
	formEl := a.byID("contact-form")
	if !formEl.Truthy() {
		return
	}
	apiBase, _ := attr(a.doc.Get("body"), "data-api-base")
	client := contactform.NewClient(apiBase, nil)
	form := contactform.NewForm(client, notifier, guard(a, func(st contactform.State) {
		a.renderForm(formEl, st)
	}))

	for _, field := range formFields {
		field := field
		input := a.byID(string(field))
		if !input.Truthy() {
			continue
		}
		if value := input.Get("value").String(); value != "" {
			form.SetField(field, value)
		}
		update := func(js.Value) { form.SetField(field, input.Get("value").String()) }
		a.listen(input, "input", update)
		a.listen(input, "change", update)
	}

	a.listen(formEl, "submit", func(ev js.Value) {
		ev.Call("preventDefault")
		// Network calls block on a JS promise, so they must leave the event
		// callback.
		go func() {
			defer a.recoverPanic()
			submitCtx, cancel := context.WithTimeout(ctx, submitTimeout)
			defer cancel()
			if err := form.Submit(submitCtx); err != nil && !errors.Is(err, contactform.ErrBusy) {
				log.Printf("contact submit failed: %v", err)
			}
		}()
	})
	a.listen(a.doc, "click", func(ev js.Value) {
		target := ev.Get("target")
		if plan, ok := attr(closest(target, "[data-plan-select]"), "data-plan-select"); ok {
			form.SetField(contact.FieldBusinessStage, plan)
			if stage := a.byID(string(contact.FieldBusinessStage)); stage.Truthy() {
				stage.Set("value", plan)
			}
		}
		if closest(target, "[data-send-another]").Truthy() {
			ev.Call("preventDefault")
			form.SendAnother()
		}
	})
}

func (a *App) renderForm(formEl js.Value, st contactform.State) {
	for _, field := range formFields {
		name := string(field)
		input := a.byID(name)
		message, invalid := st.Errors[field]
		errorEl := query(formEl, `[data-field-error="`+name+`"]`)
		setText(errorEl, message)
		setHidden(errorEl, !invalid)
		if invalid {
			setAttr(input, "aria-invalid", "true")
			setAttr(input, "aria-describedby", name+"-error")
		} else {
			removeAttr(input, "aria-invalid")
			removeAttr(input, "aria-describedby")
		}
		if input.Truthy() {
			if want := fieldValue(st.Values, field); input.Get("value").String() != want {
				input.Set("value", want)
			}
		}
	}

	if button := query(formEl, "button[type=submit]"); button.Truthy() {
		button.Set("disabled", st.Submitting)
		label := "data-label-idle"
		if st.Submitting {
			label = "data-label-busy"
		}
		if text, ok := attr(button, label); ok {
			setText(button, text)
		}
	}

	success := a.byID("contact-success")
	if st.View == contactform.ViewSuccess {
		setHidden(formEl, true)
		if !success.Truthy() {
			success = a.buildSuccess(st.ResponseMessage)
			formEl.Get("parentNode").Call("insertBefore", success, formEl.Get("nextSibling"))
		}
		setHidden(success, false)
		return
	}
	setHidden(formEl, false)
	if success.Truthy() {
		success.Call("remove")
	}
}

func (a *App) buildSuccess(message string) js.Value {
	panel := element(a.doc, "div", "contact-panel contact-success")
	panel.Set("id", "contact-success")
	panel.Call("setAttribute", "role", "status")
	heading := element(a.doc, "h3", "")
	setText(heading, contactform.MsgSentFallback)
	panel.Call("appendChild", heading)
	if message != "" {
		body := element(a.doc, "p", "")
		setText(body, message)
		panel.Call("appendChild", body)
	}
	again := element(a.doc, "button", "btn btn-secondary")
	again.Call("setAttribute", "type", "button")
	again.Call("setAttribute", "data-send-another", "")
	setText(again, "Send another message")
	panel.Call("appendChild", again)
	return panel
}

func fieldValue(sub contact.Submission, field contact.Field) string {
	switch field {
	case contact.FieldEmail:
		return sub.Email
	case contact.FieldPhoneNumber:
		return sub.PhoneNumber
	case contact.FieldBusinessStage:
		return sub.BusinessStage
	case contact.FieldChallenge:
		return sub.Challenge
	}
	return ""
}
