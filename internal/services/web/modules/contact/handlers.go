package contact

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	domain "github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/services/web/content"
	apperrors "github.com/builld/web/internal/services/web/platform/errors"
	flashnotice "github.com/builld/web/internal/services/web/platform/flash"
	"github.com/builld/web/internal/services/web/platform/httpx"
	webi18n "github.com/builld/web/internal/services/web/platform/i18n"
	"github.com/builld/web/internal/services/web/platform/pagerender"
	"github.com/builld/web/internal/services/web/platform/publichandler"
	"github.com/builld/web/internal/services/web/routepath"
	webtemplates "github.com/builld/web/internal/services/web/templates"
	"github.com/builld/web/internal/site/contactform"
	"github.com/builld/web/internal/site/section"
	"github.com/builld/web/internal/site/toast"
)

const maxBodyBytes = 64 << 10

const (
	sentToastKey     = "web.contact.sent_toast"
	sentToastBodyKey = "web.contact.sent_toast_body"
	failedToastKey   = "web.contact.failed"
)

type handlers struct {
	publichandler.Base
	service service
	content ContentSource
	logger  *log.Logger
}

func newHandlers(s service, source ContentSource, base publichandler.Base, logger *log.Logger) handlers {
	if logger == nil {
		logger = log.Default()
	}
	return handlers{Base: base, service: s, content: source, logger: logger}
}

func (h handlers) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&sub); err != nil {
		writeAPIResponse(w, http.StatusBadRequest, domain.MsgInvalidBody)
		return
	}
	// Incomplete submissions never reach the submitter.
	if err := sub.Sanitized().CheckRequired(); err != nil {
		writeAPIError(w, err)
		return
	}
	message, err := h.service.submit(r.Context(), sub)
	if err != nil {
		status := writeAPIError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Printf("contact submission failed request_id=%s status=%d err=%v", r.Header.Get(httpx.RequestIDHeader), status, err)
		}
		return
	}
	writeAPIResponse(w, http.StatusOK, message)
}

// writeAPIError replies with the status and message err maps to and returns
// the status. Rejections from an upstream contact endpoint keep their status
// and message; upstream failures become 502.
func writeAPIError(w http.ResponseWriter, err error) int {
	var invalid *domain.InvalidError
	if errors.As(err, &invalid) {
		writeAPIResponse(w, http.StatusBadRequest, invalid.Message)
		return http.StatusBadRequest
	}
	var apiErr *contactform.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			message := apiErr.Message
			if message == "" {
				message = http.StatusText(apiErr.StatusCode)
			}
			writeAPIResponse(w, apiErr.StatusCode, message)
			return apiErr.StatusCode
		}
		writeAPIResponse(w, http.StatusBadGateway, domain.MsgInternal)
		return http.StatusBadGateway
	}
	writeAPIResponse(w, http.StatusInternalServerError, domain.MsgInternal)
	return http.StatusInternalServerError
}

func (h handlers) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h handlers) handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	writeAPIResponse(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func writeAPIResponse(w http.ResponseWriter, status int, message string) {
	_ = httpx.WriteJSON(w, status, contactform.Response{Message: message, Status: status})
}

func (h handlers) handleFormRedirect(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.LandingSection(section.Contact))
}

func (h handlers) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "parse contact form", err))
		return
	}
	sub := domain.Submission{
		Email:         r.PostFormValue(string(domain.FieldEmail)),
		PhoneNumber:   r.PostFormValue(string(domain.FieldPhoneNumber)),
		BusinessStage: r.PostFormValue(string(domain.FieldBusinessStage)),
		Challenge:     r.PostFormValue(string(domain.FieldChallenge)),
	}
	if errs := sub.Validate(); errs != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, sub, errs, nil)
		return
	}

	sub = sub.Trimmed()
	sub.PhoneNumber = domain.NormalizePhone(sub.PhoneNumber)
	if _, err := h.service.submit(r.Context(), sub); err != nil {
		status, message := h.classifyFormFailure(r, err)
		h.renderForm(w, r, status, sub, nil, &webtemplates.Toast{Type: toast.Error, Message: message})
		return
	}
	flashnotice.Write(w, r, flashnotice.Success(sentToastKey, sentToastBodyKey), h.Shell().Policy)
	httpx.WriteRedirect(w, r, routepath.ContactSent())
}

// classifyFormFailure maps a submit error to the status and toast message of
// the re-rendered form.
func (h handlers) classifyFormFailure(r *http.Request, err error) (int, string) {
	var invalid *domain.InvalidError
	if errors.As(err, &invalid) && invalid.Message != "" {
		return http.StatusUnprocessableEntity, invalid.Message
	}
	var apiErr *contactform.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError && apiErr.Message != "" {
		return http.StatusUnprocessableEntity, apiErr.Message
	}
	h.logger.Printf("contact form submission failed request_id=%s err=%v", r.Header.Get(httpx.RequestIDHeader), err)
	loc, _ := webi18n.ResolveLocalizer(nil, r)
	status := http.StatusInternalServerError
	if apiErr != nil {
		status = http.StatusBadGateway
	}
	return status, webi18n.T(loc, failedToastKey)
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, sub domain.Submission, errs domain.FieldErrors, notice *webtemplates.Toast) {
	site := content.Default()
	if h.content != nil {
		site = h.content.Site()
	}
	page := webtemplates.LandingPage{
		Site: site,
		Form: webtemplates.ContactFormView{
			Endpoint: routepath.APIURL(h.Shell().APIBase, routepath.APIContact),
			Values:   sub,
			Errors:   errs,
			Stages:   site.PlanNames(),
		},
	}
	h.WritePage(w, r, pagerender.Page{
		StatusCode: status,
		Chrome:     true,
		Toast:      notice,
		Body: func(loc webtemplates.Localizer) templ.Component {
			return webtemplates.Landing(page, loc)
		},
	})
}
