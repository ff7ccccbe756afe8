package contact

import (
	"context"
	"strings"

	domain "github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/platform/timeouts"
	apperrors "github.com/builld/web/internal/services/web/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/builld/web/internal/services/web/modules/contact"

type service struct {
	submitter Submitter
	tracer    trace.Tracer
}

func newService(submitter Submitter) service {
	return service{submitter: submitter, tracer: otel.Tracer(tracerName)}
}

// submit delivers sub within the contact request budget.
func (s service) submit(ctx context.Context, sub domain.Submission) (string, error) {
	if s.submitter == nil {
		return "", apperrors.EK(apperrors.KindUnavailable, "web.contact.failed", "contact submitter is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.ContactRequest)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "contact.submit", trace.WithAttributes(
		attribute.String("contact.business_stage", strings.TrimSpace(sub.BusinessStage)),
		attribute.Bool("contact.has_phone", strings.TrimSpace(sub.PhoneNumber) != ""),
	))
	defer span.End()

	message, err := s.submitter.Submit(ctx, sub)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "contact submission failed")
		return "", err
	}
	span.SetStatus(codes.Ok, "")
	return message, nil
}
