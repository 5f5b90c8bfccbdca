package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/domain/report"
	"github.com/PawsProtect/service-welfare/internal/domain/user"
	"github.com/PawsProtect/service-welfare/internal/metrics"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
	"github.com/PawsProtect/service-welfare/internal/storage"
)

const unknownContact = "Unknown"

// Uploader is the object storage port.
type Uploader interface {
	Upload(ctx context.Context, f storage.File, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

// SubmitReportRequest holds the report form.
type SubmitReportRequest struct {
	AnimalType  string `form:"animal_type"`
	Condition   string `form:"condition"`
	Location    string `form:"location"`
	Description string `form:"description"`
}

// ReporterDTO identifies the reporter, enriched from their profile.
type ReporterDTO struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ReportDTO is the response representation of a report.
type ReportDTO struct {
	ID          string                  `json:"id"`
	AnimalType  string                  `json:"animal_type"`
	Condition   string                  `json:"condition"`
	Location    string                  `json:"location"`
	Description string                  `json:"description"`
	PhotoURL    domain.Optional[string] `json:"photo_url"`
	Status      string                  `json:"status"`
	Reporter    ReporterDTO             `json:"reporter"`
	Timestamp   time.Time               `json:"timestamp"`
}

// ReportService handles animal distress reports.
type ReportService struct {
	reports  report.Repository
	users    user.Repository
	uploader Uploader
	deps     Deps
}

// NewReportService creates a new ReportService.
func NewReportService(reports report.Repository, users user.Repository, uploader Uploader, deps Deps) *ReportService {
	return &ReportService{reports: reports, users: users, uploader: uploader, deps: deps.withDefaults()}
}

// SubmitReport validates the form, uploads the optional photo and stores the
// report. Nothing is uploaded when the form is incomplete.
func (s *ReportService) SubmitReport(ctx context.Context, reporter auth.Identity, req SubmitReportRequest, photo *storage.File) (dto *ReportDTO, err error) {
	defer func() { s.deps.Metrics.RecordReport(metrics.Outcome(err, domain.IsValidation)) }()

	fields := report.Fields{
		AnimalType:  req.AnimalType,
		Condition:   req.Condition,
		Location:    req.Location,
		Description: req.Description,
	}
	who := report.Reporter{Email: reporter.Email}
	if reporter.UserID != uuid.Nil {
		who.UID = reporter.UserID.String()
	}
	if _, err := report.NewReport(fields, domain.None[string](), who, s.deps.Clock.Now()); err != nil {
		return nil, err
	}

	photoURL := domain.None[string]()
	if photo != nil {
		url, err := s.uploader.Upload(ctx, *photo, "reports")
		if err != nil {
			return nil, err
		}
		photoURL = domain.Some(url)
	}

	rep, err := report.NewReport(fields, photoURL, who, s.deps.Clock.Now())
	if err != nil {
		return nil, err
	}
	id, err := s.reports.Create(ctx, rep)
	if err != nil {
		s.discardPhoto(ctx, photoURL)
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	rep.SetID(id)

	s.deps.Logger.Info("report submitted",
		zap.String("report_id", id),
		zap.String("reporter_uid", who.UID),
		zap.Bool("has_photo", photoURL.IsPresent()),
	)
	result := toReportDTO(rep, nil)
	s.deps.publishEvent(ctx, EventReportSubmitted, id, result)
	return &result, nil
}

// discardPhoto removes an upload whose report was never stored.
func (s *ReportService) discardPhoto(ctx context.Context, photoURL domain.Optional[string]) {
	url, ok := photoURL.Get()
	if !ok {
		return
	}
	if err := s.uploader.Delete(context.WithoutCancel(ctx), url); err != nil {
		s.deps.Logger.Error("failed to delete orphaned report photo",
			zap.String("url", url),
			zap.Error(err),
		)
	}
}

// ListReports returns every report, newest first, with the reporter's name
// and phone looked up by email.
func (s *ReportService) ListReports(ctx context.Context) ([]ReportDTO, error) {
	reports, err := s.reports.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(reports))
	seen := make(map[string]struct{}, len(reports))
	for _, r := range reports {
		e := r.Reporter().Email
		if _, dup := seen[e]; e != "" && !dup {
			seen[e] = struct{}{}
			emails = append(emails, e)
		}
	}
	profiles, err := s.users.FindByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	out := make([]ReportDTO, len(reports))
	for i, r := range reports {
		out[i] = toReportDTO(r, profiles[r.Reporter().Email])
	}
	return out, nil
}

// DeleteReport removes a report.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	s.deps.Logger.Info("report deleted", zap.String("report_id", id))
	return nil
}

func toReportDTO(r *report.Report, profile *user.Profile) ReportDTO {
	reporter := ReporterDTO{UID: r.Reporter().UID, Email: r.Reporter().Email}
	if profile != nil {
		reporter.Name = profile.Name
		if reporter.Name == "" {
			reporter.Name = unknownContact
		}
		reporter.Phone = profile.Phone.OrElse(unknownContact)
	}
	return ReportDTO{
		ID:          r.ID(),
		AnimalType:  r.AnimalType(),
		Condition:   r.Condition(),
		Location:    r.Location(),
		Description: r.Description(),
		PhotoURL:    r.PhotoURL(),
		Status:      string(r.Status()),
		Reporter:    reporter,
		Timestamp:   r.Timestamp(),
	}
}
