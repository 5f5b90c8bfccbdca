package repository

import (
	"context"
	"time"

	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/domain/report"
)

type reportDocument struct {
	AnimalType  string    `mapstructure:"animalType" validate:"required"`
	Condition   string    `mapstructure:"condition"`
	Location    string    `mapstructure:"location"`
	Description string    `mapstructure:"description"`
	Photo       *string   `mapstructure:"photo"`
	Status      string    `mapstructure:"status"`
	Timestamp   time.Time `mapstructure:"timestamp" validate:"required"`
	User        struct {
		UID   string `mapstructure:"uid"`
		Email string `mapstructure:"email"`
	} `mapstructure:"user"`
}

// ReportRepository stores reports in the reports collection.
type ReportRepository struct {
	store docstore.Store
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(store docstore.Store) *ReportRepository {
	return &ReportRepository{store: store}
}

func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) (string, error) {
	id, err := r.store.Create(ctx, docstore.Reports, map[string]any{
		"animalType":  rep.AnimalType(),
		"condition":   rep.Condition(),
		"location":    rep.Location(),
		"description": rep.Description(),
		"photo":       nullable(rep.PhotoURL()),
		"status":      string(rep.Status()),
		"timestamp":   docstore.FormatTime(rep.Timestamp()),
		"user": map[string]any{
			"uid":   rep.Reporter().UID,
			"email": rep.Reporter().Email,
		},
	})
	if err != nil {
		return "", storeError("report", "", err)
	}
	return id, nil
}

func (r *ReportRepository) ListNewestFirst(ctx context.Context) ([]*report.Report, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Collection: docstore.Reports, OrderBy: "timestamp", Desc: true})
	if err != nil {
		return nil, storeError("report", "", err)
	}
	out := make([]*report.Report, 0, len(docs))
	for _, doc := range docs {
		m, err := decodeDocument[reportDocument](doc)
		if err != nil {
			return nil, err
		}
		status := report.Status(m.Status)
		if status == "" {
			status = report.StatusPending
		}
		out = append(out, report.Reconstruct(
			doc.ID,
			report.Fields{AnimalType: m.AnimalType, Condition: m.Condition, Location: m.Location, Description: m.Description},
			optionalString(m.Photo),
			report.Reporter{UID: m.User.UID, Email: m.User.Email},
			status,
			m.Timestamp,
		))
	}
	return out, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.Reports, id); err != nil {
		return storeError("report", id, err)
	}
	return nil
}
