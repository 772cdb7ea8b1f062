package service

import (
	"context"

	"github.com/jonathan/resume-matcher/internal/db"
	pkgerrors "github.com/pkg/errors"
)

// ListCustomizations returns stored customizations, newest first
func (s *Service) ListCustomizations(ctx context.Context, filter db.CustomizationFilter) ([]db.CustomizationRecord, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	records, err := s.repo.ListCustomizations(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list customizations")
	}
	return records, nil
}

// Analytics summarizes stored customizations
func (s *Service) Analytics(ctx context.Context) (*db.Analytics, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	analytics, err := s.repo.GetAnalytics(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "compute analytics")
	}
	return analytics, nil
}
