package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/db"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/internal/repositories"
)

type journalist struct {
	repo ports.JournalistRepository
}

// NewJournalist returns the journalist identity resolver
func NewJournalist(repo ports.JournalistRepository) ports.JournalistService {
	return &journalist{repo: repo}
}

// Resolve returns the stored journalist with the request national id or creates it.
// When a concurrent request creates the same journalist first, the stored record is returned.
func (s *journalist) Resolve(ctx context.Context, conn db.Querier, req *ports.JournalistRequest) (*domain.Journalist, error) {
	found, err := s.repo.GetByNationalID(ctx, conn, req.NationalID)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, repositories.ErrJournalistNotFound) {
		return nil, fmt.Errorf("looking up journalist: %w", err)
	}

	created := domain.NewJournalist(req.NationalID, req.FullName, req.Phone, req.Email, req.PhotoURL)
	err = s.repo.Save(ctx, conn, created)
	if errors.Is(err, repositories.ErrJournalistAlreadyExists) {
		log.Debug(ctx, "journalist created concurrently, using stored record", "nationalID", req.NationalID)
		found, err = s.repo.GetByNationalID(ctx, conn, req.NationalID)
		if err != nil {
			return nil, fmt.Errorf("reading concurrently created journalist: %w", err)
		}
		return found, nil
	}
	if err != nil {
		return nil, fmt.Errorf("saving journalist: %w", err)
	}
	log.Info(ctx, "journalist created", "id", created.ID)
	return created, nil
}
