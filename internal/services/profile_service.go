package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"recruit-api/internal/blob"
	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"
)

type profileService struct {
	*Deps
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(d *Deps) ProfileService {
	return &profileService{Deps: d}
}

func (s *profileService) candidate(ctx context.Context, actor models.Identity) (*models.Candidate, error) {
	if err := requireRole(actor, models.RoleCandidate); err != nil {
		return nil, err
	}
	cand, err := s.Store.Candidates.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		now := s.now()
		return &models.Candidate{UserID: actor.UserID, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, mapRepoError(err, "fetching candidate profile")
	}
	return cand, nil
}

func (s *profileService) GetCandidate(ctx context.Context, actor models.Identity) (*models.Candidate, error) {
	return s.candidate(ctx, actor)
}

func (s *profileService) UpdateCandidate(ctx context.Context, actor models.Identity, req *dto.UpdateCandidateRequest) (*models.Candidate, error) {
	cand, err := s.candidate(ctx, actor)
	if err != nil {
		return nil, err
	}
	if req.Phone != nil {
		cand.Phone = *req.Phone
	}
	if req.City != nil {
		cand.City = *req.City
	}
	if req.Headline != nil {
		cand.Headline = *req.Headline
	}
	if req.Skills != nil {
		cand.Skills = req.Skills
	}
	cand.UpdatedAt = s.now()
	if err := s.Store.Candidates.Upsert(ctx, cand); err != nil {
		return nil, mapRepoError(err, "updating candidate profile")
	}
	return cand, nil
}

// UploadCV stores the file and replaces the profile CV. The previous file is
// removed in the background.
func (s *profileService) UploadCV(ctx context.Context, actor models.Identity, r io.Reader, filename, contentType string) (*models.Candidate, error) {
	cand, err := s.candidate(ctx, actor)
	if err != nil {
		return nil, err
	}
	url, err := s.store(ctx, r, blob.Meta{Filename: filename, ContentType: contentType, Folder: "cv"})
	if err != nil {
		return nil, err
	}
	previous := cand.CVURL
	cand.CVURL = url
	cand.UpdatedAt = s.now()
	if err := s.Store.Candidates.Upsert(ctx, cand); err != nil {
		s.deleteBlob(url)
		return nil, mapRepoError(err, "saving CV")
	}
	s.deleteBlob(previous)
	return cand, nil
}

func (s *profileService) Upload(ctx context.Context, actor models.Identity, r io.Reader, filename, contentType string) (string, error) {
	return s.store(ctx, r, blob.Meta{Filename: filename, ContentType: contentType, Folder: "documents/" + actor.UserID.String()})
}

func (s *profileService) store(ctx context.Context, r io.Reader, meta blob.Meta) (string, error) {
	url, err := s.Blob.Store(ctx, r, meta)
	if err != nil {
		if errors.Is(err, blob.ErrTooLarge) || errors.Is(err, blob.ErrUnsupportedType) {
			return "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		log.Printf("ProfileService: Error storing %s: %v", meta.Filename, err)
		return "", fmt.Errorf("internal error storing file: %w", err)
	}
	return url, nil
}
