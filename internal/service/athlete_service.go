package service

import (
	"context"
	"time"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"

	"github.com/google/uuid"
)

type AthleteService interface {
	Create(ctx context.Context, orgID uuid.UUID, req dto.CreateAthleteRequest) (*dto.AthleteResponse, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*dto.AthleteResponse, error)
	List(ctx context.Context, orgID uuid.UUID, filter dto.AthleteFilter) (*dto.AthleteListResponse, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req dto.UpdateAthleteRequest) (*dto.AthleteResponse, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

type athleteService struct {
	repo repository.AthleteRepository
}

func NewAthleteService(repo repository.AthleteRepository) AthleteService {
	return &athleteService{repo: repo}
}

func (s *athleteService) Create(ctx context.Context, orgID uuid.UUID, req dto.CreateAthleteRequest) (*dto.AthleteResponse, error) {
	a := &model.Athlete{
		OrganizationID: orgID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Active:         true,
	}
	if req.BirthDate != nil {
		bd, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apierror.BadRequest("invalid birth_date, expected YYYY-MM-DD")
		}
		a.BirthDate = &bd
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return athleteToResponse(a), nil
}

func (s *athleteService) Get(ctx context.Context, orgID, id uuid.UUID) (*dto.AthleteResponse, error) {
	a, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("athlete not found")
	}
	return athleteToResponse(a), nil
}

func (s *athleteService) List(ctx context.Context, orgID uuid.UUID, filter dto.AthleteFilter) (*dto.AthleteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	athletes, total, err := s.repo.List(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AthleteResponse, 0, len(athletes))
	for i := range athletes {
		items = append(items, *athleteToResponse(&athletes[i]))
	}
	return &dto.AthleteListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *athleteService) Update(ctx context.Context, orgID, id uuid.UUID, req dto.UpdateAthleteRequest) (*dto.AthleteResponse, error) {
	a, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("athlete not found")
	}
	if req.FirstName != nil {
		a.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		a.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		bd, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apierror.BadRequest("invalid birth_date, expected YYYY-MM-DD")
		}
		a.BirthDate = &bd
	}
	if req.Email != nil {
		a.Email = req.Email
	}
	if req.Phone != nil {
		a.Phone = req.Phone
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return athleteToResponse(a), nil
}

// Delete deactivates the profile. Historic payments and waitlist entries
// keep pointing at it.
func (s *athleteService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, orgID, id); err != nil {
		return apierror.NotFound("athlete not found")
	}
	return s.repo.SoftDelete(ctx, orgID, id)
}

func athleteToResponse(a *model.Athlete) *dto.AthleteResponse {
	resp := &dto.AthleteResponse{
		ID:        a.ID.String(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Phone:     a.Phone,
		Active:    a.Active,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.BirthDate != nil {
		bd := a.BirthDate.Format("2006-01-02")
		resp.BirthDate = &bd
	}
	return resp
}
