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

type GroupService interface {
	Create(ctx context.Context, orgID uuid.UUID, req dto.CreateGroupRequest) (*dto.GroupResponse, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*dto.GroupResponse, error)
	List(ctx context.Context, orgID uuid.UUID) ([]dto.GroupResponse, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Deactivate(ctx context.Context, orgID, id uuid.UUID) error
	ListMembers(ctx context.Context, orgID, id uuid.UUID) ([]dto.MemberResponse, error)
}

type groupService struct {
	repo repository.GroupRepository
}

func NewGroupService(repo repository.GroupRepository) GroupService {
	return &groupService{repo: repo}
}

func (s *groupService) Create(ctx context.Context, orgID uuid.UUID, req dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	g := &model.AthleteGroup{
		OrganizationID: orgID,
		Name:           req.Name,
		Capacity:       req.Capacity,
		MonthlyFee:     req.MonthlyFee,
		Active:         true,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return s.groupToResponse(ctx, g)
}

func (s *groupService) Get(ctx context.Context, orgID, id uuid.UUID) (*dto.GroupResponse, error) {
	g, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("group not found")
	}
	return s.groupToResponse(ctx, g)
}

func (s *groupService) List(ctx context.Context, orgID uuid.UUID) ([]dto.GroupResponse, error) {
	groups, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		resp, err := s.groupToResponse(ctx, &groups[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

func (s *groupService) Update(ctx context.Context, orgID, id uuid.UUID, req dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	g, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("group not found")
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Capacity != nil {
		g.Capacity = req.Capacity
	}
	if req.MonthlyFee != nil {
		g.MonthlyFee = *req.MonthlyFee
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return s.groupToResponse(ctx, g)
}

// Deactivate keeps the group row; memberships and waitlist entries that
// reference it stay intact.
func (s *groupService) Deactivate(ctx context.Context, orgID, id uuid.UUID) error {
	g, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return apierror.NotFound("group not found")
	}
	g.Active = false
	return s.repo.Update(ctx, g)
}

func (s *groupService) ListMembers(ctx context.Context, orgID, id uuid.UUID) ([]dto.MemberResponse, error) {
	if _, err := s.repo.FindByID(ctx, orgID, id); err != nil {
		return nil, apierror.NotFound("group not found")
	}
	members, err := s.repo.ListMembers(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		item := dto.MemberResponse{
			ID:        m.ID.String(),
			AthleteID: m.AthleteID.String(),
			JoinedAt:  m.JoinedAt.Format(time.RFC3339),
		}
		if m.Athlete != nil {
			item.Athlete = m.Athlete.FirstName + " " + m.Athlete.LastName
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *groupService) groupToResponse(ctx context.Context, g *model.AthleteGroup) (*dto.GroupResponse, error) {
	count, err := s.repo.CountMembers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return &dto.GroupResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Capacity:    g.Capacity,
		MonthlyFee:  g.MonthlyFee,
		MemberCount: count,
		Active:      g.Active,
	}, nil
}
