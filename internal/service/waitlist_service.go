package service

import (
	"context"
	"fmt"
	"time"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"
	"sportclub/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistService interface {
	Create(ctx context.Context, orgID, userID uuid.UUID, req dto.CreateWaitlistEntryRequest) (*dto.WaitlistEntryResponse, error)
	Assign(ctx context.Context, orgID, userID, id uuid.UUID) (*dto.WaitlistEntryResponse, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	BulkDelete(ctx context.Context, orgID uuid.UUID, req dto.BulkDeleteWaitlistRequest) (int64, error)
	BulkUpdatePriority(ctx context.Context, orgID uuid.UUID, req dto.BulkUpdatePriorityRequest) (int64, error)
	List(ctx context.Context, orgID uuid.UUID, filter dto.WaitlistFilter) (*dto.WaitlistListResponse, error)
}

type waitlistService struct {
	repo        repository.WaitlistRepository
	athleteRepo repository.AthleteRepository
	groupRepo   repository.GroupRepository
	dispatcher  *worker.Dispatcher
}

func NewWaitlistService(
	repo repository.WaitlistRepository,
	athleteRepo repository.AthleteRepository,
	groupRepo repository.GroupRepository,
	dispatcher *worker.Dispatcher,
) WaitlistService {
	return &waitlistService{
		repo:        repo,
		athleteRepo: athleteRepo,
		groupRepo:   groupRepo,
		dispatcher:  dispatcher,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────
// New entries receive max(position)+1 among waiting entries in the same scope:
// (organization, group) for group entries, (organization, schedule) otherwise.
// The position read and the insert run in one transaction so two concurrent
// creates cannot claim the same ordinal.

func (s *waitlistService) Create(ctx context.Context, orgID, userID uuid.UUID, req dto.CreateWaitlistEntryRequest) (*dto.WaitlistEntryResponse, error) {
	athleteID, err := uuid.Parse(req.AthleteID)
	if err != nil {
		return nil, apierror.BadRequest("invalid athlete_id")
	}
	athlete, err := s.athleteRepo.FindByID(ctx, orgID, athleteID)
	if err != nil {
		return nil, apierror.NotFound("athlete not found")
	}

	var groupID *uuid.UUID
	if req.ReferenceType == model.WaitlistRefGroup {
		if req.AthleteGroupID == nil {
			return nil, apierror.BadRequest("athlete_group_id is required for group entries")
		}
		gid, err := uuid.Parse(*req.AthleteGroupID)
		if err != nil {
			return nil, apierror.BadRequest("invalid athlete_group_id")
		}
		if _, err := s.groupRepo.FindByID(ctx, orgID, gid); err != nil {
			return nil, apierror.NotFound("group not found")
		}
		// One waiting entry per (athlete, group)
		if _, err := s.repo.FindWaitingByAthleteAndGroup(ctx, orgID, athleteID, gid); err == nil {
			return nil, apierror.Conflict("athlete already has a waiting entry for this group")
		}
		groupID = &gid
	}

	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}

	entry := &model.WaitlistEntry{
		OrganizationID:     orgID,
		AthleteID:          athleteID,
		ReferenceType:      req.ReferenceType,
		AthleteGroupID:     groupID,
		PreferredDays:      req.PreferredDays,
		PreferredStartTime: req.PreferredStartTime,
		PreferredEndTime:   req.PreferredEndTime,
		Priority:           priority,
		Status:             model.WaitlistStatusWaiting,
		CreatedBy:          userID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			tx = s.repo.DB()
		}
		max, err := s.repo.MaxWaitingPosition(tx, orgID, req.ReferenceType, groupID)
		if err != nil {
			return err
		}
		entry.Position = max + 1
		return s.repo.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	entry.Athlete = athlete
	return entryToResponse(entry), nil
}

// ── Assign ────────────────────────────────────────────────────────────────────
// The caller picks the entry — there is no automatic "next in line" selection;
// priority and position are advisory display ordering only. For group entries
// the membership insert is idempotent: an existing membership is left alone.

func (s *waitlistService) Assign(ctx context.Context, orgID, userID, id uuid.UUID) (*dto.WaitlistEntryResponse, error) {
	entry, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, apierror.NotFound("waitlist entry not found")
	}
	// An already-processed entry is gone from the queue's perspective
	if entry.Status != model.WaitlistStatusWaiting {
		return nil, apierror.NotFound("waitlist entry is not waiting")
	}

	now := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			tx = s.repo.DB()
		}
		if entry.ReferenceType == model.WaitlistRefGroup && entry.AthleteGroupID != nil {
			if _, err := s.groupRepo.FindMembership(ctx, *entry.AthleteGroupID, entry.AthleteID); err != nil {
				m := &model.GroupMembership{
					OrganizationID: orgID,
					AthleteGroupID: *entry.AthleteGroupID,
					AthleteID:      entry.AthleteID,
					JoinedAt:       now,
				}
				if err := s.groupRepo.CreateMembershipTx(tx, m); err != nil {
					return err
				}
			}
		}
		entry.Status = model.WaitlistStatusAssigned
		entry.AssignedBy = &userID
		entry.AssignedAt = &now
		return s.repo.UpdateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best-effort notification — the assignment itself is already committed
	if s.dispatcher != nil && entry.Athlete != nil && entry.Athlete.Email != nil {
		groupName := ""
		if entry.Group != nil {
			groupName = entry.Group.Name
		}
		_ = s.dispatcher.EnqueueNotification(ctx, worker.NotificationPayload{
			To:      *entry.Athlete.Email,
			Subject: "A spot opened up for you",
			Body:    fmt.Sprintf("Hi %s, you have been assigned a spot (%s).", entry.Athlete.FirstName, groupName),
		})
	}

	return entryToResponse(entry), nil
}

// ── Delete / BulkDelete ───────────────────────────────────────────────────────
// Soft-cancel only. Positions of remaining entries are never renumbered —
// gaps are expected and permanent.

func (s *waitlistService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	n, err := s.repo.UpdateStatusBulk(ctx, orgID, []uuid.UUID{id}, model.WaitlistStatusCancelled)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("waitlist entry not found")
	}
	return nil
}

func (s *waitlistService) BulkDelete(ctx context.Context, orgID uuid.UUID, req dto.BulkDeleteWaitlistRequest) (int64, error) {
	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return 0, apierror.BadRequest("invalid entry id in list")
	}
	return s.repo.UpdateStatusBulk(ctx, orgID, ids, model.WaitlistStatusCancelled)
}

// ── BulkUpdatePriority ────────────────────────────────────────────────────────

func (s *waitlistService) BulkUpdatePriority(ctx context.Context, orgID uuid.UUID, req dto.BulkUpdatePriorityRequest) (int64, error) {
	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return 0, apierror.BadRequest("invalid entry id in list")
	}
	// Position is untouched — priority only reorders the display
	return s.repo.UpdatePriorityBulk(ctx, orgID, ids, req.Priority)
}

// ── List ──────────────────────────────────────────────────────────────────────

func (s *waitlistService) List(ctx context.Context, orgID uuid.UUID, filter dto.WaitlistFilter) (*dto.WaitlistListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 50
	}
	entries, total, err := s.repo.List(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WaitlistEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, *entryToResponse(&entries[i]))
	}
	return &dto.WaitlistListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func entryToResponse(e *model.WaitlistEntry) *dto.WaitlistEntryResponse {
	resp := &dto.WaitlistEntryResponse{
		ID:                 e.ID.String(),
		AthleteID:          e.AthleteID.String(),
		ReferenceType:      e.ReferenceType,
		PreferredDays:      e.PreferredDays,
		PreferredStartTime: e.PreferredStartTime,
		PreferredEndTime:   e.PreferredEndTime,
		Priority:           e.Priority,
		Position:           e.Position,
		Status:             e.Status,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
	}
	if e.Athlete != nil {
		resp.Athlete = e.Athlete.FirstName + " " + e.Athlete.LastName
	}
	if e.AthleteGroupID != nil {
		gid := e.AthleteGroupID.String()
		resp.AthleteGroupID = &gid
	}
	if e.Group != nil {
		resp.Group = &e.Group.Name
	}
	if e.AssignedAt != nil {
		at := e.AssignedAt.Format(time.RFC3339)
		resp.AssignedAt = &at
	}
	return resp
}
