package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"
	"sportclub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory fakes ───────────────────────────────────────────────────────────

type fakeAthleteRepo struct {
	athletes map[uuid.UUID]*model.Athlete
}

func newFakeAthleteRepo() *fakeAthleteRepo {
	return &fakeAthleteRepo{athletes: make(map[uuid.UUID]*model.Athlete)}
}

func (r *fakeAthleteRepo) add(orgID uuid.UUID) *model.Athlete {
	a := &model.Athlete{ID: uuid.New(), OrganizationID: orgID, FirstName: "Alex", LastName: "Rivera", Active: true}
	r.athletes[a.ID] = a
	return a
}

func (r *fakeAthleteRepo) Create(_ context.Context, a *model.Athlete) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.athletes[a.ID] = a
	return nil
}

func (r *fakeAthleteRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*model.Athlete, error) {
	a, ok := r.athletes[id]
	if !ok || a.OrganizationID != orgID {
		return nil, errors.New("not found")
	}
	return a, nil
}

func (r *fakeAthleteRepo) List(_ context.Context, orgID uuid.UUID, _ dto.AthleteFilter) ([]model.Athlete, int64, error) {
	var out []model.Athlete
	for _, a := range r.athletes {
		if a.OrganizationID == orgID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAthleteRepo) Update(_ context.Context, a *model.Athlete) error {
	r.athletes[a.ID] = a
	return nil
}

func (r *fakeAthleteRepo) SoftDelete(_ context.Context, _, id uuid.UUID) error {
	if a, ok := r.athletes[id]; ok {
		a.Active = false
	}
	return nil
}

var _ repository.AthleteRepository = (*fakeAthleteRepo)(nil)

type fakeGroupRepo struct {
	groups      map[uuid.UUID]*model.AthleteGroup
	memberships []model.GroupMembership
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*model.AthleteGroup)}
}

func (r *fakeGroupRepo) add(orgID uuid.UUID) *model.AthleteGroup {
	g := &model.AthleteGroup{ID: uuid.New(), OrganizationID: orgID, Name: "U14", Active: true}
	r.groups[g.ID] = g
	return g
}

func (r *fakeGroupRepo) Create(_ context.Context, g *model.AthleteGroup) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.groups[g.ID] = g
	return nil
}

func (r *fakeGroupRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*model.AthleteGroup, error) {
	g, ok := r.groups[id]
	if !ok || g.OrganizationID != orgID {
		return nil, errors.New("not found")
	}
	return g, nil
}

func (r *fakeGroupRepo) List(_ context.Context, orgID uuid.UUID) ([]model.AthleteGroup, error) {
	var out []model.AthleteGroup
	for _, g := range r.groups {
		if g.OrganizationID == orgID && g.Active {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) Update(_ context.Context, g *model.AthleteGroup) error {
	r.groups[g.ID] = g
	return nil
}

func (r *fakeGroupRepo) CountMembers(_ context.Context, groupID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.memberships {
		if m.AthleteGroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (r *fakeGroupRepo) ListMembers(_ context.Context, _, groupID uuid.UUID) ([]model.GroupMembership, error) {
	var out []model.GroupMembership
	for _, m := range r.memberships {
		if m.AthleteGroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) FindMembership(_ context.Context, groupID, athleteID uuid.UUID) (*model.GroupMembership, error) {
	for i := range r.memberships {
		if r.memberships[i].AthleteGroupID == groupID && r.memberships[i].AthleteID == athleteID {
			return &r.memberships[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeGroupRepo) CreateMembershipTx(_ *gorm.DB, m *model.GroupMembership) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.memberships = append(r.memberships, *m)
	return nil
}

var _ repository.GroupRepository = (*fakeGroupRepo)(nil)

type fakeWaitlistRepo struct {
	entries map[uuid.UUID]*model.WaitlistEntry
}

func newFakeWaitlistRepo() *fakeWaitlistRepo {
	return &fakeWaitlistRepo{entries: make(map[uuid.UUID]*model.WaitlistEntry)}
}

func (r *fakeWaitlistRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*model.WaitlistEntry, error) {
	e, ok := r.entries[id]
	if !ok || e.OrganizationID != orgID {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (r *fakeWaitlistRepo) FindWaitingByAthleteAndGroup(_ context.Context, orgID, athleteID, groupID uuid.UUID) (*model.WaitlistEntry, error) {
	for _, e := range r.entries {
		if e.OrganizationID == orgID && e.AthleteID == athleteID &&
			e.AthleteGroupID != nil && *e.AthleteGroupID == groupID &&
			e.Status == model.WaitlistStatusWaiting {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeWaitlistRepo) List(_ context.Context, orgID uuid.UUID, _ dto.WaitlistFilter) ([]model.WaitlistEntry, int64, error) {
	var out []model.WaitlistEntry
	for _, e := range r.entries {
		if e.OrganizationID == orgID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeWaitlistRepo) UpdateStatusBulk(_ context.Context, orgID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	var n int64
	for _, id := range ids {
		e, ok := r.entries[id]
		if ok && e.OrganizationID == orgID && e.Status == model.WaitlistStatusWaiting {
			e.Status = status
			n++
		}
	}
	return n, nil
}

func (r *fakeWaitlistRepo) UpdatePriorityBulk(_ context.Context, orgID uuid.UUID, ids []uuid.UUID, priority string) (int64, error) {
	var n int64
	for _, id := range ids {
		e, ok := r.entries[id]
		if ok && e.OrganizationID == orgID {
			e.Priority = priority
			n++
		}
	}
	return n, nil
}

func (r *fakeWaitlistRepo) CreateTx(_ *gorm.DB, e *model.WaitlistEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	r.entries[e.ID] = e
	return nil
}

func (r *fakeWaitlistRepo) UpdateTx(_ *gorm.DB, e *model.WaitlistEntry) error {
	r.entries[e.ID] = e
	return nil
}

func (r *fakeWaitlistRepo) MaxWaitingPosition(_ *gorm.DB, orgID uuid.UUID, referenceType string, groupID *uuid.UUID) (int, error) {
	max := 0
	for _, e := range r.entries {
		if e.OrganizationID != orgID || e.ReferenceType != referenceType || e.Status != model.WaitlistStatusWaiting {
			continue
		}
		if groupID != nil && (e.AthleteGroupID == nil || *e.AthleteGroupID != *groupID) {
			continue
		}
		if e.Position > max {
			max = e.Position
		}
	}
	return max, nil
}

func (r *fakeWaitlistRepo) DB() *gorm.DB { return nil }

var _ repository.WaitlistRepository = (*fakeWaitlistRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func newWaitlistFixture() (service.WaitlistService, *fakeWaitlistRepo, *fakeAthleteRepo, *fakeGroupRepo, uuid.UUID) {
	wlRepo := newFakeWaitlistRepo()
	athRepo := newFakeAthleteRepo()
	grpRepo := newFakeGroupRepo()
	orgID := uuid.New()
	svc := service.NewWaitlistService(wlRepo, athRepo, grpRepo, nil)
	return svc, wlRepo, athRepo, grpRepo, orgID
}

func groupEntryRequest(athleteID, groupID uuid.UUID) dto.CreateWaitlistEntryRequest {
	gid := groupID.String()
	return dto.CreateWaitlistEntryRequest{
		AthleteID:      athleteID.String(),
		ReferenceType:  model.WaitlistRefGroup,
		AthleteGroupID: &gid,
	}
}

func TestWaitlistPositionsStrictlyIncreasing(t *testing.T) {
	svc, _, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)

	for i := 1; i <= 3; i++ {
		athlete := athRepo.add(orgID)
		resp, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
		require.NoError(t, err)
		assert.Equal(t, i, resp.Position)
		assert.Equal(t, model.WaitlistStatusWaiting, resp.Status)
	}
}

func TestWaitlistPositionsIndependentPerGroup(t *testing.T) {
	svc, _, athRepo, grpRepo, orgID := newWaitlistFixture()
	groupA := grpRepo.add(orgID)
	groupB := grpRepo.add(orgID)

	a1 := athRepo.add(orgID)
	a2 := athRepo.add(orgID)

	respA, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(a1.ID, groupA.ID))
	require.NoError(t, err)
	respB, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(a2.ID, groupB.ID))
	require.NoError(t, err)

	// Each group scope starts its own sequence
	assert.Equal(t, 1, respA.Position)
	assert.Equal(t, 1, respB.Position)
}

func TestWaitlistDuplicateWaitingEntryConflict(t *testing.T) {
	svc, _, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)
	athlete := athRepo.add(orgID)

	_, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
	assert.ErrorContains(t, err, "already has a waiting entry")
}

func TestWaitlistCreateUnknownAthlete(t *testing.T) {
	svc, _, _, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)

	_, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(uuid.New(), group.ID))
	assert.ErrorContains(t, err, "athlete not found")
}

func TestWaitlistAssignCreatesMembership(t *testing.T) {
	svc, _, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)
	athlete := athRepo.add(orgID)

	created, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
	require.NoError(t, err)

	resp, err := svc.Assign(context.Background(), orgID, uuid.New(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, model.WaitlistStatusAssigned, resp.Status)
	assert.NotNil(t, resp.AssignedAt)
	require.Len(t, grpRepo.memberships, 1)
	assert.Equal(t, athlete.ID, grpRepo.memberships[0].AthleteID)
}

func TestWaitlistAssignIdempotentMembership(t *testing.T) {
	svc, _, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)
	athlete := athRepo.add(orgID)

	// Athlete already enrolled before the waitlist entry is assigned
	grpRepo.memberships = append(grpRepo.memberships, model.GroupMembership{
		ID: uuid.New(), OrganizationID: orgID, AthleteGroupID: group.ID, AthleteID: athlete.ID,
	})

	created, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), orgID, uuid.New(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	// No duplicate membership row
	assert.Len(t, grpRepo.memberships, 1)
}

func TestWaitlistAssignNonWaitingNotFound(t *testing.T) {
	svc, _, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)
	athlete := athRepo.add(orgID)

	created, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = svc.Assign(context.Background(), orgID, uuid.New(), id)
	require.NoError(t, err)

	// Second assign: entry is no longer waiting
	_, err = svc.Assign(context.Background(), orgID, uuid.New(), id)
	assert.ErrorContains(t, err, "not waiting")
	assert.Len(t, grpRepo.memberships, 1)
}

func TestWaitlistDeleteSoftCancelNoRenumbering(t *testing.T) {
	svc, wlRepo, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		athlete := athRepo.add(orgID)
		resp, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
		require.NoError(t, err)
		ids = append(ids, uuid.MustParse(resp.ID))
	}

	// Cancel the middle entry
	require.NoError(t, svc.Delete(context.Background(), orgID, ids[1]))
	assert.Equal(t, model.WaitlistStatusCancelled, wlRepo.entries[ids[1]].Status)

	// Remaining positions keep their gaps
	assert.Equal(t, 1, wlRepo.entries[ids[0]].Position)
	assert.Equal(t, 3, wlRepo.entries[ids[2]].Position)

	// New entry continues after the highest waiting position
	athlete := athRepo.add(orgID)
	resp, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Position)
}

func TestWaitlistDeleteUnknownEntryNotFound(t *testing.T) {
	svc, _, _, _, orgID := newWaitlistFixture()
	err := svc.Delete(context.Background(), orgID, uuid.New())
	assert.ErrorContains(t, err, "not found")
}

func TestWaitlistBulkDeleteSkipsNonWaiting(t *testing.T) {
	svc, _, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)

	a1 := athRepo.add(orgID)
	a2 := athRepo.add(orgID)
	r1, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(a1.ID, group.ID))
	require.NoError(t, err)
	r2, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(a2.ID, group.ID))
	require.NoError(t, err)

	// Assign the first — bulk delete must only touch the second
	_, err = svc.Assign(context.Background(), orgID, uuid.New(), uuid.MustParse(r1.ID))
	require.NoError(t, err)

	n, err := svc.BulkDelete(context.Background(), orgID, dto.BulkDeleteWaitlistRequest{
		IDs: []string{r1.ID, r2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestWaitlistBulkUpdatePriority(t *testing.T) {
	svc, wlRepo, athRepo, grpRepo, orgID := newWaitlistFixture()
	group := grpRepo.add(orgID)
	athlete := athRepo.add(orgID)

	resp, err := svc.Create(context.Background(), orgID, uuid.New(), groupEntryRequest(athlete.ID, group.ID))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	n, err := svc.BulkUpdatePriority(context.Background(), orgID, dto.BulkUpdatePriorityRequest{
		IDs: []string{resp.ID}, Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "high", wlRepo.entries[id].Priority)
	// Position untouched
	assert.Equal(t, 1, wlRepo.entries[id].Position)
}
