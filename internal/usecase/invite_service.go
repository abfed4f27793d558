package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/platform/id"
)

// InviteService forms pairs explicitly: one player invites a partner by
// email, the partner accepts with the one-time code.
type InviteService struct {
	userRepo   user.Repository
	pairRepo   pair.Repository
	inviteRepo invite.Repository
	ids        id.Generator
	now        func() time.Time
	lock       *SnapshotLock
}

func NewInviteService(
	userRepo user.Repository,
	pairRepo pair.Repository,
	inviteRepo invite.Repository,
	ids id.Generator,
	lock *SnapshotLock,
) *InviteService {
	if lock == nil {
		lock = NewSnapshotLock()
	}
	return &InviteService{
		userRepo:   userRepo,
		pairRepo:   pairRepo,
		inviteRepo: inviteRepo,
		ids:        ids,
		now:        time.Now,
		lock:       lock,
	}
}

// CreateInvite issues a one-time code for the given partner email. League
// and facility are copied from the creator so accept-time checks compare
// against the state the invite was sent under.
func (s *InviteService) CreateInvite(ctx context.Context, creatorID, partnerEmail string) (invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.CreateInvite")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	creatorID = strings.TrimSpace(creatorID)
	partnerEmail = user.NormalizeEmail(partnerEmail)
	if creatorID == "" {
		return invite.Invite{}, fmt.Errorf("%w: creator user_id is required", ErrInvalidInput)
	}
	if partnerEmail == "" || !strings.Contains(partnerEmail, "@") {
		return invite.Invite{}, fmt.Errorf("%w: a valid partner email is required", ErrInvalidInput)
	}

	creator, exists, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("get invite creator: %w", err)
	}
	if !exists {
		return invite.Invite{}, fmt.Errorf("%w: user=%s", ErrNotFound, creatorID)
	}
	if creator.PairID != "" {
		return invite.Invite{}, invite.ErrAlreadyPaired
	}
	if creator.Email == partnerEmail {
		return invite.Invite{}, fmt.Errorf("%w: you cannot invite yourself", ErrInvalidInput)
	}

	code, err := s.ids.NewCode()
	if err != nil {
		return invite.Invite{}, fmt.Errorf("generate invite code: %w", err)
	}

	item := invite.Invite{
		Code:            code,
		LeagueType:      creator.LeagueType,
		FacilityID:      creator.FacilityID,
		CreatedByUserID: creator.ID,
		PartnerEmail:    partnerEmail,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.inviteRepo.Create(ctx, item); err != nil {
		return invite.Invite{}, fmt.Errorf("create invite: %w", err)
	}

	creator.Status = user.StatusWaitingForPartner
	creator.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, creator); err != nil {
		return invite.Invite{}, fmt.Errorf("update invite creator status: %w", err)
	}

	return item, nil
}

// AcceptInvite redeems a code and forms the pair, creator as captain.
// Each failure condition carries its own sentinel so callers can tell a
// stale code from a league clash.
func (s *InviteService) AcceptInvite(ctx context.Context, code, accepterID string) (pair.Pair, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.AcceptInvite")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	code = strings.TrimSpace(code)
	accepterID = strings.TrimSpace(accepterID)
	if code == "" || accepterID == "" {
		return pair.Pair{}, fmt.Errorf("%w: code and user_id are required", ErrInvalidInput)
	}

	item, exists, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		return pair.Pair{}, fmt.Errorf("get invite by code: %w", err)
	}
	if !exists {
		return pair.Pair{}, invite.ErrNotFound
	}
	if item.Accepted() {
		return pair.Pair{}, invite.ErrAlreadyAccepted
	}

	accepter, exists, err := s.userRepo.GetByID(ctx, accepterID)
	if err != nil {
		return pair.Pair{}, fmt.Errorf("get invite accepter: %w", err)
	}
	if !exists {
		return pair.Pair{}, fmt.Errorf("%w: user=%s", invite.ErrUserMissing, accepterID)
	}
	creator, exists, err := s.userRepo.GetByID(ctx, item.CreatedByUserID)
	if err != nil {
		return pair.Pair{}, fmt.Errorf("get invite creator: %w", err)
	}
	if !exists {
		return pair.Pair{}, fmt.Errorf("%w: user=%s", invite.ErrUserMissing, item.CreatedByUserID)
	}

	if user.NormalizeEmail(accepter.Email) != item.PartnerEmail {
		return pair.Pair{}, invite.ErrEmailMismatch
	}
	if accepter.LeagueType != "" && accepter.LeagueType != item.LeagueType {
		return pair.Pair{}, invite.ErrLeagueMismatch
	}
	if accepter.FacilityID != "" && accepter.FacilityID != item.FacilityID {
		return pair.Pair{}, invite.ErrFacilityMismatch
	}
	if creator.PairID != "" || accepter.PairID != "" {
		return pair.Pair{}, invite.ErrAlreadyPaired
	}

	pairID, err := s.ids.NewID()
	if err != nil {
		return pair.Pair{}, fmt.Errorf("generate pair id: %w", err)
	}

	now := s.now().UTC()
	formed := pair.Pair{
		ID:            pairID,
		LeagueType:    item.LeagueType,
		FacilityID:    item.FacilityID,
		CaptainUserID: creator.ID,
		UserAID:       creator.ID,
		UserBID:       accepter.ID,
		CreatedAt:     now,
	}
	if err := s.pairRepo.Create(ctx, formed); err != nil {
		return pair.Pair{}, fmt.Errorf("create pair: %w", err)
	}

	creator.PairID = formed.ID
	creator.Status = user.StatusPaired
	creator.UpdatedAt = now
	if err := s.userRepo.Update(ctx, creator); err != nil {
		return pair.Pair{}, fmt.Errorf("update invite creator: %w", err)
	}

	accepter.PairID = formed.ID
	accepter.Status = user.StatusPaired
	accepter.LeagueType = item.LeagueType
	accepter.FacilityID = item.FacilityID
	accepter.UpdatedAt = now
	if err := s.userRepo.Update(ctx, accepter); err != nil {
		return pair.Pair{}, fmt.Errorf("update invite accepter: %w", err)
	}

	item.AcceptedByUserID = accepter.ID
	if err := s.inviteRepo.Update(ctx, item); err != nil {
		return pair.Pair{}, fmt.Errorf("mark invite accepted: %w", err)
	}

	return formed, nil
}

func (s *InviteService) ListPendingForEmail(ctx context.Context, email string) ([]invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.ListPendingForEmail")
	defer span.End()

	email = user.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	items, err := s.inviteRepo.ListPendingByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list pending invites: %w", err)
	}
	return items, nil
}
