package usecase

import (
	"errors"
	"testing"

	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/infrastructure/repository/memory"
)

type inviteFixture struct {
	service  *InviteService
	userRepo *memory.UserRepository
	pairRepo *memory.PairRepository
}

func newInviteFixture(seed []user.User) inviteFixture {
	userRepo := memory.NewUserRepository(seed)
	pairRepo := memory.NewPairRepository(nil)
	return inviteFixture{
		service:  NewInviteService(userRepo, pairRepo, memory.NewInviteRepository(), &seqIDGenerator{}, nil),
		userRepo: userRepo,
		pairRepo: pairRepo,
	}
}

func competitiveUser(id, email string) user.User {
	skill := 7
	availability := user.AvailabilityBoth
	return user.User{
		ID:           id,
		Name:         "Player " + id,
		Email:        email,
		LeagueType:   user.LeagueCompetitive,
		FacilityID:   "eddies",
		SkillLevel:   &skill,
		Availability: &availability,
		Status:       user.StatusNeedsPartner,
	}
}

func TestInviteService_CreateInvite(t *testing.T) {
	fx := newInviteFixture([]user.User{competitiveUser("usr-a", "a@example.test")})

	item, err := fx.service.CreateInvite(t.Context(), "usr-a", " Partner@Example.Test ")
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}

	if item.PartnerEmail != "partner@example.test" {
		t.Fatalf("expected normalized partner email, got %s", item.PartnerEmail)
	}
	if item.LeagueType != user.LeagueCompetitive || item.FacilityID != "eddies" {
		t.Fatalf("expected league and facility copied from creator, got %s/%s", item.LeagueType, item.FacilityID)
	}
	if item.Code == "" || item.Accepted() {
		t.Fatalf("expected fresh pending invite, got %+v", item)
	}

	creator, _, err := fx.userRepo.GetByID(t.Context(), "usr-a")
	if err != nil {
		t.Fatalf("get creator: %v", err)
	}
	if creator.Status != user.StatusWaitingForPartner {
		t.Fatalf("expected creator waiting_for_partner, got %s", creator.Status)
	}
}

func TestInviteService_CreateInvite_SelfInvite(t *testing.T) {
	fx := newInviteFixture([]user.User{competitiveUser("usr-a", "a@example.test")})

	if _, err := fx.service.CreateInvite(t.Context(), "usr-a", "a@example.test"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self invite, got %v", err)
	}
}

func TestInviteService_AcceptInvite(t *testing.T) {
	fx := newInviteFixture([]user.User{
		competitiveUser("usr-a", "a@example.test"),
		competitiveUser("usr-b", "b@example.test"),
	})

	created, err := fx.service.CreateInvite(t.Context(), "usr-a", "b@example.test")
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}

	formed, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-b")
	if err != nil {
		t.Fatalf("accept invite failed: %v", err)
	}

	if formed.CaptainUserID != "usr-a" {
		t.Fatalf("expected creator as captain, got %s", formed.CaptainUserID)
	}
	if !formed.HasMember("usr-a") || !formed.HasMember("usr-b") {
		t.Fatalf("expected both users in the pair: %+v", formed)
	}

	for _, userID := range []string{"usr-a", "usr-b"} {
		item, _, err := fx.userRepo.GetByID(t.Context(), userID)
		if err != nil {
			t.Fatalf("get user %s: %v", userID, err)
		}
		if item.Status != user.StatusPaired || item.PairID != formed.ID {
			t.Fatalf("expected %s paired into %s, got status=%s pair=%s", userID, formed.ID, item.Status, item.PairID)
		}
	}

	if _, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-b"); !errors.Is(err, invite.ErrAlreadyAccepted) {
		t.Fatalf("expected ErrAlreadyAccepted on reuse, got %v", err)
	}
}

func TestInviteService_AcceptInvite_Mismatches(t *testing.T) {
	wrongEmail := competitiveUser("usr-c", "c@example.test")

	wrongLeague := competitiveUser("usr-d", "b@example.test")
	wrongLeague.LeagueType = user.LeagueFriendly

	wrongFacility := competitiveUser("usr-e", "b@example.test")
	wrongFacility.FacilityID = "other-club"

	fx := newInviteFixture([]user.User{
		competitiveUser("usr-a", "a@example.test"),
		wrongEmail,
		wrongLeague,
		wrongFacility,
	})

	created, err := fx.service.CreateInvite(t.Context(), "usr-a", "b@example.test")
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}

	if _, err := fx.service.AcceptInvite(t.Context(), "bogus-code", "usr-c"); !errors.Is(err, invite.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-ghost"); !errors.Is(err, invite.ErrUserMissing) {
		t.Fatalf("expected ErrUserMissing, got %v", err)
	}
	if _, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-c"); !errors.Is(err, invite.ErrEmailMismatch) {
		t.Fatalf("expected ErrEmailMismatch, got %v", err)
	}
	if _, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-d"); !errors.Is(err, invite.ErrLeagueMismatch) {
		t.Fatalf("expected ErrLeagueMismatch, got %v", err)
	}
	if _, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-e"); !errors.Is(err, invite.ErrFacilityMismatch) {
		t.Fatalf("expected ErrFacilityMismatch, got %v", err)
	}
}

func TestInviteService_AcceptInvite_AdoptsLeagueWhenUnset(t *testing.T) {
	undecided := competitiveUser("usr-b", "b@example.test")
	undecided.LeagueType = ""
	undecided.FacilityID = ""

	fx := newInviteFixture([]user.User{
		competitiveUser("usr-a", "a@example.test"),
		undecided,
	})

	created, err := fx.service.CreateInvite(t.Context(), "usr-a", "b@example.test")
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}
	if _, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-b"); err != nil {
		t.Fatalf("accept invite failed: %v", err)
	}

	accepter, _, err := fx.userRepo.GetByID(t.Context(), "usr-b")
	if err != nil {
		t.Fatalf("get accepter: %v", err)
	}
	if accepter.LeagueType != user.LeagueCompetitive || accepter.FacilityID != "eddies" {
		t.Fatalf("expected accepter normalized to invite league and facility, got %s/%s", accepter.LeagueType, accepter.FacilityID)
	}
}

func TestInviteService_AcceptInvite_AlreadyPaired(t *testing.T) {
	fx := newInviteFixture([]user.User{
		competitiveUser("usr-a", "a@example.test"),
		competitiveUser("usr-b", "b@example.test"),
		competitiveUser("usr-c", "b2@example.test"),
	})

	first, err := fx.service.CreateInvite(t.Context(), "usr-a", "b@example.test")
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}
	second, err := fx.service.CreateInvite(t.Context(), "usr-c", "b@example.test")
	if err != nil {
		t.Fatalf("create second invite failed: %v", err)
	}

	if _, err := fx.service.AcceptInvite(t.Context(), first.Code, "usr-b"); err != nil {
		t.Fatalf("accept invite failed: %v", err)
	}
	if _, err := fx.service.AcceptInvite(t.Context(), second.Code, "usr-b"); !errors.Is(err, invite.ErrAlreadyPaired) {
		t.Fatalf("expected ErrAlreadyPaired, got %v", err)
	}
}

func TestInviteService_ListPendingForEmail(t *testing.T) {
	fx := newInviteFixture([]user.User{
		competitiveUser("usr-a", "a@example.test"),
		competitiveUser("usr-b", "b@example.test"),
	})

	created, err := fx.service.CreateInvite(t.Context(), "usr-a", "b@example.test")
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}

	pending, err := fx.service.ListPendingForEmail(t.Context(), "B@example.test")
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Code != created.Code {
		t.Fatalf("expected the created invite, got %+v", pending)
	}

	if _, err := fx.service.AcceptInvite(t.Context(), created.Code, "usr-b"); err != nil {
		t.Fatalf("accept invite failed: %v", err)
	}

	pending, err = fx.service.ListPendingForEmail(t.Context(), "b@example.test")
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending invites after accept, got %+v", pending)
	}
}
