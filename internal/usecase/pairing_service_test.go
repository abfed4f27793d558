package usecase

import (
	"testing"

	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/infrastructure/repository/memory"
	"github.com/courtside/padel-league/internal/platform/logging"
)

type pairingFixture struct {
	service  *PairingService
	userRepo *memory.UserRepository
	pairRepo *memory.PairRepository
}

func newPairingFixture(seed []user.User) pairingFixture {
	userRepo := memory.NewUserRepository(seed)
	pairRepo := memory.NewPairRepository(nil)
	return pairingFixture{
		service:  NewPairingService(userRepo, pairRepo, &seqIDGenerator{}, logging.NewNop(), nil),
		userRepo: userRepo,
		pairRepo: pairRepo,
	}
}

func TestPairingService_PairsBySkillProximity(t *testing.T) {
	fx := newPairingFixture([]user.User{
		waitingUser("usr-a", 3, user.AvailabilityBoth),
		waitingUser("usr-b", 8, user.AvailabilityBoth),
		waitingUser("usr-c", 4, user.AvailabilityBoth),
		waitingUser("usr-d", 7, user.AvailabilityBoth),
	})

	formed, err := fx.service.RunAutoPairing(t.Context())
	if err != nil {
		t.Fatalf("auto pairing failed: %v", err)
	}
	if len(formed) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(formed))
	}

	// Skill order is a(3), c(4), d(7), b(8).
	if !formed[0].HasMember("usr-a") || !formed[0].HasMember("usr-c") {
		t.Fatalf("expected a+c as first pair, got %+v", formed[0])
	}
	if !formed[1].HasMember("usr-d") || !formed[1].HasMember("usr-b") {
		t.Fatalf("expected d+b as second pair, got %+v", formed[1])
	}

	for _, p := range formed {
		for _, memberID := range p.MemberIDs() {
			item, _, err := fx.userRepo.GetByID(t.Context(), memberID)
			if err != nil {
				t.Fatalf("get user %s: %v", memberID, err)
			}
			if item.Status != user.StatusPaired || item.PairID != p.ID {
				t.Fatalf("expected %s paired into %s, got status=%s pair=%s", memberID, p.ID, item.Status, item.PairID)
			}
		}
	}
}

func TestPairingService_SkillGapCap(t *testing.T) {
	fx := newPairingFixture([]user.User{
		waitingUser("usr-a", 2, user.AvailabilityBoth),
		waitingUser("usr-b", 9, user.AvailabilityBoth),
	})

	formed, err := fx.service.RunAutoPairing(t.Context())
	if err != nil {
		t.Fatalf("auto pairing failed: %v", err)
	}
	if len(formed) != 0 {
		t.Fatalf("expected no pairs across a 7 level gap, got %d", len(formed))
	}

	item, _, err := fx.userRepo.GetByID(t.Context(), "usr-a")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if item.Status != user.StatusWaitingForPair {
		t.Fatalf("expected unmatched user to keep waiting, got %s", item.Status)
	}
}

func TestPairingService_PrefersAvailabilityOverlap(t *testing.T) {
	// Same skill everywhere; only availability differentiates the cost.
	fx := newPairingFixture([]user.User{
		waitingUser("usr-a", 5, user.AvailabilityWeeknights),
		waitingUser("usr-b", 5, user.AvailabilityWeekends),
		waitingUser("usr-c", 5, user.AvailabilityWeeknights),
	})

	formed, err := fx.service.RunAutoPairing(t.Context())
	if err != nil {
		t.Fatalf("auto pairing failed: %v", err)
	}
	if len(formed) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(formed))
	}
	if !formed[0].HasMember("usr-a") || !formed[0].HasMember("usr-c") {
		t.Fatalf("expected the weeknights players matched, got %+v", formed[0])
	}
}

func TestPairingService_CaptainByRegistrationOrder(t *testing.T) {
	// usr-b registered first but sorts second on skill.
	fx := newPairingFixture([]user.User{
		waitingUser("usr-b", 6, user.AvailabilityBoth),
		waitingUser("usr-a", 5, user.AvailabilityBoth),
	})

	formed, err := fx.service.RunAutoPairing(t.Context())
	if err != nil {
		t.Fatalf("auto pairing failed: %v", err)
	}
	if len(formed) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(formed))
	}
	if formed[0].CaptainUserID != "usr-b" {
		t.Fatalf("expected the earlier registration as captain, got %s", formed[0].CaptainUserID)
	}
}

func TestPairingService_IgnoresIneligibleUsers(t *testing.T) {
	competitive := waitingUser("usr-comp", 5, user.AvailabilityBoth)
	competitive.LeagueType = user.LeagueCompetitive

	incomplete := waitingUser("usr-raw", 5, user.AvailabilityBoth)
	incomplete.SkillLevel = nil
	incomplete.Availability = nil

	notWaiting := waitingUser("usr-idle", 5, user.AvailabilityBoth)
	notWaiting.Status = user.StatusNeedsPartner

	fx := newPairingFixture([]user.User{
		waitingUser("usr-a", 5, user.AvailabilityBoth),
		competitive,
		incomplete,
		notWaiting,
	})

	formed, err := fx.service.RunAutoPairing(t.Context())
	if err != nil {
		t.Fatalf("auto pairing failed: %v", err)
	}
	if len(formed) != 0 {
		t.Fatalf("expected no pairs from a pool of one eligible user, got %d", len(formed))
	}
}

func TestPairingService_Idempotent(t *testing.T) {
	fx := newPairingFixture([]user.User{
		waitingUser("usr-a", 5, user.AvailabilityBoth),
		waitingUser("usr-b", 5, user.AvailabilityBoth),
		waitingUser("usr-c", 9, user.AvailabilityBoth),
	})

	first, err := fx.service.RunAutoPairing(t.Context())
	if err != nil {
		t.Fatalf("auto pairing failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 pair on first run, got %d", len(first))
	}

	second, err := fx.service.RunAutoPairing(t.Context())
	if err != nil {
		t.Fatalf("second auto pairing failed: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("expected no new pairs on an unchanged pool, got %d", len(second))
	}

	pairs, err := fx.pairRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list pairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected exactly 1 stored pair, got %d", len(pairs))
	}
}
