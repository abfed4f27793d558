package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/infrastructure/repository/memory"
	"github.com/courtside/padel-league/internal/platform/logging"
)

// gatedUserRepository parks the first List call until released, exposing
// the window between a snapshot read and the writes that follow it.
type gatedUserRepository struct {
	user.Repository
	listEntered chan struct{}
	listRelease chan struct{}
	once        sync.Once
}

func (r *gatedUserRepository) List(ctx context.Context) ([]user.User, error) {
	r.once.Do(func() {
		close(r.listEntered)
		<-r.listRelease
	})
	return r.Repository.List(ctx)
}

func TestSnapshotLock_SerializesPairingAndAccept(t *testing.T) {
	a := waitingUser("usr-a", 5, user.AvailabilityBoth)
	b := waitingUser("usr-b", 5, user.AvailabilityBoth)
	c := waitingUser("usr-c", 5, user.AvailabilityBoth)
	c.Status = user.StatusWaitingForPartner

	userRepo := &gatedUserRepository{
		Repository:  memory.NewUserRepository([]user.User{a, b, c}),
		listEntered: make(chan struct{}),
		listRelease: make(chan struct{}),
	}
	pairRepo := memory.NewPairRepository(nil)
	inviteRepo := memory.NewInviteRepository()
	if err := inviteRepo.Create(t.Context(), invite.Invite{
		Code:            "inv-1",
		LeagueType:      user.LeagueFriendly,
		FacilityID:      "eddies",
		CreatedByUserID: "usr-c",
		PartnerEmail:    "usr-a@example.test",
	}); err != nil {
		t.Fatalf("seed invite: %v", err)
	}

	ids := &seqIDGenerator{}
	lock := NewSnapshotLock()
	pairing := NewPairingService(userRepo, pairRepo, ids, logging.NewNop(), lock)
	invites := NewInviteService(userRepo, pairRepo, inviteRepo, ids, lock)

	// Pairing takes the lock and parks inside its snapshot read.
	pairingDone := make(chan error, 1)
	go func() {
		_, err := pairing.RunAutoPairing(context.Background())
		pairingDone <- err
	}()
	<-userRepo.listEntered

	// The accept targets usr-a, who is also in the pairing pool. It must
	// wait for the lock, not interleave with the paused run.
	acceptDone := make(chan error, 1)
	go func() {
		_, err := invites.AcceptInvite(context.Background(), "inv-1", "usr-a")
		acceptDone <- err
	}()

	close(userRepo.listRelease)
	if err := <-pairingDone; err != nil {
		t.Fatalf("auto pairing failed: %v", err)
	}
	if err := <-acceptDone; !errors.Is(err, invite.ErrAlreadyPaired) {
		t.Fatalf("expected the late accept to see usr-a paired, got %v", err)
	}

	pairs, err := pairRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list pairs: %v", err)
	}
	memberships := 0
	for _, p := range pairs {
		if p.HasMember("usr-a") {
			memberships++
		}
	}
	if memberships != 1 {
		t.Fatalf("expected usr-a in exactly 1 pair, got %d of %d pairs", memberships, len(pairs))
	}

	item, _, err := userRepo.GetByID(t.Context(), "usr-a")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if item.Status != user.StatusPaired || item.PairID == "" {
		t.Fatalf("expected usr-a paired with a back-reference, got status=%s pair=%q", item.Status, item.PairID)
	}
}
