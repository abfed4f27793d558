package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/platform/id"
)

type RegisterUserInput struct {
	Name       string
	Email      string
	LeagueType string
}

// UserService covers registration and the profile steps that gate a
// player into the partner pool.
type UserService struct {
	userRepo   user.Repository
	ids        id.Generator
	facilityID string
	now        func() time.Time
	lock       *SnapshotLock
}

func NewUserService(userRepo user.Repository, ids id.Generator, facilityID string, lock *SnapshotLock) *UserService {
	if lock == nil {
		lock = NewSnapshotLock()
	}
	return &UserService{
		userRepo:   userRepo,
		ids:        ids,
		facilityID: facilityID,
		now:        time.Now,
		lock:       lock,
	}
}

func (s *UserService) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetByID")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, false, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}
	return item, exists, nil
}

// Register creates a player in needs_profile state. League type may stay
// unset; invited players inherit it from the invite on accept.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	name := strings.TrimSpace(input.Name)
	email := user.NormalizeEmail(input.Email)
	if name == "" {
		return user.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return user.User{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	var leagueType user.LeagueType
	if strings.TrimSpace(input.LeagueType) != "" {
		parsed, ok := user.ParseLeagueType(input.LeagueType)
		if !ok {
			return user.User{}, fmt.Errorf("%w: unknown league type %q", ErrInvalidInput, input.LeagueType)
		}
		leagueType = parsed
	}

	_, exists, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}
	if exists {
		return user.User{}, fmt.Errorf("%w: email %s is already registered", ErrInvalidInput, email)
	}

	userID, err := s.ids.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	item := user.User{
		ID:         userID,
		Name:       name,
		Email:      email,
		LeagueType: leagueType,
		FacilityID: s.facilityID,
		Status:     user.StatusNeedsProfile,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.userRepo.Create(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return item, nil
}

// CompleteProfile records skill level and availability. A fresh player
// moves on to needs_partner; later edits keep the current status.
func (s *UserService) CompleteProfile(ctx context.Context, userID string, skillLevel int, availability string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.CompleteProfile")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if skillLevel < user.MinSkillLevel || skillLevel > user.MaxSkillLevel {
		return user.User{}, fmt.Errorf("%w: skill level must be between %d and %d", ErrInvalidInput, user.MinSkillLevel, user.MaxSkillLevel)
	}
	parsedAvailability, ok := user.ParseAvailability(availability)
	if !ok {
		return user.User{}, fmt.Errorf("%w: unknown availability %q", ErrInvalidInput, availability)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	item.SkillLevel = &skillLevel
	item.Availability = &parsedAvailability
	if item.Status == user.StatusNeedsProfile {
		item.Status = user.StatusNeedsPartner
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("update user profile: %w", err)
	}
	return item, nil
}

// JoinSolo puts a friendly-league player into the auto-pairing pool.
func (s *UserService) JoinSolo(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.JoinSolo")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	if item.PairID != "" {
		return user.User{}, fmt.Errorf("%w: user %s already has a partner", ErrInvalidInput, userID)
	}
	if item.LeagueType != user.LeagueFriendly {
		return user.User{}, fmt.Errorf("%w: solo signup is only available in the friendly league", ErrInvalidInput)
	}
	if !item.ProfileComplete() {
		return user.User{}, fmt.Errorf("%w: complete your profile before joining solo", ErrInvalidInput)
	}

	item.Status = user.StatusWaitingForPair
	item.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("update user status: %w", err)
	}
	return item, nil
}
