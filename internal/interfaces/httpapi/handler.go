package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/platform/logging"
	"github.com/courtside/padel-league/internal/usecase"
)

type Handler struct {
	userService      *usecase.UserService
	inviteService    *usecase.InviteService
	pairingService   *usecase.PairingService
	fixtureService   *usecase.FixtureService
	matchService     *usecase.MatchService
	integrityService *usecase.IntegrityService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	userService *usecase.UserService,
	inviteService *usecase.InviteService,
	pairingService *usecase.PairingService,
	fixtureService *usecase.FixtureService,
	matchService *usecase.MatchService,
	integrityService *usecase.IntegrityService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		userService:      userService,
		inviteService:    inviteService,
		pairingService:   pairingService,
		fixtureService:   fixtureService,
		matchService:     matchService,
		integrityService: integrityService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterUser")
	defer span.End()

	var req registerUserRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.Register(ctx, usecase.RegisterUserInput{
		Name:       req.Name,
		Email:      req.Email,
		LeagueType: req.LeagueType,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register user failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(ctx, item))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUser")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	item, exists, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: user %s", usecase.ErrNotFound, userID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, item))
}

func (h *Handler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteProfile")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	var req completeProfileRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.CompleteProfile(ctx, userID, req.SkillLevel, req.Availability)
	if err != nil {
		h.logger.WarnContext(ctx, "complete profile failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, item))
}

func (h *Handler) JoinSolo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinSolo")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	item, err := h.userService.JoinSolo(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "join solo failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, item))
}

func (h *Handler) ListUserMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserMatches")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	matches, err := h.matchService.ListForUser(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list user matches failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateInvite")
	defer span.End()

	var req createInviteRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.inviteService.CreateInvite(ctx, req.CreatorID, req.PartnerEmail)
	if err != nil {
		h.logger.WarnContext(ctx, "create invite failed", "creator_id", req.CreatorID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, inviteToDTO(ctx, item))
}

func (h *Handler) ListPendingInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPendingInvites")
	defer span.End()

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if err := h.validateRequest(ctx, listInvitesRequest{Email: email}); err != nil {
		writeError(ctx, w, err)
		return
	}

	invites, err := h.inviteService.ListPendingForEmail(ctx, email)
	if err != nil {
		h.logger.WarnContext(ctx, "list pending invites failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]inviteDTO, 0, len(invites))
	for _, i := range invites {
		items = append(items, inviteToDTO(ctx, i))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptInvite")
	defer span.End()

	var req acceptInviteRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.inviteService.AcceptInvite(ctx, req.Code, req.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "accept invite failed", "code", req.Code, "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pairToDTO(ctx, item))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, exists, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: match %s", usecase.ErrNotFound, matchID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBooking")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req updateBookingRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var scheduledAt *time.Time
	if strings.TrimSpace(req.ScheduledAt) != "" {
		parsed, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: scheduledAt must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		scheduledAt = &parsed
	}

	item, err := h.matchService.UpdateBooking(ctx, matchID, req.UserID, scheduledAt, req.CourtNote)
	if err != nil {
		h.logger.WarnContext(ctx, "update booking failed", "match_id", matchID, "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req submitScoreRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.SubmitScore(ctx, matchID, req.UserID, req.Sets)
	if err != nil {
		h.logger.WarnContext(ctx, "submit score failed", "match_id", matchID, "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) ConfirmScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmScore")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.matchService.ConfirmScore(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "confirm score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) DisputeScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DisputeScore")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req disputeScoreRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.DisputeScore(ctx, matchID, req.UserID, req.Sets)
	if err != nil {
		h.logger.WarnContext(ctx, "dispute score failed", "match_id", matchID, "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type registerUserRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	LeagueType string `json:"leagueType" validate:"omitempty,oneof=friendly competitive"`
}

type completeProfileRequest struct {
	SkillLevel   int    `json:"skillLevel" validate:"required,min=1,max=10"`
	Availability string `json:"availability" validate:"required,oneof=weeknights weekends both"`
}

type createInviteRequest struct {
	CreatorID    string `json:"creatorId" validate:"required"`
	PartnerEmail string `json:"partnerEmail" validate:"required,email"`
}

type listInvitesRequest struct {
	Email string `validate:"required,email"`
}

type acceptInviteRequest struct {
	Code   string `json:"code" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

type updateBookingRequest struct {
	UserID      string `json:"userId" validate:"required"`
	ScheduledAt string `json:"scheduledAt"`
	CourtNote   string `json:"courtNote" validate:"max=200"`
}

// Set count and format are validated by the match domain so clients get
// the score-specific error reason rather than a generic validation one.
type submitScoreRequest struct {
	UserID string   `json:"userId" validate:"required"`
	Sets   []string `json:"sets"`
}

type disputeScoreRequest struct {
	UserID string   `json:"userId" validate:"required"`
	Sets   []string `json:"sets"`
}

type userDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	LeagueType   string  `json:"leagueType,omitempty"`
	FacilityID   string  `json:"facilityId"`
	SkillLevel   *int    `json:"skillLevel,omitempty"`
	Availability *string `json:"availability,omitempty"`
	Rating       int     `json:"rating"`
	Status       string  `json:"status"`
	PairID       string  `json:"pairId,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

type pairDTO struct {
	ID            string `json:"id"`
	LeagueType    string `json:"leagueType"`
	FacilityID    string `json:"facilityId"`
	CaptainUserID string `json:"captainUserId"`
	UserAID       string `json:"userAId"`
	UserBID       string `json:"userBId"`
	CreatedAt     string `json:"createdAt"`
}

type inviteDTO struct {
	Code            string `json:"code"`
	LeagueType      string `json:"leagueType"`
	FacilityID      string `json:"facilityId"`
	CreatedByUserID string `json:"createdByUserId"`
	PartnerEmail    string `json:"partnerEmail"`
	Accepted        bool   `json:"accepted"`
	CreatedAt       string `json:"createdAt"`
}

type scoreDTO struct {
	Sets              []string `json:"sets"`
	SubmittedByUserID string   `json:"submittedByUserId"`
	SubmittedAt       string   `json:"submittedAt"`
}

type disputeDTO struct {
	ProposedSets     []string `json:"proposedSets"`
	DisputedByUserID string   `json:"disputedByUserId"`
	DisputedAt       string   `json:"disputedAt"`
}

type matchDTO struct {
	ID                string      `json:"id"`
	LeagueType        string      `json:"leagueType"`
	SeasonID          string      `json:"seasonId"`
	WeekIndex         int         `json:"weekIndex"`
	WeekStart         string      `json:"weekStart"`
	WeekEnd           string      `json:"weekEnd"`
	PairAID           string      `json:"pairAId"`
	PairBID           string      `json:"pairBId,omitempty"`
	IsBye             bool        `json:"isBye"`
	ScheduledAt       string      `json:"scheduledAt,omitempty"`
	ScheduledByUserID string      `json:"scheduledByUserId,omitempty"`
	CourtNote         string      `json:"courtNote,omitempty"`
	Status            string      `json:"status"`
	Score             *scoreDTO   `json:"score,omitempty"`
	Dispute           *disputeDTO `json:"dispute,omitempty"`
}

func userToDTO(ctx context.Context, v user.User) userDTO {
	ctx, span := startSpan(ctx, "httpapi.userToDTO")
	defer span.End()

	item := userDTO{
		ID:         v.ID,
		Name:       v.Name,
		Email:      v.Email,
		LeagueType: string(v.LeagueType),
		FacilityID: v.FacilityID,
		SkillLevel: v.SkillLevel,
		Rating:     v.Rating(),
		Status:     string(v.Status),
		PairID:     v.PairID,
		CreatedAt:  v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.Availability != nil {
		availability := string(*v.Availability)
		item.Availability = &availability
	}
	return item
}

func pairToDTO(ctx context.Context, v pair.Pair) pairDTO {
	ctx, span := startSpan(ctx, "httpapi.pairToDTO")
	defer span.End()

	return pairDTO{
		ID:            v.ID,
		LeagueType:    string(v.LeagueType),
		FacilityID:    v.FacilityID,
		CaptainUserID: v.CaptainUserID,
		UserAID:       v.UserAID,
		UserBID:       v.UserBID,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func inviteToDTO(ctx context.Context, v invite.Invite) inviteDTO {
	ctx, span := startSpan(ctx, "httpapi.inviteToDTO")
	defer span.End()

	return inviteDTO{
		Code:            v.Code,
		LeagueType:      string(v.LeagueType),
		FacilityID:      v.FacilityID,
		CreatedByUserID: v.CreatedByUserID,
		PartnerEmail:    v.PartnerEmail,
		Accepted:        v.Accepted(),
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	item := matchDTO{
		ID:                v.ID,
		LeagueType:        string(v.LeagueType),
		SeasonID:          v.SeasonID,
		WeekIndex:         v.WeekIndex,
		WeekStart:         v.WeekStart.UTC().Format(time.RFC3339),
		WeekEnd:           v.WeekEnd.UTC().Format(time.RFC3339),
		PairAID:           v.PairAID,
		PairBID:           v.PairBID,
		IsBye:             v.IsBye,
		ScheduledByUserID: v.ScheduledByUserID,
		CourtNote:         v.CourtNote,
		Status:            string(v.Status),
	}
	if v.ScheduledAt != nil {
		item.ScheduledAt = v.ScheduledAt.UTC().Format(time.RFC3339)
	}
	if v.Score != nil {
		item.Score = &scoreDTO{
			Sets:              append([]string(nil), v.Score.Sets...),
			SubmittedByUserID: v.Score.SubmittedByUserID,
			SubmittedAt:       v.Score.SubmittedAt.UTC().Format(time.RFC3339),
		}
	}
	if v.Dispute != nil {
		item.Dispute = &disputeDTO{
			ProposedSets:     append([]string(nil), v.Dispute.ProposedSets...),
			DisputedByUserID: v.Dispute.DisputedByUserID,
			DisputedAt:       v.Dispute.DisputedAt.UTC().Format(time.RFC3339),
		}
	}
	return item
}
