package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/padel-league/internal/usecase"
)

type autoPairingJobResponse struct {
	PairsFormed int       `json:"pairsFormed"`
	Pairs       []pairDTO `json:"pairs"`
}

type fixturesJobRequest struct {
	WeekIndex *int `json:"weekIndex" validate:"omitempty,min=0"`
}

type fixturesJobResponse struct {
	WeekIndex      int        `json:"weekIndex"`
	MatchesCreated int        `json:"matchesCreated"`
	Matches        []matchDTO `json:"matches"`
}

type integrityJobRequest struct {
	MaxWorkers int `json:"maxWorkers" validate:"omitempty,min=0"`
}

func (h *Handler) RunAutoPairingJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAutoPairingJob")
	defer span.End()

	pairs, err := h.pairingService.RunAutoPairing(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run auto pairing job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pairDTO, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, pairToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, autoPairingJobResponse{
		PairsFormed: len(items),
		Pairs:       items,
	})
}

func (h *Handler) RunFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFixturesJob")
	defer span.End()

	var req fixturesJobRequest
	if err := decodeOptionalJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	weekIndex := h.fixtureService.CurrentWeekIndex()
	if req.WeekIndex != nil {
		weekIndex = *req.WeekIndex
	}

	matches, err := h.fixtureService.GenerateWeeklyFixtures(ctx, weekIndex)
	if err != nil {
		h.logger.WarnContext(ctx, "run fixtures job failed", "week_index", weekIndex, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, fixturesJobResponse{
		WeekIndex:      weekIndex,
		MatchesCreated: len(items),
		Matches:        items,
	})
}

func (h *Handler) RunIntegrityJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIntegrityJob")
	defer span.End()

	var req integrityJobRequest
	if err := decodeOptionalJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.integrityService.Run(ctx, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "run integrity job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveDispute")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.matchService.ResolveDispute(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve dispute failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

// decodeOptionalJSONBody treats an empty body as the zero request so jobs
// can be triggered with a bare POST.
func decodeOptionalJSONBody(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
