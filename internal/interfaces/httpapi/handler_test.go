package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/padel-league/internal/domain/season"
	"github.com/courtside/padel-league/internal/infrastructure/repository/memory"
	"github.com/courtside/padel-league/internal/platform/id"
	"github.com/courtside/padel-league/internal/platform/logging"
	"github.com/courtside/padel-league/internal/usecase"
)

const testJobToken = "test-job-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	userRepo := memory.NewUserRepository(nil)
	pairRepo := memory.NewPairRepository(nil)
	inviteRepo := memory.NewInviteRepository()
	matchRepo := memory.NewMatchRepository()

	ids := id.NewRandomGenerator()
	logger := logging.NewNop()

	activeSeason := season.Season{
		ID:       "s-test",
		Name:     "Test Season",
		StartsOn: season.MondayOf(time.Now()),
		Weeks:    8,
	}
	facility := season.Facility{ID: "eddies", Name: "Eddie's Padel", Town: "Haarlem"}

	lock := usecase.NewSnapshotLock()
	handler := NewHandler(
		usecase.NewUserService(userRepo, ids, facility.ID, lock),
		usecase.NewInviteService(userRepo, pairRepo, inviteRepo, ids, lock),
		usecase.NewPairingService(userRepo, pairRepo, ids, logger, lock),
		usecase.NewFixtureService(userRepo, pairRepo, matchRepo, activeSeason, facility, ids, logger, lock),
		usecase.NewMatchService(userRepo, pairRepo, matchRepo, lock),
		usecase.NewIntegrityService(userRepo, pairRepo, matchRepo, logger),
		logger,
	)

	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, body, jobToken string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if jobToken != "" {
		req.Header.Set("X-Internal-Job-Token", jobToken)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) userDTO {
	t.Helper()

	var env struct {
		Data userDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal user response: %v", err)
	}
	return env.Data
}

func registerPlayer(t *testing.T, router http.Handler, name, email, leagueType string) userDTO {
	t.Helper()

	payload := `{"name":"` + name + `","email":"` + email + `"`
	if leagueType != "" {
		payload += `,"leagueType":"` + leagueType + `"`
	}
	payload += `}`

	rec := doRequest(t, router, http.MethodPost, "/v1/users", payload, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected status 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	return decodeUser(t, rec)
}

func completePlayerProfile(t *testing.T, router http.Handler, userID string, skill int) userDTO {
	t.Helper()

	payload := `{"skillLevel":` + strconv.Itoa(skill) + `,"availability":"both"}`
	rec := doRequest(t, router, http.MethodPut, "/v1/users/"+userID+"/profile", payload, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete profile %s: expected status 200, got %d: %s", userID, rec.Code, rec.Body.String())
	}
	return decodeUser(t, rec)
}

func formPairByInvite(t *testing.T, router http.Handler, creator userDTO, partner userDTO) pairDTO {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/v1/invites",
		`{"creatorId":"`+creator.ID+`","partnerEmail":"`+partner.Email+`"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invite: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var inviteEnv struct {
		Data inviteDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &inviteEnv); err != nil {
		t.Fatalf("unmarshal invite response: %v", err)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/invites/accept",
		`{"code":"`+inviteEnv.Data.Code+`","userId":"`+partner.ID+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("accept invite: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var pairEnv struct {
		Data pairDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &pairEnv); err != nil {
		t.Fatalf("unmarshal pair response: %v", err)
	}
	return pairEnv.Data
}

func TestRouter_RegistrationValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/users", `{"name":"No Email"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/users", `{not json`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed JSON, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/users/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown user, got %d", rec.Code)
	}
}

func TestRouter_InviteToScoreFlow(t *testing.T) {
	router := newTestRouter(t)

	a1 := registerPlayer(t, router, "Anna", "anna@example.com", "friendly")
	a2 := registerPlayer(t, router, "Bram", "bram@example.com", "")
	b1 := registerPlayer(t, router, "Carla", "carla@example.com", "friendly")
	b2 := registerPlayer(t, router, "Dirk", "dirk@example.com", "")

	completePlayerProfile(t, router, a1.ID, 5)
	completePlayerProfile(t, router, a2.ID, 5)
	completePlayerProfile(t, router, b1.ID, 6)
	completePlayerProfile(t, router, b2.ID, 6)

	pairA := formPairByInvite(t, router, a1, a2)
	pairB := formPairByInvite(t, router, b1, b2)
	if pairA.CaptainUserID != a1.ID {
		t.Fatalf("expected invite creator %s as captain, got %s", a1.ID, pairA.CaptainUserID)
	}

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/fixtures", `{"weekIndex":0}`, testJobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("fixtures job: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var jobEnv struct {
		Data fixturesJobResponse `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &jobEnv); err != nil {
		t.Fatalf("unmarshal fixtures job response: %v", err)
	}
	if jobEnv.Data.MatchesCreated != 1 {
		t.Fatalf("expected 1 match created, got %d", jobEnv.Data.MatchesCreated)
	}
	fixture := jobEnv.Data.Matches[0]
	if fixture.IsBye {
		t.Fatalf("expected a real fixture, got a bye")
	}
	got := map[string]bool{fixture.PairAID: true, fixture.PairBID: true}
	if !got[pairA.ID] || !got[pairB.ID] {
		t.Fatalf("expected fixture between %s and %s, got %s vs %s", pairA.ID, pairB.ID, fixture.PairAID, fixture.PairBID)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/matches/"+fixture.ID+"/score",
		`{"userId":"`+a2.ID+`","sets":["6-4","6-3"]}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-captain submit: expected status 403, got %d: %s", rec.Code, rec.Body.String())
	}

	captain := pairA.CaptainUserID
	rec = doRequest(t, router, http.MethodPost, "/v1/matches/"+fixture.ID+"/score",
		`{"userId":"`+captain+`","sets":["6-4","6-3"]}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("captain submit: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var matchEnv struct {
		Data matchDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &matchEnv); err != nil {
		t.Fatalf("unmarshal match response: %v", err)
	}
	if matchEnv.Data.Status != "pending_confirm" {
		t.Fatalf("expected status pending_confirm, got %s", matchEnv.Data.Status)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/matches/"+fixture.ID+"/confirm", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &matchEnv); err != nil {
		t.Fatalf("unmarshal confirm response: %v", err)
	}
	if matchEnv.Data.Status != "confirmed" {
		t.Fatalf("expected status confirmed, got %s", matchEnv.Data.Status)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/users/"+b1.ID+"/matches", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list matches: expected status 200, got %d", rec.Code)
	}
	var listEnv struct {
		Data []matchDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &listEnv); err != nil {
		t.Fatalf("unmarshal match list: %v", err)
	}
	if len(listEnv.Data) != 1 {
		t.Fatalf("expected 1 match for %s, got %d", b1.ID, len(listEnv.Data))
	}
}

func TestRouter_ScoreValidationReason(t *testing.T) {
	router := newTestRouter(t)

	a1 := registerPlayer(t, router, "Anna", "anna@example.com", "friendly")
	a2 := registerPlayer(t, router, "Bram", "bram@example.com", "")
	b1 := registerPlayer(t, router, "Carla", "carla@example.com", "friendly")
	b2 := registerPlayer(t, router, "Dirk", "dirk@example.com", "")
	completePlayerProfile(t, router, a1.ID, 5)
	completePlayerProfile(t, router, a2.ID, 5)
	completePlayerProfile(t, router, b1.ID, 6)
	completePlayerProfile(t, router, b2.ID, 6)
	pairA := formPairByInvite(t, router, a1, a2)
	formPairByInvite(t, router, b1, b2)

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/fixtures", `{"weekIndex":0}`, testJobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("fixtures job: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var jobEnv struct {
		Data fixturesJobResponse `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &jobEnv); err != nil {
		t.Fatalf("unmarshal fixtures job response: %v", err)
	}
	matchID := jobEnv.Data.Matches[0].ID

	scoreReason := func(body string) (int, string) {
		rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+matchID+"/score", body, "")
		var env struct {
			Error *googleErrorBody `json:"error"`
		}
		if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal error response: %v", err)
		}
		if env.Error == nil || len(env.Error.Errors) == 0 {
			t.Fatalf("expected an error body, got %s", rec.Body.String())
		}
		return rec.Code, env.Error.Errors[0].Reason
	}

	// Set count and format errors come from the match domain, not the
	// request validator, so they carry the score-specific reason.
	code, reason := scoreReason(`{"userId":"` + pairA.CaptainUserID + `","sets":["6-4"]}`)
	if code != http.StatusBadRequest || reason != "invalidScore" {
		t.Fatalf("one set: expected 400 invalidScore, got %d %s", code, reason)
	}
	code, reason = scoreReason(`{"userId":"` + pairA.CaptainUserID + `","sets":["6-x","6-3"]}`)
	if code != http.StatusBadRequest || reason != "invalidScore" {
		t.Fatalf("malformed set: expected 400 invalidScore, got %d %s", code, reason)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/"+matchID, "", "")
	var matchEnv struct {
		Data matchDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &matchEnv); err != nil {
		t.Fatalf("unmarshal match response: %v", err)
	}
	if matchEnv.Data.Status != "not_scheduled" || matchEnv.Data.Score != nil {
		t.Fatalf("expected the match untouched after rejected scores, got status=%s", matchEnv.Data.Status)
	}
}

func TestRouter_AutoPairingJobRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/auto-pairing", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/internal/jobs/auto-pairing", "", testJobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data autoPairingJobResponse `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal auto pairing response: %v", err)
	}
	if env.Data.PairsFormed != 0 {
		t.Fatalf("expected no pairs from an empty pool, got %d", env.Data.PairsFormed)
	}
}

func TestRouter_IntegrityJob(t *testing.T) {
	router := newTestRouter(t)

	registerPlayer(t, router, "Anna", "anna@example.com", "friendly")

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/integrity", `{"maxWorkers":2}`, testJobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("integrity job: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data usecase.IntegrityReport `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal integrity response: %v", err)
	}
	if env.Data.IssueCount != 0 {
		t.Fatalf("expected a clean report, got %d issues: %+v", env.Data.IssueCount, env.Data.Issues)
	}
	if env.Data.CheckCount != 1 {
		t.Fatalf("expected 1 check, got %d", env.Data.CheckCount)
	}
}
