package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/icedout/league-system/middleware"
	"github.com/icedout/league-system/models"
	"github.com/icedout/league-system/services"
)

var errActorMismatch = errors.New("user_id does not match the authenticated user")

// actorAllowed проверяет, что вызывающий действует от своего имени.
// Модераторы подают пики за любого игрока (ретрансляция из чата).
func actorAllowed(r *http.Request, userID int64) error {
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		return err
	}
	if role == models.RoleModerator {
		return nil
	}
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return err
	}
	if callerID != userID {
		return errActorMismatch
	}
	return nil
}

// PickHandler — поверхность движка переговоров: подача пиков, бэкапов и
// справочные запросы игроков.
type PickHandler struct {
	negotiationService services.NegotiationService
	settingsService    services.SettingsService
}

func NewPickHandler(negotiationService services.NegotiationService, settingsService services.SettingsService) *PickHandler {
	return &PickHandler{
		negotiationService: negotiationService,
		settingsService:    settingsService,
	}
}

type submitPickRequest struct {
	UserID int64                `json:"user_id"`
	Match  models.Match         `json:"match"`
	Pick   models.ArbitraryPick `json:"pick"`
}

func (h *PickHandler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	var input submitPickRequest

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID == 0 {
		badRequestResponse(w, r, errors.New("user_id is required"))
		return
	}
	if err := actorAllowed(r, input.UserID); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	outcome, err := h.negotiationService.SubmitPick(r.Context(), input.UserID, input.Match, input.Pick)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"outcome": outcome,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PickHandler) SubmitBackupPick(w http.ResponseWriter, r *http.Request) {
	var input submitPickRequest

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID == 0 {
		badRequestResponse(w, r, errors.New("user_id is required"))
		return
	}
	if err := actorAllowed(r, input.UserID); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	outcome, err := h.negotiationService.SubmitBackupPick(r.Context(), input.UserID, input.Match, input.Pick)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"outcome": outcome,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// NextMatch возвращает ближайший незавершённый матч игрока на текущей неделе.
func (h *PickHandler) NextMatch(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := actorAllowed(r, userID); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	week, err := h.resolveWeek(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	match, err := h.negotiationService.NextMatch(userID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"match": match,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// WhoPicked отдаёт текстовую сводку по статусу пиков недели, опционально
// отфильтрованную по дивизиону.
func (h *PickHandler) WhoPicked(w http.ResponseWriter, r *http.Request) {
	week, err := h.resolveWeek(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var tier *models.Tier
	if tierStr := r.URL.Query().Get("tier"); tierStr != "" {
		t := models.Tier(tierStr)
		if !t.Valid() {
			mapServiceErrorToHTTP(w, r, services.ErrInvalidTier)
			return
		}
		tier = &t
	}

	response := jsonResponse{
		"summary": h.negotiationService.WhoPickedSummary(week, tier),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type vetoedMapsRequest struct {
	UserID int64        `json:"user_id"`
	Match  models.Match `json:"match"`
}

// VetoedMaps показывает участнику, какие из карт соперник занёс в вето.
func (h *PickHandler) VetoedMaps(w http.ResponseWriter, r *http.Request) {
	var input vetoedMapsRequest

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := actorAllowed(r, input.UserID); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	maps, err := h.negotiationService.VetoedMaps(input.UserID, input.Match)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"vetoed_maps": maps,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// resolveWeek берёт неделю из query-параметра, иначе текущую из настроек.
func (h *PickHandler) resolveWeek(r *http.Request) (int, error) {
	if weekStr := r.URL.Query().Get("week"); weekStr != "" {
		week, err := strconv.Atoi(weekStr)
		if err != nil || week < 0 {
			return 0, services.ErrInvalidWeek
		}
		return week, nil
	}
	return h.settingsService.CurrentWeek(r.Context())
}

func parseUserIDParam(r *http.Request) (int64, error) {
	userIDStr := r.URL.Query().Get("user_id")
	if userIDStr == "" {
		return 0, errors.New("user_id query parameter is required")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("user_id must be a positive integer")
	}
	return userID, nil
}
