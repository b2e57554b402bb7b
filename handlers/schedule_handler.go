package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/icedout/league-system/models"
	"github.com/icedout/league-system/services"
)

// ScheduleHandler — модераторская поверхность: расписание матчей, сбросы,
// смена текущей недели и выдача пулов.
type ScheduleHandler struct {
	negotiationService services.NegotiationService
	poolService        services.PoolService
	settingsService    services.SettingsService
}

func NewScheduleHandler(
	negotiationService services.NegotiationService,
	poolService services.PoolService,
	settingsService services.SettingsService,
) *ScheduleHandler {
	return &ScheduleHandler{
		negotiationService: negotiationService,
		poolService:        poolService,
		settingsService:    settingsService,
	}
}

type addMatchRequest struct {
	ID1  int64       `json:"id_1"`
	ID2  int64       `json:"id_2"`
	Tier models.Tier `json:"tier"`
	Week int         `json:"week"`
}

func (h *ScheduleHandler) AddMatch(w http.ResponseWriter, r *http.Request) {
	var input addMatchRequest

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ID1 == 0 || input.ID2 == 0 || input.ID1 == input.ID2 {
		badRequestResponse(w, r, errors.New("id_1 and id_2 must be distinct non-zero player IDs"))
		return
	}
	if !input.Tier.Valid() {
		mapServiceErrorToHTTP(w, r, services.ErrInvalidTier)
		return
	}
	if input.Week < 0 {
		mapServiceErrorToHTTP(w, r, services.ErrInvalidWeek)
		return
	}

	match := models.Match{
		ID1:  input.ID1,
		ID2:  input.ID2,
		Tier: input.Tier,
		Week: input.Week,
	}
	if err := h.negotiationService.AddMatch(r.Context(), match); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"match": match,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type resetRequest struct {
	Week int          `json:"week"`
	Tier *models.Tier `json:"tier,omitempty"`
}

// Reset убирает матчи недели из реестра. С tier — только один дивизион.
func (h *ScheduleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var input resetRequest

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Week < 0 {
		mapServiceErrorToHTTP(w, r, services.ErrInvalidWeek)
		return
	}

	var err error
	if input.Tier != nil {
		if !input.Tier.Valid() {
			mapServiceErrorToHTTP(w, r, services.ErrInvalidTier)
			return
		}
		err = h.negotiationService.ResetTier(r.Context(), input.Week, *input.Tier)
	} else {
		err = h.negotiationService.ResetWeek(r.Context(), input.Week)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type changeWeekRequest struct {
	Week int `json:"week"`
}

func (h *ScheduleHandler) ChangeWeek(w http.ResponseWriter, r *http.Request) {
	var input changeWeekRequest

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.settingsService.ChangeWeek(r.Context(), input.Week); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"week": input.Week,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.settingsService.CurrentWeek(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"week": week,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPool отдаёт пул карт недели из истории. Пул генерируется только при
// смене недели, поэтому здесь отсутствие пула — это 404, а не генерация.
func (h *ScheduleHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	weekStr := chi.URLParam(r, "week")
	week, err := strconv.Atoi(weekStr)
	if err != nil || week < 0 {
		mapServiceErrorToHTTP(w, r, services.ErrInvalidWeek)
		return
	}

	pool, err := h.poolService.GetWeekPool(r.Context(), week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"pool": pool,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
