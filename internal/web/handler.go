// ABOUTME: JSON handlers for the dashboard API.
// ABOUTME: Maps dashboard errors to HTTP status codes with {"error": "..."} bodies.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/storage"
	log "github.com/sirupsen/logrus"
)

const defaultListLimit = 20

// Handler serves the dashboard over HTTP.
type Handler struct {
	svc     *dashboard.Service
	metrics *Metrics
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(svc *dashboard.Service, metrics *Metrics) *Handler {
	return &Handler{
		svc:     svc,
		metrics: metrics,
	}
}

// SetupRoutes registers the API routes on r.
func (h *Handler) SetupRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/home", h.HandleHome).Methods("GET").Name("home")
	api.HandleFunc("/progress/{user}", h.HandleProgress).Methods("GET").Name("progress")
	api.HandleFunc("/entries", h.HandleListEntries).Methods("GET").Name("list-entries")
	api.HandleFunc("/entries", h.HandleSubmit).Methods("POST").Name("submit-entry")
	api.HandleFunc("/today", h.HandleToday).Methods("GET").Name("today")
	api.HandleFunc("/preview/{user}", h.HandlePreview).Methods("GET").Name("submission-preview")
	api.HandleFunc("/meal-plan", h.HandleMealPlan).Methods("GET").Name("meal-plan")
	api.HandleFunc("/meal-plan/{day}", h.HandleUpdateMealPlanDay).Methods("PUT").Name("update-meal-plan-day")
	api.HandleFunc("/grocery-prompt", h.HandleGroceryPrompt).Methods("GET").Name("grocery-prompt")
	api.HandleFunc("/workout/{user}", h.HandleWorkout).Methods("GET").Name("workout")
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	home, err := h.svc.Home()
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, home)
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	series, err := h.svc.Progress(user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"points": series,
	})
}

func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %q", raw))
			return
		}
		limit = n
	}

	entries, err := h.svc.Entries(r.URL.Query().Get("user"), limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*models.DailyEntry{}
	}
	respondWithJSON(w, http.StatusOK, entries)
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in dashboard.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err))
		return
	}

	e, err := h.svc.Submit(in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CounterEntries.WithLabelValues(string(e.User)).Inc()
	}
	respondWithJSON(w, http.StatusCreated, e)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	today, err := h.svc.TodayEntries()
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"date":    h.svc.Today().Format(models.DateLayout),
		"entries": today,
	})
}

func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "weight query parameter must be a number")
		return
	}

	pairs, err := h.svc.SubmissionView(mux.Vars(r)["user"], weight)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pairs)
}

func (h *Handler) HandleMealPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.MealPlan()
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plan)
}

// mealUpdateRequest either changes one slot (Field and Text) or replaces
// every slot of the day.
type mealUpdateRequest struct {
	Field string `json:"field"`
	Text  string `json:"text"`
	models.MealPlanEntry
}

func (h *Handler) HandleUpdateMealPlanDay(w http.ResponseWriter, r *http.Request) {
	day, err := models.ParseWeekday(mux.Vars(r)["day"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req mealUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err))
		return
	}

	if req.Field != "" {
		m, _, err := h.svc.SetMealField(string(day), req.Field, req.Text)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, m)
		return
	}

	m := req.MealPlanEntry
	m.Day = day
	if err := h.svc.UpdateMealPlanDay(&m); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, &m)
}

func (h *Handler) HandleGroceryPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.svc.GroceryPrompt()
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"prompt": prompt})
}

func (h *Handler) HandleWorkout(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.WorkoutPlan(mux.Vars(r)["user"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, plan)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnknownUser),
		errors.Is(err, models.ErrUnknownDay),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrWeightOutOfRange),
		errors.Is(err, models.ErrUnknownField),
		errors.Is(err, dashboard.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrEditsNotPreserved):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	entry := log.WithFields(log.Fields{
		"request_id": r.Header.Get(RequestIDHeader),
		"path":       r.URL.Path,
		"status":     code,
	}).WithError(err)
	if code == http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	respondWithError(w, code, err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
