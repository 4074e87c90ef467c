package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
)

// PlannerHandler handles planner API requests.
type PlannerHandler struct {
	updateDay    *commands.UpdateDayHandler
	setTaskDone  *commands.SetTaskDoneHandler
	setHabit     *commands.SetHabitHandler
	resetDay     *commands.ResetDayHandler
	generatePlan *queries.GeneratePlanHandler
	getDay       *queries.GetDayHandler
	listTasks    *queries.ListTasksHandler
	listHabits   *queries.ListHabitsHandler
	clock        func() time.Time
	logger       *slog.Logger
}

// PlannerHandlerConfig holds dependencies for the planner handler.
type PlannerHandlerConfig struct {
	UpdateDay    *commands.UpdateDayHandler
	SetTaskDone  *commands.SetTaskDoneHandler
	SetHabit     *commands.SetHabitHandler
	ResetDay     *commands.ResetDayHandler
	GeneratePlan *queries.GeneratePlanHandler
	GetDay       *queries.GetDayHandler
	ListTasks    *queries.ListTasksHandler
	ListHabits   *queries.ListHabitsHandler
	// Clock defaults to time.Now.
	Clock        func() time.Time
	Logger       *slog.Logger
}

// NewPlannerHandler creates a new planner handler.
func NewPlannerHandler(cfg PlannerHandlerConfig) *PlannerHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &PlannerHandler{
		updateDay:    cfg.UpdateDay,
		setTaskDone:  cfg.SetTaskDone,
		setHabit:     cfg.SetHabit,
		resetDay:     cfg.ResetDay,
		generatePlan: cfg.GeneratePlan,
		getDay:       cfg.GetDay,
		listTasks:    cfg.ListTasks,
		listHabits:   cfg.ListHabits,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
	}
}

// UpdateDayRequest is the PATCH /api/v1/day body. Absent fields are left alone.
type UpdateDayRequest struct {
	Time    *string `json:"time"`
	Energy  *string `json:"energy"`
	Context *string `json:"context"`
}

// GetPlan handles GET /api/v1/plan. The time and energy query parameters
// override the stored values for this request only.
func (h *PlannerHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	plan, err := h.generatePlan.Handle(r.Context(), queries.GeneratePlanQuery{
		Now:    now,
		Time:   resolveTime(r.URL.Query().Get("time"), now),
		Energy: r.URL.Query().Get("energy"),
	})
	if err != nil {
		h.fail(w, r, "failed to generate plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// GetDay handles GET /api/v1/day
func (h *PlannerHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	day, err := h.getDay.Handle(r.Context(), queries.GetDayQuery{Now: h.clock()})
	if err != nil {
		h.fail(w, r, "failed to get day", err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// UpdateDay handles PATCH /api/v1/day
func (h *PlannerHandler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	var req UpdateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, ErrBadRequest.withMessage("Request body must be a JSON object"))
		return
	}

	cmd := commands.UpdateDayCommand{
		Now:     h.clock(),
		Energy:  req.Energy,
		Context: req.Context,
		Actor:   "api",
	}
	if req.Time != nil {
		if isNow(*req.Time) {
			cmd.UseClock = true
		} else {
			cmd.Time = req.Time
		}
	}

	result, err := h.updateDay.Handle(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, "failed to update day", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ResetDay handles DELETE /api/v1/day
func (h *PlannerHandler) ResetDay(w http.ResponseWriter, r *http.Request) {
	if err := h.resetDay.Handle(r.Context(), commands.ResetDayCommand{Now: h.clock(), Actor: "api"}); err != nil {
		h.fail(w, r, "failed to reset day", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTasks handles GET /api/v1/tasks
func (h *PlannerHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.listTasks.Handle(r.Context(), queries.ListTasksQuery{Now: h.clock()})
	if err != nil {
		h.fail(w, r, "failed to list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// MarkTaskDone handles PUT /api/v1/tasks/{taskID}/done
func (h *PlannerHandler) MarkTaskDone(w http.ResponseWriter, r *http.Request) {
	h.setTask(w, r, true)
}

// ReopenTask handles DELETE /api/v1/tasks/{taskID}/done
func (h *PlannerHandler) ReopenTask(w http.ResponseWriter, r *http.Request) {
	h.setTask(w, r, false)
}

func (h *PlannerHandler) setTask(w http.ResponseWriter, r *http.Request, done bool) {
	result, err := h.setTaskDone.Handle(r.Context(), commands.SetTaskDoneCommand{
		Now:    h.clock(),
		TaskID: r.PathValue("taskID"),
		Done:   done,
		Actor:  "api",
	})
	if err != nil {
		h.fail(w, r, "failed to update task", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListHabits handles GET /api/v1/habits
func (h *PlannerHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.listHabits.Handle(r.Context(), queries.ListHabitsQuery{Now: h.clock()})
	if err != nil {
		h.fail(w, r, "failed to list habits", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"habits": habits,
		"tally":  tally(habits),
	})
}

// CheckHabit handles PUT /api/v1/habits/{habit}
func (h *PlannerHandler) CheckHabit(w http.ResponseWriter, r *http.Request) {
	h.setHabitChecked(w, r, true)
}

// UncheckHabit handles DELETE /api/v1/habits/{habit}
func (h *PlannerHandler) UncheckHabit(w http.ResponseWriter, r *http.Request) {
	h.setHabitChecked(w, r, false)
}

func (h *PlannerHandler) setHabitChecked(w http.ResponseWriter, r *http.Request, checked bool) {
	result, err := h.setHabit.Handle(r.Context(), commands.SetHabitCommand{
		Now:     h.clock(),
		Habit:   r.PathValue("habit"),
		Checked: checked,
		Actor:   "api",
	})
	if err != nil {
		h.fail(w, r, "failed to update habit", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// fail maps planner errors to API errors; anything unexpected is logged.
func (h *PlannerHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, queries.ErrTimeNotSet):
		writeAPIError(w, ErrTimeNotSet)
	case errors.Is(err, domain.ErrUnknownTask), errors.Is(err, domain.ErrUnknownHabit):
		writeAPIError(w, ErrNotFound.withMessage(err.Error()))
	case errors.Is(err, domain.ErrInvalidFormat), errors.Is(err, domain.ErrInvalidEnergy):
		writeAPIError(w, ErrBadRequest.withMessage(err.Error()))
	default:
		h.logger.ErrorContext(r.Context(), msg, "error", err)
		writeAPIError(w, ErrInternalServer)
	}
}

func tally(habits []queries.HabitDTO) domain.HabitTally {
	checked := make(map[domain.HabitKey]bool, len(habits))
	for _, habit := range habits {
		checked[domain.HabitKey(habit.Key)] = habit.Checked
	}
	return domain.TallyHabits(checked)
}

func isNow(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "now")
}

func resolveTime(value string, now time.Time) string {
	if isNow(value) {
		return now.Format("15:04")
	}
	return value
}
