package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
)

// ErrTimeNotSet is returned when neither the query nor the stored day has a current time.
var ErrTimeNotSet = errors.New("current time is not set")

// TimeNotSetPrompt is what user-facing surfaces show for ErrTimeNotSet.
const TimeNotSetPrompt = "Please set the current time."

// GeneratePlanQuery asks for the plan of the day of Now. Time and Energy
// override the stored values for this call only.
type GeneratePlanQuery struct {
	Now    time.Time
	Time   string
	Energy string
}

// PlanDTO is everything a renderer needs for the planner screen.
type PlanDTO struct {
	Date           string                `json:"date" yaml:"date"`
	Now            string                `json:"now" yaml:"now"`
	NowMinute      int                   `json:"now_minute" yaml:"now_minute"`
	Energy         string                `json:"energy" yaml:"energy"`
	Context        string                `json:"context,omitempty" yaml:"context,omitempty"`
	Recommendation domain.Recommendation `json:"recommendation" yaml:"recommendation"`
	Rule           string                `json:"rule" yaml:"rule"`
	Tips           []string              `json:"tips" yaml:"tips"`
	ImprovementTip string                `json:"improvement_tip" yaml:"improvement_tip"`
	Timeline       []BlockDTO            `json:"timeline" yaml:"timeline"`
	RemainingHours float64               `json:"remaining_hours" yaml:"remaining_hours"`
	Reason         string                `json:"reason" yaml:"reason"`
	Completion     domain.Completion     `json:"completion" yaml:"completion"`
	Pending        []domain.TaskID       `json:"pending" yaml:"pending"`
	Habits         domain.HabitTally     `json:"habits" yaml:"habits"`
}

// GeneratePlanHandler handles GeneratePlanQuery.
type GeneratePlanHandler struct {
	repo    domain.DayStateRepository
	tips    domain.TipPicker
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewGeneratePlanHandler creates a new GeneratePlanHandler.
func NewGeneratePlanHandler(repo domain.DayStateRepository, tips domain.TipPicker, metrics observability.Metrics, logger *slog.Logger) *GeneratePlanHandler {
	if tips == nil {
		tips = domain.DailyTipPicker{}
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratePlanHandler{repo: repo, tips: tips, metrics: metrics, logger: logger}
}

// Handle executes the GeneratePlanQuery.
func (h *GeneratePlanHandler) Handle(ctx context.Context, query GeneratePlanQuery) (*PlanDTO, error) {
	return observability.TimeOperation(h.logger, h.metrics, "generate_plan", func() (*PlanDTO, error) {
		return h.generate(ctx, query)
	})
}

func (h *GeneratePlanHandler) generate(ctx context.Context, query GeneratePlanQuery) (*PlanDTO, error) {
	state, _, err := loadDay(ctx, h.repo, query.Now)
	if err != nil {
		return nil, err
	}

	now, ok := state.CurrentTime()
	if query.Time != "" {
		if now, err = domain.ParseMinute(query.Time); err != nil {
			return nil, err
		}
		ok = true
	}
	if !ok {
		return nil, ErrTimeNotSet
	}

	energy := state.Energy()
	if query.Energy != "" {
		if energy, err = domain.ParseEnergy(query.Energy); err != nil {
			return nil, err
		}
	}

	done := state.Completion()
	rec, rule := domain.ExplainNext(now, energy, done)
	timeline := domain.BuildTimeline(now, done)

	h.logger.DebugContext(ctx, "plan generated",
		"date", state.DateKey(),
		"now", now.String(),
		"rule", rule,
		"blocks", len(timeline),
	)

	return &PlanDTO{
		Date:           state.DateKey(),
		Now:            now.String(),
		NowMinute:      int(now),
		Energy:         string(energy),
		Context:        state.Context(),
		Recommendation: rec,
		Rule:           rule,
		Tips:           domain.TipsFor(rec.ID),
		ImprovementTip: h.tips.Pick(state.Date()),
		Timeline:       toBlockDTOs(timeline),
		RemainingHours: domain.RemainingHours(now),
		Reason:         domain.PlanReason(state.Context()),
		Completion:     done,
		Pending:        done.Pending(),
		Habits:         domain.TallyHabits(state.Habits()),
	}, nil
}
