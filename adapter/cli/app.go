package cli

import (
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Command handlers
	UpdateDayHandler   *commands.UpdateDayHandler
	SetTaskDoneHandler *commands.SetTaskDoneHandler
	SetHabitHandler    *commands.SetHabitHandler
	ResetDayHandler    *commands.ResetDayHandler

	// Query handlers
	GeneratePlanHandler *queries.GeneratePlanHandler
	GetDayHandler       *queries.GetDayHandler
	ListTasksHandler    *queries.ListTasksHandler
	ListHabitsHandler   *queries.ListHabitsHandler

	// Actor is stamped on published events.
	Actor string

	clock func() time.Time
}

// NewApp creates a new CLI application with the given handlers.
func NewApp(
	updateDayHandler *commands.UpdateDayHandler,
	setTaskDoneHandler *commands.SetTaskDoneHandler,
	setHabitHandler *commands.SetHabitHandler,
	resetDayHandler *commands.ResetDayHandler,
	generatePlanHandler *queries.GeneratePlanHandler,
	getDayHandler *queries.GetDayHandler,
	listTasksHandler *queries.ListTasksHandler,
	listHabitsHandler *queries.ListHabitsHandler,
) *App {
	return &App{
		UpdateDayHandler:    updateDayHandler,
		SetTaskDoneHandler:  setTaskDoneHandler,
		SetHabitHandler:     setHabitHandler,
		ResetDayHandler:     resetDayHandler,
		GeneratePlanHandler: generatePlanHandler,
		GetDayHandler:       getDayHandler,
		ListTasksHandler:    listTasksHandler,
		ListHabitsHandler:   listHabitsHandler,
		Actor:               "cli",
		clock:               time.Now,
	}
}

// SetClock replaces the wall clock, mainly for tests.
func (a *App) SetClock(clock func() time.Time) {
	a.clock = clock
}

// Now returns the current wall-clock time.
func (a *App) Now() time.Time {
	if a.clock == nil {
		return time.Now()
	}
	return a.clock()
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
