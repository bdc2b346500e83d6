package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/lib/utils"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/service"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/validation"
	"github.com/labstack/echo/v4"
)

// AddExerciseRequest is the body of POST /api/exercise/add. Duration accepts
// a JSON number, a numeric JSON string or a form value. Only its integer
// prefix is kept.
type AddExerciseRequest struct {
	UserID      string      `json:"userId" form:"userId" validate:"required"`
	Description string      `json:"description" form:"description" validate:"required"`
	Duration    json.Number `json:"duration" form:"duration" validate:"required"`
	Date        string      `json:"date" form:"date"`

	duration int
	date     time.Time
}

func (r *AddExerciseRequest) Validate() error {
	r.UserID = strings.TrimSpace(r.UserID)
	r.Description = strings.TrimSpace(r.Description)
	r.Duration = json.Number(strings.TrimSpace(r.Duration.String()))
	r.Date = strings.TrimSpace(r.Date)

	if err := validation.ValidateStruct(r); err != nil {
		return err
	}

	var problems validation.CustomValidationErrors

	duration, err := utils.ParseLeadingInt(r.Duration.String())
	if err != nil {
		problems = append(problems, validation.CustomValidationError{Field: "duration", Message: "must be a number"})
	}
	r.duration = duration

	if r.Date != "" {
		date, err := utils.ParseDate(r.Date)
		if err != nil {
			problems = append(problems, validation.CustomValidationError{Field: "date", Message: "must be a valid date"})
		}
		r.date = date
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}

// Record converts the validated request. The date is zero when none was sent.
func (r *AddExerciseRequest) Record() model.ExerciseRecord {
	return model.ExerciseRecord{
		UserID:      r.UserID,
		Description: r.Description,
		Duration:    r.duration,
		Date:        r.date,
	}
}

// ExerciseLogRequest is the query of GET /api/exercise/log.
type ExerciseLogRequest struct {
	UserID string `query:"userId" validate:"required"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  string `query:"limit"`

	query model.LogQuery
}

func (r *ExerciseLogRequest) Validate() error {
	r.UserID = strings.TrimSpace(r.UserID)
	r.From = strings.TrimSpace(r.From)
	r.To = strings.TrimSpace(r.To)
	r.Limit = strings.TrimSpace(r.Limit)

	if err := validation.ValidateStruct(r); err != nil {
		return err
	}

	r.query = model.LogQuery{UserID: r.UserID}

	var problems validation.CustomValidationErrors
	for _, bound := range []struct {
		field string
		raw   string
		dst   **time.Time
	}{
		{"from", r.From, &r.query.From},
		{"to", r.To, &r.query.To},
	} {
		if bound.raw == "" {
			continue
		}
		parsed, err := utils.ParseDate(bound.raw)
		if err != nil {
			problems = append(problems, validation.CustomValidationError{Field: bound.field, Message: "must be a valid date"})
			continue
		}
		*bound.dst = &parsed
	}

	// Only a positive integer prefix sets a limit.
	if parsed, err := utils.ParseLeadingInt(r.Limit); err == nil && parsed > 0 {
		r.query.Limit = parsed
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}

// Query returns the validated log query.
func (r *ExerciseLogRequest) Query() model.LogQuery {
	return r.query
}

type AddExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	ID          string `json:"_id"`
	Date        string `json:"date"`
}

type ExerciseLogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type ExerciseLogResponse struct {
	ID       string             `json:"_id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []ExerciseLogEntry `json:"log"`
}

func (r ExerciseLogResponse) ResultCount() int {
	return r.Count
}

type ExerciseHandler struct {
	Handler
	exercises *service.ExerciseService
}

func NewExerciseHandler(s *server.Server, exercises *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{
		Handler:   NewHandler(s),
		exercises: exercises,
	}
}

func (h *ExerciseHandler) AddExercise(c echo.Context) error {
	return Handle[AddExerciseRequest](h.Handler, func(c echo.Context, req *AddExerciseRequest) (AddExerciseResponse, error) {
		user, record, err := h.exercises.Add(c.Request().Context(), req.Record())
		if err != nil {
			return AddExerciseResponse{}, err
		}

		return AddExerciseResponse{
			Username:    user.Username,
			Description: record.Description,
			Duration:    record.Duration,
			ID:          user.ID,
			Date:        utils.FormatDate(record.Date),
		}, nil
	}, http.StatusOK)(c)
}

func (h *ExerciseHandler) GetExerciseLog(c echo.Context) error {
	return Handle[ExerciseLogRequest](h.Handler, func(c echo.Context, req *ExerciseLogRequest) (ExerciseLogResponse, error) {
		user, records, err := h.exercises.Log(c.Request().Context(), req.Query())
		if err != nil {
			return ExerciseLogResponse{}, err
		}

		log := make([]ExerciseLogEntry, 0, len(records))
		for _, record := range records {
			log = append(log, ExerciseLogEntry{
				Description: record.Description,
				Duration:    record.Duration,
				Date:        utils.FormatDate(record.Date),
			})
		}

		return ExerciseLogResponse{
			ID:       user.ID,
			Username: user.Username,
			Count:    len(log),
			Log:      log,
		}, nil
	}, http.StatusOK)(c)
}
