package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"os-scheduler/config"
	"os-scheduler/internal/core"
	"os-scheduler/internal/logging"
	"os-scheduler/internal/requests"
	"os-scheduler/internal/responses"
	"os-scheduler/internal/schedulers"
	"os-scheduler/internal/store"
)

type SchedulerHandler interface {
	Simulate(ctx *fiber.Ctx) error
	Schedule(ctx *fiber.Ctx) error
	Timeline(ctx *fiber.Ctx) error
	Algorithms(ctx *fiber.Ctx) error
	GetConfig(ctx *fiber.Ctx) error
	UpdateConfig(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
	GetRun(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *config.Store
	store  store.Store // nil disables run history
	logger *slog.Logger
}

func NewSchedulerHandlerImpl(cfg *config.Store, st store.Store, logger *slog.Logger) *SchedulerHandlerImpl {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SchedulerHandlerImpl{
		config: cfg,
		store:  st,
		logger: logger.With("component", "api"),
	}
}

// Simulate runs every algorithm over the submitted process list.
func (s *SchedulerHandlerImpl) Simulate(ctx *fiber.Ctx) error {
	request, processes, configuration, err := s.parseScheduleRequest(ctx)
	if err != nil {
		return err
	}

	results, err := schedulers.RunAllSchedulers(ctx.UserContext(), processes, &configuration, s.logger)
	if err != nil {
		return fail(fiber.StatusBadRequest, responses.NewValidationError(err.Error()))
	}

	runID := uuid.NewString()
	s.saveRun(ctx, runID, request, len(processes), configuration, results)
	s.logger.Info("simulation completed", "run_id", runID, "processes", len(processes))

	return ctx.JSON(responses.SimulationResponse{
		Success:       true,
		RunID:         runID,
		ProcessCount:  len(processes),
		Configuration: configuration,
		Results:       results,
	})
}

// Schedule runs the algorithm named by the :algorithm route parameter.
func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	result, err := s.runOne(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

// Timeline renders the text diagram of one algorithm.
func (s *SchedulerHandlerImpl) Timeline(ctx *fiber.Ctx) error {
	response, err := s.runOne(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := schedulers.RenderTimeline(&buf, response.Result); err != nil {
		return fail(fiber.StatusInternalServerError, responses.NewInternalError(err.Error()))
	}
	ctx.Type("txt")
	return ctx.Send(buf.Bytes())
}

func (s *SchedulerHandlerImpl) runOne(ctx *fiber.Ctx) (*responses.ScheduleResponse, error) {
	alg, err := schedulers.ParseAlgorithm(ctx.Params("algorithm"))
	if err != nil {
		return nil, fail(fiber.StatusNotFound, responses.NewNotFoundError("algorithm", ctx.Params("algorithm")))
	}
	_, processes, configuration, err := s.parseScheduleRequest(ctx)
	if err != nil {
		return nil, err
	}

	result, err := schedulers.RunScheduler(ctx.UserContext(), string(alg), processes, &configuration, s.logger)
	if err != nil {
		return nil, fail(fiber.StatusBadRequest, responses.NewValidationError(err.Error()))
	}
	return &responses.ScheduleResponse{
		Success:       true,
		Algorithm:     string(alg),
		ProcessCount:  len(processes),
		Configuration: configuration,
		Result:        result,
	}, nil
}

func (s *SchedulerHandlerImpl) Algorithms(ctx *fiber.Ctx) error {
	configuration := s.config.Current()
	algorithms := make([]responses.AlgorithmResponse, 0, len(schedulers.Algorithms()))
	for _, alg := range schedulers.Algorithms() {
		engine, err := schedulers.New(alg, &configuration, s.logger)
		if err != nil {
			return fail(fiber.StatusInternalServerError, responses.NewInternalError(err.Error()))
		}
		algorithms = append(algorithms, responses.AlgorithmResponse{Key: string(alg), Name: engine.Name()})
	}
	return ctx.JSON(algorithms)
}

func (s *SchedulerHandlerImpl) GetConfig(ctx *fiber.Ctx) error {
	return ctx.JSON(configResponse(s.config.Current()))
}

func (s *SchedulerHandlerImpl) UpdateConfig(ctx *fiber.Ctx) error {
	var request requests.ConfigRequest
	if err := ctx.BodyParser(&request); err != nil {
		return fail(fiber.StatusBadRequest, responses.NewValidationError("invalid request format"))
	}

	configuration := s.config.Current()
	configuration.Quantum = request.Quantum
	configuration.AgingRate = request.Aging
	if request.TieBreak != "" {
		configuration.TieBreak = core.TieBreakMode(request.TieBreak)
	}
	if err := s.config.Save(configuration); err != nil {
		if errors.Is(err, core.ErrInvalidConfiguration) {
			return fail(fiber.StatusBadRequest, responses.NewValidationError(err.Error()))
		}
		return fail(fiber.StatusInternalServerError, responses.NewInternalError(err.Error()))
	}
	return ctx.JSON(configResponse(s.config.Current()))
}

func (s *SchedulerHandlerImpl) ListRuns(ctx *fiber.Ctx) error {
	if s.store == nil {
		return fail(fiber.StatusNotFound, responses.NewNotFoundError("run history", "default"))
	}
	runs, err := s.store.ListRuns(ctx.UserContext(), ctx.QueryInt("limit", 20))
	if err != nil {
		return fail(fiber.StatusInternalServerError, responses.NewInternalError(err.Error()))
	}
	summaries := make([]responses.RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, runSummary(run))
	}
	return ctx.JSON(summaries)
}

func (s *SchedulerHandlerImpl) GetRun(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if s.store == nil {
		return fail(fiber.StatusNotFound, responses.NewNotFoundError("run", id))
	}
	run, err := s.store.GetRun(ctx.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fail(fiber.StatusNotFound, responses.NewNotFoundError("run", id))
	}
	if err != nil {
		return fail(fiber.StatusInternalServerError, responses.NewInternalError(err.Error()))
	}
	return ctx.JSON(responses.RunResponse{
		RunSummary:   runSummary(run),
		ProcessInput: run.ProcessInput,
		Results:      run.Results,
	})
}

// parseScheduleRequest decodes the body, persists a quantum/aging override
// when one is given and parses the process list.
func (s *SchedulerHandlerImpl) parseScheduleRequest(ctx *fiber.Ctx) (requests.ScheduleRequest, []*core.Process, core.Configuration, error) {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return request, nil, core.Configuration{}, fail(fiber.StatusBadRequest, responses.NewValidationError("invalid request format"))
	}

	if request.HasConfiguration() {
		if _, err := s.config.Update(request.Quantum, request.Aging); err != nil {
			return request, nil, core.Configuration{}, fail(fiber.StatusBadRequest, responses.NewValidationError(err.Error()))
		}
	}

	processes, err := request.Processes(s.logger)
	if err != nil {
		return request, nil, core.Configuration{}, fail(fiber.StatusBadRequest, responses.NewValidationError(err.Error()))
	}
	return request, processes, s.config.Current(), nil
}

func (s *SchedulerHandlerImpl) saveRun(ctx *fiber.Ctx, runID string, request requests.ScheduleRequest, processCount int, configuration core.Configuration, results *schedulers.ResultSet) {
	if s.store == nil {
		return
	}
	encoded, err := json.Marshal(results)
	if err != nil {
		s.logger.Warn("could not encode results", "run_id", runID, "error", err)
		return
	}
	err = s.store.SaveRun(ctx.UserContext(), &store.Run{
		ID:           runID,
		ProcessInput: request.ProcessInput,
		ProcessCount: processCount,
		Quantum:      configuration.Quantum,
		Aging:        configuration.AgingRate,
		Results:      encoded,
	})
	if err != nil {
		s.logger.Warn("could not store run", "run_id", runID, "error", err)
	}
}

func configResponse(configuration core.Configuration) responses.ConfigResponse {
	return responses.ConfigResponse{
		Success:  true,
		Quantum:  configuration.Quantum,
		Aging:    configuration.AgingRate,
		TieBreak: string(configuration.TieBreak),
	}
}

func runSummary(run *store.Run) responses.RunSummary {
	return responses.RunSummary{
		ID:           run.ID,
		ProcessCount: run.ProcessCount,
		Quantum:      run.Quantum,
		Aging:        run.Aging,
		CreatedAt:    run.CreatedAt,
	}
}

// httpError carries an api error up to the app's error handler.
type httpError struct {
	status int
	body   *responses.APIError
}

func (e *httpError) Error() string {
	return e.body.Error()
}

func fail(status int, body *responses.APIError) error {
	return &httpError{status: status, body: body}
}

// ErrorHandler writes every handler failure as {"success": false, "error": {...}}.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var he *httpError
	if errors.As(err, &he) {
		return ctx.Status(he.status).JSON(fiber.Map{"success": false, "error": he.body})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := responses.ErrInternal
		if fe.Code == fiber.StatusNotFound {
			code = responses.ErrNotFound
		}
		return ctx.Status(fe.Code).JSON(fiber.Map{"success": false, "error": &responses.APIError{Code: code, Message: fe.Message}})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": responses.NewInternalError(err.Error())})
}
