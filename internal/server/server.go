// Package server exposes the diary, the profile and nutrition estimation over
// HTTP with fiber.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/diary"
	"github.com/khaldoun36/GritSeason/internal/estimator"
	"github.com/khaldoun36/GritSeason/internal/gate"
	"github.com/khaldoun36/GritSeason/internal/metabolic"
	"github.com/khaldoun36/GritSeason/internal/model"
	"github.com/khaldoun36/GritSeason/internal/profile"
	"github.com/khaldoun36/GritSeason/internal/store"
)

const (
	msgPromptRequired    = "Prompt is required"
	msgGenerateFailed    = "Failed to generate nutrition data."
	msgInvalidDate       = "Invalid date (expected YYYY-MM-DD)"
	msgSaveEntryFailed   = "Failed to save food entry."
	msgSaveProfileFailed = "Failed to save user profile."
)

type Deps struct {
	Diary     *diary.Diary
	Profile   *profile.Profile
	Profiles  store.ProfileStore
	Estimator estimator.Estimator
	Ping      func(ctx context.Context) error
	Log       *zap.Logger
	Now       func() time.Time
}

type Server struct {
	deps Deps
	log  *zap.Logger
	now  func() time.Time

	app *fiber.App
}

type errorBody struct {
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type profileRequest struct {
	CurrentWeight float64             `json:"currentWeight"`
	GoalWeight    float64             `json:"goalWeight"`
	Height        float64             `json:"height"`
	Gender        model.Gender        `json:"gender"`
	ActivityLevel model.ActivityLevel `json:"activityLevel"`
	Age           int                 `json:"age"`
}

type profileResponse struct {
	Exists  bool              `json:"exists"`
	Profile model.UserProfile `json:"profile"`
	Targets metabolic.Targets `json:"targets"`
}

type summaryResponse struct {
	diary.DaySummary
	Targets metabolic.Targets `json:"targets"`
}

func New(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	s := &Server{deps: deps, log: log.Named("http"), now: now}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "*",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/healthz", s.health)

	api := app.Group("/api")
	api.Post("/generate", s.generate)
	api.Get("/entries", s.listEntries)
	api.Post("/entries", s.addEntry)
	api.Delete("/entries/:id", s.removeEntry)
	api.Get("/summary", s.summary)
	api.Get("/profile", s.getProfile)
	api.Put("/profile", s.putProfile)

	app.Get(gate.HomePath, s.guard, s.homePage)
	app.Get(gate.OnboardingPath, s.guard, s.onboardingPage)

	s.app = app
	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks until ctx is cancelled or the listener fails.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- s.app.Listen(addr)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.app.ShutdownWithTimeout(5 * time.Second)
	}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	msg := err.Error()
	if fe != nil {
		msg = fe.Message
	}
	return c.Status(code).JSON(errorBody{StatusCode: code, StatusMessage: msg})
}

func (s *Server) guard(c *fiber.Ctx) error {
	target, redirect := gate.Check(c.UserContext(), s.deps.Profiles, s.log, c.Path())
	if redirect {
		return c.Redirect(target, fiber.StatusFound)
	}
	return c.Next()
}

func (s *Server) homePage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "home", "summary": s.summaryFor(model.StartOfDay(s.now()))})
}

func (s *Server) onboardingPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "onboarding", "activityLevels": activityLabels()})
}

func (s *Server) health(c *fiber.Ctx) error {
	if s.deps.Ping == nil {
		return c.JSON(fiber.Map{"status": "ok"})
	}
	if err := s.deps.Ping(c.UserContext()); err != nil {
		s.log.Error("storage ping failed", zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, "storage unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) generate(c *fiber.Ctx) error {
	nutrition, err := s.estimate(c)
	if err != nil {
		return err
	}
	return c.JSON(nutrition)
}

func (s *Server) estimate(c *fiber.Ctx) (model.Nutrition, error) {
	var req promptRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		return model.Nutrition{}, fiber.NewError(fiber.StatusBadRequest, msgPromptRequired)
	}
	nutrition, err := s.deps.Estimator.Estimate(c.UserContext(), req.Prompt)
	if err != nil {
		if errors.Is(err, estimator.ErrMissingInput) {
			return model.Nutrition{}, fiber.NewError(fiber.StatusBadRequest, msgPromptRequired)
		}
		s.log.Error("error calling the nutrition model", zap.Error(err))
		return model.Nutrition{}, fiber.NewError(fiber.StatusInternalServerError, msgGenerateFailed)
	}
	return nutrition, nil
}

func (s *Server) listEntries(c *fiber.Ctx) error {
	dayStart, err := s.dayParam(c)
	if err != nil {
		return err
	}
	return c.JSON(s.deps.Diary.Day(dayStart).Entries)
}

func (s *Server) addEntry(c *fiber.Ctx) error {
	nutrition, err := s.estimate(c)
	if err != nil {
		return err
	}
	entry, err := s.deps.Diary.AddEntry(c.UserContext(), nutrition)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, msgSaveEntryFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// removeEntry answers 204 even when the durable delete fails; the entry is
// already gone from the in-memory log.
func (s *Server) removeEntry(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.deps.Diary.RemoveEntry(c.UserContext(), id); err != nil {
		s.log.Warn("entry removed from memory only", zap.String("id", id), zap.Error(err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) summary(c *fiber.Ctx) error {
	dayStart, err := s.dayParam(c)
	if err != nil {
		return err
	}
	return c.JSON(s.summaryFor(dayStart))
}

func (s *Server) summaryFor(dayStart int64) summaryResponse {
	return summaryResponse{
		DaySummary: s.deps.Diary.Day(dayStart),
		Targets:    s.deps.Profile.Metrics(),
	}
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	return c.JSON(s.profileResponse())
}

func (s *Server) putProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid profile: "+err.Error())
	}
	details := profile.Details{
		CurrentWeight: req.CurrentWeight,
		GoalWeight:    req.GoalWeight,
		Height:        req.Height,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Age:           req.Age,
	}
	if err := details.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := s.deps.Profile.Update(c.UserContext(), details); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, msgSaveProfileFailed)
	}
	return c.JSON(s.profileResponse())
}

func (s *Server) profileResponse() profileResponse {
	return profileResponse{
		Exists:  s.deps.Profile.Exists(),
		Profile: s.deps.Profile.Current(),
		Targets: s.deps.Profile.Metrics(),
	}
}

func (s *Server) dayParam(c *fiber.Ctx) (int64, error) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return model.StartOfDay(s.now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, msgInvalidDate)
	}
	return model.StartOfDay(t), nil
}

func activityLabels() []string {
	levels := model.ActivityLevels()
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, l.String())
	}
	return out
}
