// Package web serves the interactive planner UI and a small JSON API.
package web

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"veg-meal-planner/internal/planner"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PlanGenerator produces raw plan text from free-text preferences.
type PlanGenerator interface {
	Generate(ctx context.Context, preferences string) (string, error)
}

// PlanExporter persists parsed entries to the spreadsheet and the repository.
type PlanExporter interface {
	Export(ctx context.Context, entries []planner.MealEntry) planner.Result
}

// Server holds the web UI's collaborators.
type Server struct {
	store     planner.PlanStore
	generator PlanGenerator
	exporter  PlanExporter
	now       func() time.Time
}

// NewServer creates a new Server.
func NewServer(store planner.PlanStore, generator PlanGenerator, exporter PlanExporter) *Server {
	return &Server{
		store:     store,
		generator: generator,
		exporter:  exporter,
		now:       time.Now,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.handleIndex)
	r.GET("/plan", s.handlePlanForDate)
	r.POST("/generate", s.handleGenerate)
	r.GET("/api/plan/:date", s.handleAPIPlan)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// dayView is the template payload for one date.
type dayView struct {
	Date         string
	DateLabel    string
	Entries      []planner.MealEntry
	TomorrowPrep []string
}

func (s *Server) dayViewFor(plan planner.Plan, date time.Time) dayView {
	var preps []string
	for _, e := range plan.ForDate(date.AddDate(0, 0, 1)) {
		if e.Prep != "" {
			preps = append(preps, e.Prep)
		}
	}
	return dayView{
		Date:         date.Format(planner.DateLayout),
		DateLabel:    date.Format("Monday, 02 January 2006"),
		Entries:      plan.ForDate(date),
		TomorrowPrep: preps,
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	plan := s.store.Load(c.Request.Context())
	today := s.now()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Today":    s.dayViewFor(plan, today),
		"Selected": nil,
		"Status":   c.Query("status"),
		"Message":  c.Query("message"),
	})
}

func (s *Server) handlePlanForDate(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse(planner.DateLayout, dateStr)
	if err != nil {
		c.HTML(http.StatusBadRequest, "index.html", gin.H{
			"Status":  planner.StatusError,
			"Message": "Please pick a date in YYYY-MM-DD format.",
		})
		return
	}

	plan := s.store.Load(c.Request.Context())
	selected := s.dayViewFor(plan, date)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Today":    s.dayViewFor(plan, s.now()),
		"Selected": &selected,
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	preferences := c.PostForm("preferences")

	raw, err := s.generator.Generate(c.Request.Context(), preferences)
	if err != nil {
		s.renderResult(c, planner.Result{Status: planner.StatusError, Message: err.Error()})
		return
	}

	entries := planner.ParseEntries(raw)
	if len(entries) == 0 {
		s.renderResult(c, planner.Result{
			Status:  planner.StatusError,
			Message: "The generated plan could not be parsed. Try again.",
		})
		return
	}

	result := s.exporter.Export(c.Request.Context(), entries)
	log.Printf("Plan generation finished: status=%s message=%s", result.Status, result.Message)
	s.renderResult(c, result)
}

func (s *Server) renderResult(c *gin.Context, result planner.Result) {
	c.Redirect(http.StatusSeeOther, "/?status="+result.Status+"&message="+template.URLQueryEscaper(result.Message))
}

func (s *Server) handleAPIPlan(c *gin.Context) {
	date, err := time.Parse(planner.DateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	plan := s.store.Load(c.Request.Context())
	entries := plan.ForDate(date)
	if entries == nil {
		entries = []planner.MealEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format(planner.DateLayout), "entries": entries})
}
