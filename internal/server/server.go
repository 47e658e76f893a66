package server

import (
	"context"
	"embed"
	"html/template"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/amco/vacancies/internal/config"
	"github.com/amco/vacancies/internal/entities"
	"github.com/amco/vacancies/internal/metrics"
	"github.com/amco/vacancies/internal/services"
	"github.com/amco/vacancies/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

type jobService interface {
	Create(ctx context.Context, form services.JobForm) (*entities.Job, error)
	Get(ctx context.Context, id uint) (*entities.Job, error)
	ListActive(ctx context.Context) ([]entities.Job, error)
	ListAll(ctx context.Context) ([]entities.Job, error)
	Search(ctx context.Context, term string) ([]entities.Job, error)
	Delete(ctx context.Context, id uint) (*entities.Job, error)
}

type applicationService interface {
	CheckOpen(ctx context.Context, jobID uint) (*entities.Job, error)
	Submit(ctx context.Context, jobID uint, form services.ApplicationForm, cv *multipart.FileHeader) (*entities.AppliedJob, error)
	ListForJob(ctx context.Context, jobID uint) ([]entities.AppliedJob, error)
	Delete(ctx context.Context, id uint) (*entities.AppliedJob, error)
}

type fileLocator interface {
	Path(name string) (string, error)
}

type Dependencies struct {
	Jobs         jobService
	Applications applicationService
	Files        fileLocator
	Sessions     *session.Store
}

type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	jobs         jobService
	applications applicationService
	files        fileLocator
	admin        config.AdminConfig
	uploads      config.UploadsConfig
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Jobs == nil || deps.Applications == nil || deps.Files == nil || deps.Sessions == nil {
		return nil, errors.New("server dependencies are incomplete")
	}

	gin.SetMode(cfg.Server.Mode)

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "can't parse templates")
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(recovery(), requestLogger(), requestMetrics(), deps.Sessions.Middleware())

	s := &Server{
		engine:       engine,
		jobs:         deps.Jobs,
		applications: deps.Applications,
		files:        deps.Files,
		admin:        cfg.Admin,
		uploads:      cfg.Uploads,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.engine.GET("/", s.vacancy)
	s.engine.GET("/vacancy", s.vacancy)
	s.engine.GET("/search", s.search)
	s.engine.POST("/search", s.search)
	s.engine.GET("/apply/:jobId", s.apply)
	s.engine.POST("/apply/:jobId", s.apply)
	s.engine.GET("/uploads/:filename", s.uploadedFile)
	s.engine.GET("/download_cv/*path", s.downloadCV)

	s.engine.GET("/lagin", s.loginPage)
	s.engine.POST("/lagin", s.login)
	s.engine.GET("/lagout", s.logout)

	admin := s.engine.Group("", requireAdmin(s.admin.RequireLogin))
	admin.GET("/lagin/vadmin", s.adminJobs)

	vadmin := admin.Group("/vadmin")
	vadmin.GET("/add_job", s.addJobPage)
	vadmin.POST("/add_job", s.addJob)
	vadmin.POST("/delete_job/:id", s.deleteJob)
	vadmin.GET("/applied_jobs/:jobId", s.appliedJobs)
	vadmin.POST("/delete_applied_job/:id", s.deleteAppliedJob)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks until the server stops. A graceful shutdown is not reported as an error.
func (s *Server) Run() error {
	log.Infof("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

var templateFuncs = template.FuncMap{
	"deadline": func(deadline *time.Time) string {
		if deadline == nil {
			return "No deadline"
		}
		return deadline.Format("2006-01-02 15:04")
	},
}
