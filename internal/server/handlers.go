package server

import (
	"net/http"
	"path/filepath"

	"github.com/amco/vacancies/internal/logger"
	"github.com/amco/vacancies/internal/services"
	"github.com/amco/vacancies/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const deadlinePassedMessage = "Application deadline has passed."

func (s *Server) vacancy(c *gin.Context) {
	jobs, err := s.jobs.ListActive(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "vacancy.html", gin.H{"jobs": jobs})
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if req.SearchTerm == "" && c.Request.Method == http.MethodGet {
		c.Redirect(http.StatusFound, "/")
		return
	}

	jobs, err := s.jobs.Search(c.Request.Context(), req.SearchTerm)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "search_results.html", gin.H{"jobs": jobs, "search_term": req.SearchTerm})
}

func (s *Server) apply(c *gin.Context) {
	jobID, ok := parseID(c.Param("jobId"))
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()
	data := gin.H{"accept": s.uploads.AcceptAttribute()}

	job, err := s.applications.CheckOpen(ctx, jobID)
	if errors.Is(err, services.ErrDeadlinePassed) {
		data["job"], data["error"] = job, deadlinePassedMessage
		s.render(c, http.StatusOK, "apply.html", data)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	data["job"] = job

	if c.Request.Method != http.MethodPost {
		s.render(c, http.StatusOK, "apply.html", data)
		return
	}

	var req applicationRequest
	if err = c.ShouldBind(&req); err != nil || !hasPresenceOnlyFields(c) {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	cv, err := c.FormFile("cv")
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	_, err = s.applications.Submit(ctx, jobID, req.toForm(), cv)
	switch {
	case errors.Is(err, services.ErrDeadlinePassed):
		data["error"] = deadlinePassedMessage
		s.render(c, http.StatusOK, "apply.html", data)
	case errors.Is(err, services.ErrInvalidFileName):
		c.AbortWithStatus(http.StatusBadRequest)
	case err != nil:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeUpload).Errorf("can't submit application: %v", err)
		s.fail(c, err)
	default:
		c.Redirect(http.StatusFound, "/vacancy")
	}
}

func (s *Server) uploadedFile(c *gin.Context) {
	file, err := s.files.Path(c.Param("filename"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.File(file)
}

// downloadCV accepts the stored "uploads/<name>" path as well as a bare name;
// both resolve to the same file in the flat upload directory.
func (s *Server) downloadCV(c *gin.Context) {
	file, err := s.files.Path(c.Param("path"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.FileAttachment(file, filepath.Base(file))
}

func (s *Server) loginPage(c *gin.Context) {
	s.render(c, http.StatusOK, "lagin.html", gin.H{})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if req.Username != s.admin.Username || req.Password != s.admin.Password {
		log.Warnf("failed admin login for %q from %s", req.Username, c.ClientIP())
		s.render(c, http.StatusOK, "lagin.html", gin.H{"error": "Invalid username or password"})
		return
	}

	session.FromContext(c).Set(session.AdminLoggedInKey, true)
	log.Infof("admin logged in from %s", c.ClientIP())
	c.Redirect(http.StatusFound, "/lagin/vadmin")
}

func (s *Server) logout(c *gin.Context) {
	session.FromContext(c).Delete(session.AdminLoggedInKey)
	c.Redirect(http.StatusFound, "/lagin")
}

func (s *Server) adminJobs(c *gin.Context) {
	jobs, err := s.jobs.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "vadmin.html", gin.H{"jobs": jobs})
}

func (s *Server) addJobPage(c *gin.Context) {
	s.render(c, http.StatusOK, "add_job.html", gin.H{})
}

func (s *Server) addJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	form, err := req.toForm()
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if _, err = s.jobs.Create(c.Request.Context(), form); err != nil {
		s.fail(c, err)
		return
	}
	c.String(http.StatusOK, "Job added successfully!")
}

func (s *Server) deleteJob(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if _, err := s.jobs.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/lagin/vadmin")
}

func (s *Server) appliedJobs(c *gin.Context) {
	jobID, ok := parseID(c.Param("jobId"))
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	applications, err := s.applications.ListForJob(c.Request.Context(), jobID)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "applied_jobs.html", gin.H{"applied_jobs": applications, "job_id": jobID})
}

func (s *Server) deleteAppliedJob(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	application, err := s.applications.Delete(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/vadmin/applied_jobs/"+uintToString(application.JobID))
}

func (s *Server) render(c *gin.Context, code int, name string, data gin.H) {
	data["admin"] = session.FromContext(c).IsAdmin()
	c.HTML(code, name, data)
}

// fail maps lookups that found nothing to 404 and everything else to 500.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
