package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/amco/vacancies/internal/entities"
	"github.com/amco/vacancies/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type jobRequest struct {
	Title        string `form:"title" binding:"required"`
	Description  string `form:"description" binding:"required"`
	Requirements string `form:"requirements" binding:"required"`
	Deadline     string `form:"deadline"`
}

func (r jobRequest) toForm() (services.JobForm, error) {
	form := services.JobForm{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
	}

	if deadline := strings.TrimSpace(r.Deadline); deadline != "" {
		parsed, err := time.ParseInLocation(entities.DeadlineLayout, deadline, time.Local)
		if err != nil {
			return form, errors.Wrapf(err, "invalid deadline %q", deadline)
		}
		form.Deadline = &parsed
	}
	return form, nil
}

type applicationRequest struct {
	FirstName  string `form:"first_name" binding:"required"`
	FatherName string `form:"father_name" binding:"required"`
	Email      string `form:"email" binding:"required"`
	Gender     string `form:"gender"`
	Age        int    `form:"age"`
}

// presenceOnlyFields may be submitted empty but must be present in the form.
var presenceOnlyFields = []string{"gender", "age"}

func hasPresenceOnlyFields(c *gin.Context) bool {
	return lo.EveryBy(presenceOnlyFields, func(field string) bool {
		_, ok := c.GetPostForm(field)
		return ok
	})
}

func (r applicationRequest) toForm() services.ApplicationForm {
	return services.ApplicationForm{
		FirstName:  r.FirstName,
		FatherName: r.FatherName,
		Email:      r.Email,
		Gender:     r.Gender,
		Age:        r.Age,
	}
}

type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type searchRequest struct {
	SearchTerm string `form:"search_term"`
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func uintToString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
