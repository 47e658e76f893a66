package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/amco/vacancies/internal/entities"
	"github.com/amco/vacancies/internal/events"
	"github.com/amco/vacancies/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ApplicationRepository interface {
	Add(ctx context.Context, application *entities.AppliedJob) error
	GetByID(ctx context.Context, id uint) (*entities.AppliedJob, error)
	GetByJob(ctx context.Context, jobID uint) ([]entities.AppliedJob, error)
	Remove(ctx context.Context, id uint) (int64, error)
}

type jobGetter interface {
	Get(ctx context.Context, id uint) (*entities.Job, error)
}

type fileStorage interface {
	Save(file *multipart.FileHeader) (string, error)
}

type ApplicationForm struct {
	FirstName  string
	FatherName string
	Email      string
	Gender     string
	Age        int
}

type Applications struct {
	repo    ApplicationRepository
	jobs    jobGetter
	storage fileStorage
	bus     EventBus.Bus
	now     func() time.Time
}

func NewApplications(repo ApplicationRepository, jobs jobGetter, storage fileStorage, bus EventBus.Bus) (*Applications, error) {
	if repo == nil {
		return nil, errors.New("application repository is nil")
	}
	if jobs == nil {
		return nil, errors.New("jobs service is nil")
	}
	if storage == nil {
		return nil, errors.New("file storage is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	return &Applications{repo: repo, jobs: jobs, storage: storage, bus: bus, now: time.Now}, nil
}

func (s *Applications) SetClock(now func() time.Time) {
	s.now = now
}

// CheckOpen returns the job if it still accepts applications. The deadline is
// compared with the current time; the job's stored IsActive flag is not consulted.
func (s *Applications) CheckOpen(ctx context.Context, jobID uint) (*entities.Job, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.DeadlinePassed(s.now()) {
		return job, ErrDeadlinePassed
	}
	return job, nil
}

func (s *Applications) Submit(ctx context.Context, jobID uint, form ApplicationForm, cv *multipart.FileHeader) (*entities.AppliedJob, error) {
	job, err := s.CheckOpen(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrDeadlinePassed) {
			metrics.ApplicationsRejectedCounter.WithLabelValues("deadline_passed").Inc()
		}
		return nil, err
	}

	cvPath, err := s.storage.Save(cv)
	if err != nil {
		return nil, err
	}

	application := entities.AppliedJob{
		JobID:          job.ID,
		FirstName:      form.FirstName,
		FatherName:     form.FatherName,
		ApplicantEmail: form.Email,
		Gender:         form.Gender,
		Age:            form.Age,
		CVPath:         cvPath,
	}
	if err = s.repo.Add(ctx, &application); err != nil {
		return nil, errors.Wrap(err, "can't add application")
	}
	metrics.ApplicationsSubmittedCounter.Inc()
	log.Infof("application %d submitted for job %d", application.ID, job.ID)

	s.bus.Publish(events.ApplicationSubmittedTopic, ctx, events.ApplicationSubmitted{Job: *job, Application: application})
	return &application, nil
}

func (s *Applications) ListForJob(ctx context.Context, jobID uint) ([]entities.AppliedJob, error) {
	applications, err := s.repo.GetByJob(ctx, jobID)
	return applications, errors.Wrapf(err, "can't get applications for job %d", jobID)
}

// Delete removes the application and returns it so the caller knows its job.
func (s *Applications) Delete(ctx context.Context, id uint) (*entities.AppliedJob, error) {
	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "can't get application %d", id)
	}

	affected, err := s.repo.Remove(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "can't remove application %d", id)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	log.Infof("application %d for job %d deleted", application.ID, application.JobID)

	s.bus.Publish(events.ApplicationDeletedTopic, ctx, events.ApplicationDeleted{Application: *application})
	return application, nil
}
