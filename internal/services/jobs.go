package services

import (
	"context"
	"time"

	"github.com/amco/vacancies/internal/entities"
	"github.com/amco/vacancies/internal/events"
	"github.com/amco/vacancies/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type JobRepository interface {
	Add(ctx context.Context, job *entities.Job) error
	GetByID(ctx context.Context, id uint) (*entities.Job, error)
	GetActive(ctx context.Context) ([]entities.Job, error)
	GetAll(ctx context.Context) ([]entities.Job, error)
	SearchByTitle(ctx context.Context, term string) ([]entities.Job, error)
	Remove(ctx context.Context, id uint) (int64, error)
}

type JobForm struct {
	Title        string
	Description  string
	Requirements string
	Deadline     *time.Time
}

type Jobs struct {
	repo JobRepository
	bus  EventBus.Bus
	now  func() time.Time
}

func NewJobs(repo JobRepository, bus EventBus.Bus) (*Jobs, error) {
	if repo == nil {
		return nil, errors.New("job repository is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	return &Jobs{repo: repo, bus: bus, now: time.Now}, nil
}

func (s *Jobs) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Jobs) Create(ctx context.Context, form JobForm) (*entities.Job, error) {
	job := entities.NewJob(form.Title, form.Description, form.Requirements, form.Deadline, s.now())

	if err := s.repo.Add(ctx, &job); err != nil {
		return nil, errors.Wrap(err, "can't add job")
	}
	metrics.JobsCreatedCounter.Inc()
	log.Infof("job %d %q created, active: %v", job.ID, job.Title, job.IsActive)

	s.bus.Publish(events.JobAddedTopic, ctx, events.JobAdded{Job: job})
	return &job, nil
}

func (s *Jobs) Get(ctx context.Context, id uint) (*entities.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "can't get job %d", id)
	}
	return job, nil
}

// ListActive returns the jobs whose stored IsActive flag is set.
func (s *Jobs) ListActive(ctx context.Context) ([]entities.Job, error) {
	jobs, err := s.repo.GetActive(ctx)
	return jobs, errors.Wrap(err, "can't get active jobs")
}

func (s *Jobs) ListAll(ctx context.Context) ([]entities.Job, error) {
	jobs, err := s.repo.GetAll(ctx)
	return jobs, errors.Wrap(err, "can't get jobs")
}

func (s *Jobs) Search(ctx context.Context, term string) ([]entities.Job, error) {
	jobs, err := s.repo.SearchByTitle(ctx, term)
	return jobs, errors.Wrapf(err, "can't search jobs by %q", term)
}

// Delete removes the job row first and records the deletion afterwards.
// Applications referencing the job are left untouched.
func (s *Jobs) Delete(ctx context.Context, id uint) (*entities.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.Remove(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "can't remove job %d", id)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	log.Infof("job %d %q deleted", job.ID, job.Title)

	s.bus.Publish(events.JobDeletedTopic, ctx, events.JobDeleted{Job: *job})
	return job, nil
}
