package repositories

import (
	"context"

	"github.com/amco/vacancies/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AppliedJobs struct {
	db *gorm.DB
}

func NewAppliedJobsRepository(db *gorm.DB) *AppliedJobs {
	return &AppliedJobs{db: db}
}

func (repo *AppliedJobs) Add(ctx context.Context, application *entities.AppliedJob) error {
	return repo.db.WithContext(ctx).Create(application).Error
}

func (repo *AppliedJobs) GetByID(ctx context.Context, id uint) (*entities.AppliedJob, error) {
	var application entities.AppliedJob
	if err := repo.db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (repo *AppliedJobs) GetByJob(ctx context.Context, jobID uint) ([]entities.AppliedJob, error) {
	var applications []entities.AppliedJob
	if err := repo.db.WithContext(ctx).Find(&applications, "job_id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (repo *AppliedJobs) Remove(ctx context.Context, id uint) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.AppliedJob{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
