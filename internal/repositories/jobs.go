package repositories

import (
	"context"
	"strings"

	"github.com/amco/vacancies/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups by id that match no row.
var ErrNotFound = errors.New("record not found")

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *entities.Job) error {
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *Jobs) GetByID(ctx context.Context, id uint) (*entities.Job, error) {
	var job entities.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (repo *Jobs) GetActive(ctx context.Context) ([]entities.Job, error) {
	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).Where("is_active = ?", true).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetAll(ctx context.Context) ([]entities.Job, error) {
	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// SearchByTitle matches term as a case-insensitive literal substring of the title.
func (repo *Jobs) SearchByTitle(ctx context.Context, term string) ([]entities.Job, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) Remove(ctx context.Context, id uint) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.Job{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
