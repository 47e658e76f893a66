package services

import (
	"github.com/amco/vacancies/internal/repositories"
	"github.com/pkg/errors"
)

var (
	ErrNotFound        = repositories.ErrNotFound
	ErrDeadlinePassed  = errors.New("application deadline has passed")
	ErrInvalidFileName = errors.New("invalid upload file name")
)
