package service

import (
	"github.com/eokafor/librarium/config"
	"github.com/eokafor/librarium/internal/jsonlog"
	"github.com/eokafor/librarium/repository"
)

type Service interface {
	books
	members
	issues
}

// service defines the app's service layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
	}
}
