package handler

import (
	"github.com/eokafor/librarium/config"
	"github.com/eokafor/librarium/internal/jsonlog"
	"github.com/eokafor/librarium/service"
	"github.com/jellydator/ttlcache/v3"
)

// Handler defines Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	cache   *ttlcache.Cache[string, any]
	service service.Service
}

// New creates a new instance of Handler.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, any], service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		cache:   cache,
		service: service,
	}
}
