package app

import (
	"time"

	"github.com/atomictrack/atomictrack/internal/app/api/server"
	"github.com/atomictrack/atomictrack/internal/app/service/habit"
	"github.com/atomictrack/atomictrack/internal/app/service/profile"
	"github.com/atomictrack/atomictrack/internal/app/service/stats"
	"github.com/atomictrack/atomictrack/internal/app/service/subscription"
	"github.com/atomictrack/atomictrack/internal/app/service/webhook"
	"github.com/atomictrack/atomictrack/internal/app/service/xp"
	"github.com/atomictrack/atomictrack/internal/platform/cache"
	"github.com/atomictrack/atomictrack/internal/platform/db"
	"github.com/atomictrack/atomictrack/pkg/config"
	"github.com/atomictrack/atomictrack/pkg/logger"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
	server.Module,
	stats.Module,
	xp.Module,
	habit.Module,
	profile.Module,
	subscription.Module,
	webhook.Module,
)
