//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/ctrl"
	"github.com/tjjh89017/graylog-manage-go/internal/graylog"
	"github.com/tjjh89017/graylog-manage-go/internal/logger"
	"github.com/tjjh89017/graylog-manage-go/internal/module"
	"github.com/tjjh89017/graylog-manage-go/internal/repo"
	"github.com/tjjh89017/graylog-manage-go/internal/session"
)

func setupAction(cfg *config.Config) (*ctrl.ActionController, error) {
	wire.Build(
		logger.DefaultSet,
		graylog.DefaultSet,
		wire.Bind(new(ctrl.Transport), new(*graylog.Client)),
		wire.Bind(new(session.Transport), new(*graylog.Client)),
		session.DefaultSet,
		wire.Bind(new(ctrl.Authenticator), new(*session.Authenticator)),
		repo.DefaultSet,
		ctrl.DefaultSet,
	)

	return nil, nil
}

func setupModule(cfg *config.Config) (*module.Runner, error) {
	wire.Build(
		logger.DefaultSet,
		provideFs,
		repo.NewModules,
		wire.Bind(new(ctrl.ModuleRepository), new(*repo.Modules)),
		provideExecutorFactory,
		module.DefaultSet,
	)

	return nil, nil
}
