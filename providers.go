package main

import (
	"github.com/spf13/afero"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/module"
)

func provideFs() afero.Fs {
	return afero.NewOsFs()
}

// provideExecutorFactory builds a fresh action pipeline per module
// invocation, once the argument document has been merged into the config.
func provideExecutorFactory() module.ExecutorFactory {
	return func(cfg *config.Config) (module.Executor, error) {
		controller, err := setupAction(cfg)
		if err != nil {
			return nil, err
		}
		return controller, nil
	}
}
