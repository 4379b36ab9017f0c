//go:generate mockgen -destination=./mock/mock_runner.go -package=mock_module . Executor

package module

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/wire"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/ctrl"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/graylog"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
	"github.com/tjjh89017/graylog-manage-go/pluginapi"
)

// StdinPath reads the argument document from stdin.
const StdinPath = "-"

var DefaultSet = wire.NewSet(
	NewRunner,
)

var (
	ErrReadArgs   = errors.New("failed to read module arguments")
	ErrDecodeArgs = errors.New("failed to decode module arguments")
)

type Executor interface {
	Execute(ctx context.Context, req *ctrl.ActionRequest) (*ctrl.ActionResponse, error)
}

// ExecutorFactory builds the action pipeline for a configuration that
// already carries the module connection arguments.
type ExecutorFactory func(config *config.Config) (Executor, error)

// Runner executes one Ansible style module invocation.
type Runner struct {
	fs      afero.Fs
	config  *config.Config
	modules ctrl.ModuleRepository
	factory ExecutorFactory
	logger  zerolog.Logger
}

func NewRunner(fs afero.Fs, config *config.Config, modules ctrl.ModuleRepository, factory ExecutorFactory, logger *zerolog.Logger) *Runner {
	return &Runner{
		fs:      fs,
		config:  config,
		modules: modules,
		factory: factory,
		logger:  logger.With().Str("component", "module").Logger(),
	}
}

// Run executes module with the arguments stored at path and writes the
// result document to stdout. It returns the process exit code.
func (r *Runner) Run(ctx context.Context, module string, path string, stdin io.Reader, stdout io.Writer) int {
	result, err := r.run(ctx, module, path, stdin)
	if err != nil {
		r.logger.Error().Err(err).Str("module", module).Msg("module failed")
		result = failure(err)
	}

	if err := json.NewEncoder(stdout).Encode(result); err != nil {
		r.logger.Error().Err(err).Msg("failed to write module result")
		return 1
	}

	if result.Failed {
		return 1
	}
	return 0
}

func (r *Runner) run(ctx context.Context, module string, path string, stdin io.Reader) (*pluginapi.ModuleResult, error) {
	m, err := r.modules.Find(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, module)
	}

	data, err := r.read(path, stdin)
	if err != nil {
		return nil, err
	}

	args, err := Decode(data, m.Parameters())
	if err != nil {
		return nil, err
	}

	cfg := r.merge(args)

	r.logger.Debug().
		Str("module", m.Name).
		Str("action", args.Action).
		Interface("config", cfg.Redacted()).
		Msg("running module")

	executor, err := r.factory(cfg)
	if err != nil {
		return nil, err
	}

	resp, err := executor.Execute(ctx, &ctrl.ActionRequest{
		Module: module,
		Action: entity.Action(args.Action),
		Fields: entity.Fields(args.Fields),
	})
	if err != nil {
		return nil, err
	}

	return &pluginapi.ModuleResult{
		Changed: resp.Changed,
		Msg:     resp.Result.Msg,
		JSON:    resp.Result.JSON,
		Status:  resp.Result.Status,
		URL:     resp.Result.URL,
	}, nil
}

func (r *Runner) read(path string, stdin io.Reader) ([]byte, error) {
	if path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Join(ErrReadArgs, err)
		}
		return data, nil
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadArgs, err)
	}
	return data, nil
}

// merge overlays the connection arguments onto a copy of the loaded
// configuration.
func (r *Runner) merge(args *pluginapi.ModuleArgs) *config.Config {
	cfg := *r.config

	if args.Endpoint != "" {
		cfg.Endpoint = args.Endpoint
	}
	if args.User != "" {
		cfg.Username = args.User
	}
	if args.Password != "" {
		cfg.Password = args.Password
	}
	if args.ValidateCerts != nil {
		cfg.ValidateCerts = *args.ValidateCerts
	}

	return &cfg
}

// Decode parses an argument document. Ansible internal arguments are dropped
// and resource arguments are converted to the kind of their parameter.
func Decode(data []byte, params []resource.Field) (*pluginapi.ModuleArgs, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Join(ErrDecodeArgs, err)
	}

	for key := range raw {
		if strings.HasPrefix(key, pluginapi.AnsiblePrefix) {
			delete(raw, key)
		}
	}

	var args pluginapi.ModuleArgs
	md, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &args,
	})
	if err != nil {
		return nil, errors.Join(ErrDecodeArgs, err)
	}

	if err := md.Decode(raw); err != nil {
		return nil, errors.Join(ErrDecodeArgs, err)
	}

	if args.Fields == nil {
		args.Fields = map[string]any{}
	}

	if err := Coerce(args.Fields, params); err != nil {
		return nil, errors.Join(ErrDecodeArgs, err)
	}

	return &args, nil
}

func failure(err error) *pluginapi.ModuleResult {
	result := &pluginapi.ModuleResult{
		Failed: true,
		Msg:    fmt.Sprintf("Fail: %s", err),
	}

	var httpErr *graylog.HTTPError
	if errors.As(err, &httpErr) {
		result.Status = httpErr.StatusCode
		result.Body = httpErr.Body
		result.URL = httpErr.URL
	}

	return result
}
