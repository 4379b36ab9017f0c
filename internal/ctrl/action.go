package ctrl

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

type ActionRequest struct {
	// Module is the Ansible module name or its command name.
	Module string
	Action entity.Action
	Fields entity.Fields
}

type ActionResponse struct {
	Result  *entity.Result
	Changed bool
}

// ActionController runs one module action: it authenticates once, then
// dispatches the bound family operation with the session token.
type ActionController struct {
	modules       ModuleRepository
	authenticator Authenticator
	dispatcher    *Dispatcher
	applyDefaults bool
	logger        zerolog.Logger
}

func NewActionController(modules ModuleRepository, authenticator Authenticator, dispatcher *Dispatcher, config *config.Config, logger *zerolog.Logger) *ActionController {
	return &ActionController{
		modules:       modules,
		authenticator: authenticator,
		dispatcher:    dispatcher,
		applyDefaults: config.ApplyDefaults,
		logger:        logger.With().Str("component", "action").Logger(),
	}
}

func (c *ActionController) Execute(ctx context.Context, req *ActionRequest) (*ActionResponse, error) {
	module, err := c.modules.Find(ctx, req.Module)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, req.Module)
	}

	binding, err := module.Binding(req.Action)
	if err != nil {
		return nil, err
	}

	fields := c.prepare(binding, req.Fields)

	logger := c.logger.With().
		Str("module", module.Name).
		Str("family", string(binding.Family.Family)).
		Str("verb", string(binding.Verb)).
		Logger()
	ctx = logger.WithContext(ctx)

	token, err := c.authenticator.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug().Msg("dispatching action")

	result, err := c.dispatcher.Dispatch(ctx, token, binding.Family.Family, binding.Verb, fields)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("status", result.Status).Str("url", result.URL).Msg("action completed")

	return &ActionResponse{
		Result:  result,
		Changed: binding.Verb.Mutating(),
	}, nil
}

// prepare maps module arguments onto the family fields: query actions move
// the name argument onto the title field, creates get the family defaults
// when enabled.
func (c *ActionController) prepare(binding resource.Binding, fields entity.Fields) entity.Fields {
	switch {
	case binding.Verb == entity.VerbQuery:
		if name, ok := fields.Get(binding.NameField); ok {
			return fields.With(binding.Family.TitleField, name)
		}
		return fields.Clone()
	case binding.Verb == entity.VerbCreate && c.applyDefaults:
		return binding.Family.ApplyDefaults(fields)
	default:
		return fields.Clone()
	}
}
