package ctrl

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/graylog"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

// CreationDateLayout is the timestamp format Graylog expects in creation_date.
const CreationDateLayout = "2006-01-02T15:04:05.000000Z"

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMissingName      = errors.New("missing name to query")
	ErrReadBack         = errors.New("failed to read current resource")
)

type Dispatcher struct {
	transport Transport
	families  FamilyRepository
	clock     Clock
	logger    zerolog.Logger
}

func NewDispatcher(transport Transport, families FamilyRepository, clock Clock, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		families:  families,
		clock:     clock,
		logger:    logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch performs verb on family and returns the envelope of the final
// response. A response with a status other than the one the operation
// expects fails with ErrUnexpectedStatus joined with a *graylog.HTTPError.
func (d *Dispatcher) Dispatch(ctx context.Context, token entity.Token, family entity.Family, verb entity.Verb, fields entity.Fields) (*entity.Result, error) {
	descriptor, err := d.families.Find(ctx, family)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, family)
	}

	if verb == entity.VerbQuery {
		return d.query(ctx, token, descriptor, fields)
	}

	op, err := descriptor.Operation(verb)
	if err != nil {
		return nil, err
	}

	fields = fields.Clone()

	if op.Stamp != "" && !fields.Has(op.Stamp) {
		fields[op.Stamp] = d.clock.Now().UTC().Format(CreationDateLayout)
	}

	if op.DefaultIndexSet && !fields.Has(resource.FieldIndexSetID) {
		id, err := d.DefaultIndexSet(ctx, token)
		switch {
		case errors.Is(err, ErrNoIndexSet):
			// the server picks its own default
			d.logger.Warn().Msg("no index set found, creating stream without index_set_id")
		case err != nil:
			return nil, err
		default:
			fields[resource.FieldIndexSetID] = id
		}
	}

	if len(op.Preserve) > 0 {
		if err := d.preserve(ctx, token, descriptor, op, fields); err != nil {
			return nil, err
		}
	}

	return d.execute(ctx, token, descriptor, op, fields)
}

// preserve copies every preserved field the caller left unset from the
// current state of the resource.
func (d *Dispatcher) preserve(ctx context.Context, token entity.Token, descriptor *resource.Descriptor, op resource.Operation, fields entity.Fields) error {
	missing := make([]string, 0, len(op.Preserve))
	for _, name := range op.Preserve {
		if !fields.Has(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	read := resource.Operation{
		Method: http.MethodGet,
		Target: resource.TargetItem,
		Expect: http.StatusOK,
	}

	result, err := d.execute(ctx, token, descriptor, read, fields)
	if err != nil {
		return err
	}

	var current map[string]any
	if err := result.Decode(&current); err != nil {
		return errors.Join(ErrReadBack, err)
	}

	for _, name := range missing {
		if v, ok := current[name]; ok && v != nil {
			fields[name] = v
		}
	}

	d.logger.Debug().Str("family", string(descriptor.Family)).Strs("preserved", missing).Msg("carried current values forward")

	return nil
}

func (d *Dispatcher) query(ctx context.Context, token entity.Token, descriptor *resource.Descriptor, fields entity.Fields) (*entity.Result, error) {
	if !descriptor.Resolvable() {
		return nil, fmt.Errorf("%w: %s", ErrNotResolvable, descriptor.Family)
	}

	name, ok := fields.String(descriptor.TitleField)
	if !ok {
		return nil, fmt.Errorf("%w: %s requires %s", ErrMissingName, descriptor.Family, descriptor.TitleField)
	}

	listing, id, found, err := d.lookup(ctx, token, descriptor, name)
	if err != nil {
		return nil, err
	}

	if !found {
		return &entity.Result{
			Status: listing.Status,
			Msg:    fmt.Sprintf("no %s titled %q", descriptor.Family, name),
			URL:    listing.URL,
		}, nil
	}

	op, err := descriptor.Operation(entity.VerbList)
	if err != nil {
		return nil, err
	}

	return d.execute(ctx, token, descriptor, op, entity.Fields{descriptor.IDField: id})
}

// execute issues the single request of op and checks its status.
func (d *Dispatcher) execute(ctx context.Context, token entity.Token, descriptor *resource.Descriptor, op resource.Operation, fields entity.Fields) (*entity.Result, error) {
	path, err := descriptor.Path(op, fields)
	if err != nil {
		return nil, err
	}

	request := &graylog.Request{
		Method: op.Method,
		URL:    d.transport.URL(path),
		Token:  token,
	}
	if op.Payload {
		request.Body = descriptor.Payload(op, fields)
	}

	resp, err := d.transport.Do(ctx, request)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != op.Expect {
		d.logger.Debug().
			Str("family", string(descriptor.Family)).
			Int("status", resp.StatusCode).
			Int("expect", op.Expect).
			Msg("unexpected status")
		return nil, errors.Join(ErrUnexpectedStatus, graylog.NewHTTPError(resp))
	}

	return BuildEnvelope(resp.StatusCode, resp.Message, resp.Body, resp.URL), nil
}
