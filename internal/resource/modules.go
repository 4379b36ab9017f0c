package resource

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
)

var (
	ErrUnsupportedAction = errors.New("unsupported action")
)

// Binding maps a module action onto a family operation.
type Binding struct {
	Family *Descriptor
	Verb   entity.Verb
	// NameField holds the title looked up by query actions.
	NameField string
}

type Module struct {
	Name    string
	Command string
	Short   string
	Actions map[entity.Action]Binding
}

var IndexSets = &Module{
	Name:    "graylog_index_sets",
	Command: "index-sets",
	Short:   "Manage Graylog index sets",
	Actions: map[entity.Action]Binding{
		"create":           {Family: IndexSet, Verb: entity.VerbCreate},
		"update":           {Family: IndexSet, Verb: entity.VerbUpdate},
		"delete":           {Family: IndexSet, Verb: entity.VerbDelete},
		"list":             {Family: IndexSet, Verb: entity.VerbList},
		"query_index_sets": {Family: IndexSet, Verb: entity.VerbQuery, NameField: "title"},
	},
}

var Streams = &Module{
	Name:    "graylog_streams",
	Command: "streams",
	Short:   "Manage Graylog streams and stream rules",
	Actions: map[entity.Action]Binding{
		"create":        {Family: Stream, Verb: entity.VerbCreate},
		"update":        {Family: Stream, Verb: entity.VerbUpdate},
		"delete":        {Family: Stream, Verb: entity.VerbDelete},
		"list":          {Family: Stream, Verb: entity.VerbList},
		"create_rule":   {Family: StreamRule, Verb: entity.VerbCreate},
		"update_rule":   {Family: StreamRule, Verb: entity.VerbUpdate},
		"delete_rule":   {Family: StreamRule, Verb: entity.VerbDelete},
		"list_rules":    {Family: StreamRule, Verb: entity.VerbList},
		"query_streams": {Family: Stream, Verb: entity.VerbQuery, NameField: "stream_name"},
	},
}

var Pipelines = &Module{
	Name:    "graylog_pipelines",
	Command: "pipelines",
	Short:   "Manage Graylog pipelines, pipeline rules and stream connections",
	Actions: map[entity.Action]Binding{
		"create":            {Family: Pipeline, Verb: entity.VerbCreate},
		"update":            {Family: Pipeline, Verb: entity.VerbUpdate},
		"delete":            {Family: Pipeline, Verb: entity.VerbDelete},
		"list":              {Family: Pipeline, Verb: entity.VerbList},
		"create_rule":       {Family: PipelineRule, Verb: entity.VerbCreate},
		"update_rule":       {Family: PipelineRule, Verb: entity.VerbUpdate},
		"delete_rule":       {Family: PipelineRule, Verb: entity.VerbDelete},
		"list_rules":        {Family: PipelineRule, Verb: entity.VerbList},
		"parse_rule":        {Family: PipelineRule, Verb: entity.VerbParse},
		"create_connection": {Family: PipelineConnection, Verb: entity.VerbCreate},
		"update_connection": {Family: PipelineConnection, Verb: entity.VerbUpdate},
		"query_pipelines":   {Family: Pipeline, Verb: entity.VerbQuery, NameField: "pipeline_name"},
	},
}

func Modules() []*Module {
	return []*Module{IndexSets, Streams, Pipelines}
}

// Binding returns the family operation of action; the empty action selects
// entity.DefaultAction.
func (m *Module) Binding(action entity.Action) (Binding, error) {
	if action == "" {
		action = entity.DefaultAction
	}

	b, ok := m.Actions[action]
	if !ok {
		return Binding{}, fmt.Errorf("%w: %s does not support %q", ErrUnsupportedAction, m.Name, action)
	}
	return b, nil
}

func (m *Module) ActionNames() []string {
	names := make([]string, 0, len(m.Actions))
	for action := range m.Actions {
		names = append(names, string(action))
	}
	slices.Sort(names)
	return names
}

// Parameters returns every argument the module accepts besides the action:
// ids, name fields and the payload fields of each bound family, sorted by
// name.
func (m *Module) Parameters() []Field {
	var (
		params []Field
		seen   = map[string]bool{}
	)

	add := func(f Field) {
		if seen[f.Name] {
			return
		}
		seen[f.Name] = true
		params = append(params, f)
	}

	for _, action := range m.ActionNames() {
		b := m.Actions[entity.Action(action)]

		for _, parent := range b.Family.Parents() {
			add(Field{Name: parent, Kind: KindString, Help: "parent id"})
		}
		if b.Family.IDField != "" {
			add(Field{Name: b.Family.IDField, Kind: KindString, Help: fmt.Sprintf("%s id", b.Family.Family)})
		}
		if b.NameField != "" {
			add(Field{Name: b.NameField, Kind: KindString, Help: fmt.Sprintf("%s title to look up", b.Family.Family)})
		}
		for _, f := range b.Family.Fields {
			add(f)
		}
	}

	slices.SortFunc(params, func(a, b Field) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return params
}
