package resource

import (
	"net/http"
	"net/url"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
)

const (
	FieldCreationDate = "creation_date"
	FieldIndexSetID   = "index_set_id"
	FieldSource       = "source"
)

const (
	TimeBasedRotationStrategy       = "org.graylog2.indexer.rotation.strategies.TimeBasedRotationStrategy"
	TimeBasedRotationStrategyConfig = "org.graylog2.indexer.rotation.strategies.TimeBasedRotationStrategyConfig"
	DeletionRetentionStrategy       = "org.graylog2.indexer.retention.strategies.DeletionRetentionStrategy"
	DeletionRetentionStrategyConfig = "org.graylog2.indexer.retention.strategies.DeletionRetentionStrategyConfig"
)

var IndexSet = &Descriptor{
	Family:     entity.FamilyIndexSet,
	Collection: "/api/system/indices/index_sets",
	IDField:    FieldIndexSetID,
	ListingKey: "index_sets",
	TitleField: "title",
	Fields: []Field{
		{Name: "title", Kind: KindString, Help: "index set title"},
		{Name: "description", Kind: KindString, Help: "index set description"},
		{Name: "index_prefix", Kind: KindString, Help: "unique prefix used in Elasticsearch index names"},
		{Name: FieldCreationDate, Kind: KindString, Help: "creation timestamp, stamped on create"},
		{Name: "writable", Kind: KindBool, Default: true, Help: "whether the index set is writable"},
		{Name: "default", Kind: KindBool, Default: false, Help: "whether the index set is the default one"},
		{Name: "index_analyzer", Kind: KindString, Default: "standard", Help: "Elasticsearch analyzer"},
		{Name: "shards", Kind: KindInt, Default: 4, Help: "number of shards per index"},
		{Name: "replicas", Kind: KindInt, Default: 1, Help: "number of replicas per index"},
		{Name: "rotation_strategy_class", Kind: KindString, Default: TimeBasedRotationStrategy, Help: "rotation strategy class"},
		{Name: "retention_strategy_class", Kind: KindString, Default: DeletionRetentionStrategy, Help: "retention strategy class"},
		{Name: "rotation_strategy", Kind: KindObject, Default: map[string]any{
			"type":            TimeBasedRotationStrategyConfig,
			"rotation_period": "P1D",
		}, Help: "rotation strategy configuration (JSON object)"},
		{Name: "retention_strategy", Kind: KindObject, Default: map[string]any{
			"type":                  DeletionRetentionStrategyConfig,
			"max_number_of_indices": 14,
		}, Help: "retention strategy configuration (JSON object)"},
		{Name: "index_optimization_max_num_segments", Kind: KindInt, Default: 1, Help: "maximum number of segments after optimization"},
		{Name: "index_optimization_disabled", Kind: KindBool, Default: false, Help: "disable index optimization after rotation"},
	},
	Operations: map[entity.Verb]Operation{
		entity.VerbCreate: {Method: http.MethodPost, Target: TargetCollection, Expect: http.StatusOK, Payload: true, Stamp: FieldCreationDate},
		entity.VerbUpdate: {Method: http.MethodPut, Target: TargetItem, Expect: http.StatusOK, Payload: true, Fields: []string{
			"title", "description", "index_prefix", "writable", "default", "index_analyzer", "shards", "replicas",
			"rotation_strategy_class", "retention_strategy_class", "rotation_strategy", "retention_strategy",
			"index_optimization_max_num_segments", "index_optimization_disabled",
		}},
		entity.VerbDelete: {Method: http.MethodDelete, Target: TargetItem, Expect: http.StatusNoContent},
		entity.VerbList:   {Method: http.MethodGet, Target: TargetOptionalItem, Expect: http.StatusOK},
	},
}

// IndexSetListing lists every index set without statistics, in server order.
var IndexSetListing = Operation{
	Method: http.MethodGet,
	Target: TargetCollection,
	Query:  url.Values{"skip": {"0"}, "limit": {"0"}, "stats": {"false"}},
	Expect: http.StatusOK,
}

var Stream = &Descriptor{
	Family:     entity.FamilyStream,
	Collection: "/api/streams",
	IDField:    "stream_id",
	ListingKey: "streams",
	TitleField: "title",
	Fields: []Field{
		{Name: "title", Kind: KindString, Help: "stream title"},
		{Name: "description", Kind: KindString, Help: "stream description"},
		{Name: "remove_matches_from_default_stream", Kind: KindBool, Default: false, Help: "remove matching messages from the default stream"},
		{Name: "matching_type", Kind: KindString, Help: "AND or OR"},
		{Name: "rules", Kind: KindList, Help: "stream rules (JSON array)"},
		{Name: FieldIndexSetID, Kind: KindString, Help: "index set receiving the stream messages"},
	},
	Operations: map[entity.Verb]Operation{
		entity.VerbCreate: {Method: http.MethodPost, Target: TargetCollection, Expect: http.StatusCreated, Payload: true, DefaultIndexSet: true},
		entity.VerbUpdate: {Method: http.MethodPut, Target: TargetItem, Expect: http.StatusOK, Payload: true},
		entity.VerbDelete: {Method: http.MethodDelete, Target: TargetItem, Expect: http.StatusNoContent},
		entity.VerbList:   {Method: http.MethodGet, Target: TargetOptionalItem, Expect: http.StatusOK},
	},
}

var StreamRule = &Descriptor{
	Family:     entity.FamilyStreamRule,
	Collection: "/api/streams/{stream_id}/rules",
	IDField:    "rule_id",
	ListingKey: "stream_rules",
	Fields: []Field{
		{Name: "field", Kind: KindString, Help: "message field the rule matches"},
		{Name: "type", Kind: KindInt, Default: 1, Help: "rule type (1 exact, 2 greater, 3 smaller, 5 regex, ...)"},
		{Name: "value", Kind: KindString, Help: "value to match"},
		{Name: "inverted", Kind: KindBool, Default: false, Help: "invert the match"},
		{Name: "description", Kind: KindString, Help: "rule description"},
	},
	Operations: map[entity.Verb]Operation{
		entity.VerbCreate: {Method: http.MethodPost, Target: TargetCollection, Expect: http.StatusCreated, Payload: true},
		entity.VerbUpdate: {Method: http.MethodPut, Target: TargetItem, Expect: http.StatusOK, Payload: true},
		entity.VerbDelete: {Method: http.MethodDelete, Target: TargetItem, Expect: http.StatusNoContent},
		entity.VerbList:   {Method: http.MethodGet, Target: TargetOptionalItem, Expect: http.StatusOK},
	},
}

var Pipeline = &Descriptor{
	Family:     entity.FamilyPipeline,
	Collection: "/api/system/pipelines/pipeline",
	IDField:    "pipeline_id",
	TitleField: "title",
	Fields: []Field{
		{Name: "title", Kind: KindString, Help: "pipeline title"},
		{Name: "description", Kind: KindString, Help: "pipeline description"},
		{Name: FieldSource, Kind: KindString, Help: "pipeline source"},
	},
	Operations: map[entity.Verb]Operation{
		entity.VerbCreate: {Method: http.MethodPost, Target: TargetCollection, Expect: http.StatusOK, Payload: true},
		entity.VerbUpdate: {Method: http.MethodPut, Target: TargetItem, Expect: http.StatusOK, Payload: true, Preserve: []string{FieldSource}},
		entity.VerbDelete: {Method: http.MethodDelete, Target: TargetItem, Expect: http.StatusNoContent},
		entity.VerbList:   {Method: http.MethodGet, Target: TargetOptionalItem, Expect: http.StatusOK},
	},
}

var PipelineRule = &Descriptor{
	Family:     entity.FamilyPipelineRule,
	Collection: "/api/system/pipelines/rule",
	IDField:    "rule_id",
	TitleField: "title",
	Fields: []Field{
		{Name: "title", Kind: KindString, Help: "rule title"},
		{Name: "description", Kind: KindString, Help: "rule description"},
		{Name: FieldSource, Kind: KindString, Help: "rule source"},
	},
	Operations: map[entity.Verb]Operation{
		entity.VerbCreate: {Method: http.MethodPost, Target: TargetCollection, Expect: http.StatusOK, Payload: true},
		entity.VerbUpdate: {Method: http.MethodPut, Target: TargetItem, Expect: http.StatusOK, Payload: true},
		entity.VerbDelete: {Method: http.MethodDelete, Target: TargetItem, Expect: http.StatusNoContent},
		entity.VerbList:   {Method: http.MethodGet, Target: TargetOptionalItem, Expect: http.StatusOK},
		entity.VerbParse:  {Method: http.MethodPost, Target: TargetCollection, Suffix: "/parse", Expect: http.StatusOK, Payload: true, Fields: []string{FieldSource}},
	},
}

var PipelineConnection = &Descriptor{
	Family:     entity.FamilyPipelineConnection,
	Collection: "/api/system/pipelines/connections",
	Fields: []Field{
		{Name: "pipeline_id", Kind: KindString, Help: "pipeline to connect"},
		{Name: "stream_ids", Kind: KindList, Help: "streams the pipeline is connected to"},
	},
	Operations: map[entity.Verb]Operation{
		entity.VerbCreate: {Method: http.MethodPost, Target: TargetCollection, Suffix: "/to_pipeline", Expect: http.StatusOK, Payload: true},
		entity.VerbUpdate: {Method: http.MethodPost, Target: TargetCollection, Suffix: "/to_pipeline", Expect: http.StatusOK, Payload: true},
		entity.VerbList:   {Method: http.MethodGet, Target: TargetCollection, Expect: http.StatusOK},
	},
}

// All returns every family descriptor in declaration order.
func All() []*Descriptor {
	return []*Descriptor{IndexSet, Stream, StreamRule, Pipeline, PipelineRule, PipelineConnection}
}
