package entity

import "errors"

var (
	ErrFamilyNotFound = errors.New("resource family not found")
	ErrModuleNotFound = errors.New("module not found")
)

type Verb string

const (
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
	VerbList   Verb = "list"
	VerbParse  Verb = "parse"
	VerbQuery  Verb = "query"
)

// Mutating reports whether the verb changes server state.
func (v Verb) Mutating() bool {
	switch v {
	case VerbCreate, VerbUpdate, VerbDelete:
		return true
	default:
		return false
	}
}

type Family string

const (
	FamilyIndexSet           Family = "index_set"
	FamilyStream             Family = "stream"
	FamilyStreamRule         Family = "stream_rule"
	FamilyPipeline           Family = "pipeline"
	FamilyPipelineRule       Family = "pipeline_rule"
	FamilyPipelineConnection Family = "pipeline_connection"
)

// Action is a module level action name such as "create_rule".
type Action string

const DefaultAction Action = "list"
