// Package resource declares the Graylog resource families as data: their
// paths, ordered field tables, defaults and the status each operation must
// answer with. The dispatcher interprets these tables; nothing here performs
// I/O.
package resource

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
)

var (
	ErrUnsupportedVerb = errors.New("operation not supported by resource family")
	ErrMissingID       = errors.New("missing resource id")
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Field struct {
	Name    string
	Kind    Kind
	Default any
	Help    string
}

type Target int

const (
	// TargetCollection addresses the collection path.
	TargetCollection Target = iota
	// TargetItem addresses {collection}/{id}; the id is required.
	TargetItem
	// TargetOptionalItem addresses the item when the id is supplied and the
	// collection otherwise.
	TargetOptionalItem
)

type Operation struct {
	Method string
	Target Target
	// Suffix is appended to the resolved path, e.g. "/parse".
	Suffix string
	Query  url.Values
	// Expect is the only status code accepted as success.
	Expect int
	// Payload marks operations that send a JSON body.
	Payload bool
	// Fields restricts the payload to a subset of the descriptor fields.
	Fields []string
	// Preserve names fields read back from the current resource when the
	// caller leaves them unset.
	Preserve []string
	// Stamp names a field set to the current UTC time.
	Stamp string
	// DefaultIndexSet fills index_set_id with the first index set when unset.
	DefaultIndexSet bool
}

type Descriptor struct {
	Family entity.Family
	// Collection may reference parent ids as {name}.
	Collection string
	// IDField names the field holding the item id; empty when the family has
	// no addressable items.
	IDField string
	Fields  []Field
	// ListingKey is the envelope field that holds the listing; empty when the
	// listing is a bare array.
	ListingKey string
	// TitleField is matched by name resolution; empty when not resolvable.
	TitleField string
	Operations map[entity.Verb]Operation
}

func (d *Descriptor) Operation(verb entity.Verb) (Operation, error) {
	op, ok := d.Operations[verb]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s %s", ErrUnsupportedVerb, d.Family, verb)
	}
	return op, nil
}

func (d *Descriptor) Resolvable() bool {
	return d.TitleField != ""
}

// CollectionPath renders the collection path, substituting parent ids.
func (d *Descriptor) CollectionPath(fields entity.Fields) (string, error) {
	var b strings.Builder

	rest := d.Collection
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(rest)
			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start

		name := rest[start+1 : end]
		id, ok := fields.String(name)
		if !ok || id == "" {
			return "", fmt.Errorf("%w: %s requires %s", ErrMissingID, d.Family, name)
		}

		b.WriteString(rest[:start])
		b.WriteString(url.PathEscape(id))
		rest = rest[end+1:]
	}

	return b.String(), nil
}

// Parents lists the {name} placeholders of the collection path.
func (d *Descriptor) Parents() []string {
	var names []string

	rest := d.Collection
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return names
		}
		names = append(names, rest[start+1:start+end])
		rest = rest[start+end+1:]
	}
}

// ItemPath renders {collection}/{id}.
func (d *Descriptor) ItemPath(fields entity.Fields) (string, error) {
	collection, err := d.CollectionPath(fields)
	if err != nil {
		return "", err
	}

	id, ok := d.ID(fields)
	if !ok {
		return "", fmt.Errorf("%w: %s requires %s", ErrMissingID, d.Family, d.IDField)
	}

	return collection + "/" + url.PathEscape(id), nil
}

// ID returns the item id when the caller supplied a non-empty one.
func (d *Descriptor) ID(fields entity.Fields) (string, bool) {
	if d.IDField == "" {
		return "", false
	}

	id, ok := fields.String(d.IDField)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Path renders the full request path of op, query string included.
func (d *Descriptor) Path(op Operation, fields entity.Fields) (string, error) {
	var (
		path string
		err  error
	)

	switch op.Target {
	case TargetItem:
		path, err = d.ItemPath(fields)
	case TargetOptionalItem:
		if _, ok := d.ID(fields); ok {
			path, err = d.ItemPath(fields)
		} else {
			path, err = d.CollectionPath(fields)
		}
	default:
		path, err = d.CollectionPath(fields)
	}
	if err != nil {
		return "", err
	}

	path += op.Suffix
	if len(op.Query) > 0 {
		path += "?" + op.Query.Encode()
	}

	return path, nil
}

// Payload builds the request body: every field of the table, in order, that
// the caller supplied.
func (d *Descriptor) Payload(op Operation, fields entity.Fields) entity.Payload {
	payload := entity.Payload{}

	for _, f := range d.Fields {
		if len(op.Fields) > 0 && !slices.Contains(op.Fields, f.Name) {
			continue
		}

		if v, ok := fields.Get(f.Name); ok {
			payload.Set(f.Name, v)
		}
	}

	return payload
}

// ApplyDefaults returns a copy of fields with every unset field that declares
// a default filled in.
func (d *Descriptor) ApplyDefaults(fields entity.Fields) entity.Fields {
	out := fields.Clone()

	for _, f := range d.Fields {
		if f.Default == nil || out.Has(f.Name) {
			continue
		}
		out[f.Name] = cloneDefault(f.Default)
	}

	return out
}

func cloneDefault(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = cloneDefault(v)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, v := range t {
			s[i] = cloneDefault(v)
		}
		return s
	default:
		return v
	}
}
