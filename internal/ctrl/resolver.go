package ctrl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

// ListingIDField is the id attribute of every listed element.
const ListingIDField = "id"

var (
	ErrNotResolvable    = errors.New("resource family cannot be resolved by name")
	ErrMalformedListing = errors.New("malformed listing")
	ErrNoIndexSet       = errors.New("no index set available")
)

// Resolve returns the id of the first element of the family listing whose
// title equals name exactly. A missing match is not an error.
func (d *Dispatcher) Resolve(ctx context.Context, token entity.Token, family entity.Family, name string) (string, bool, error) {
	descriptor, err := d.families.Find(ctx, family)
	if err != nil {
		return "", false, fmt.Errorf("%w: %s", err, family)
	}

	_, id, found, err := d.lookup(ctx, token, descriptor, name)
	return id, found, err
}

// DefaultIndexSet returns the id of the first index set the server lists.
func (d *Dispatcher) DefaultIndexSet(ctx context.Context, token entity.Token) (string, error) {
	descriptor, err := d.families.Find(ctx, entity.FamilyIndexSet)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, entity.FamilyIndexSet)
	}

	result, err := d.execute(ctx, token, descriptor, resource.IndexSetListing, nil)
	if err != nil {
		return "", err
	}

	elements, err := unwrapListing(descriptor, result.JSON)
	if err != nil {
		return "", err
	}

	for _, element := range elements {
		if id, ok := element[ListingIDField].(string); ok && id != "" {
			d.logger.Debug().Str("index_set_id", id).Msg("using default index set")
			return id, nil
		}
	}

	return "", ErrNoIndexSet
}

func (d *Dispatcher) lookup(ctx context.Context, token entity.Token, descriptor *resource.Descriptor, name string) (*entity.Result, string, bool, error) {
	if !descriptor.Resolvable() {
		return nil, "", false, fmt.Errorf("%w: %s", ErrNotResolvable, descriptor.Family)
	}

	op, err := descriptor.Operation(entity.VerbList)
	if err != nil {
		return nil, "", false, err
	}

	listing, err := d.execute(ctx, token, descriptor, op, nil)
	if err != nil {
		return nil, "", false, err
	}

	id, found, err := ResolveID(descriptor, listing.JSON, name)
	if err != nil {
		return nil, "", false, err
	}

	d.logger.Debug().
		Str("family", string(descriptor.Family)).
		Str("name", name).
		Bool("found", found).
		Msg("resolved name")

	return listing, id, found, nil
}

// ResolveID scans a listing in server order and returns the id of the first
// element whose title field equals name. The comparison is exact and case
// sensitive.
func ResolveID(descriptor *resource.Descriptor, listing json.RawMessage, name string) (string, bool, error) {
	if !descriptor.Resolvable() {
		return "", false, fmt.Errorf("%w: %s", ErrNotResolvable, descriptor.Family)
	}

	elements, err := unwrapListing(descriptor, listing)
	if err != nil {
		return "", false, err
	}

	for _, element := range elements {
		title, ok := element[descriptor.TitleField].(string)
		if !ok || title != name {
			continue
		}

		id, ok := element[ListingIDField].(string)
		if !ok {
			return "", false, fmt.Errorf("%w: %s %q has no id", ErrMalformedListing, descriptor.Family, name)
		}
		return id, true, nil
	}

	return "", false, nil
}

// unwrapListing returns the listed elements: the whole document when the
// family lists a bare array, the ListingKey member otherwise.
func unwrapListing(descriptor *resource.Descriptor, listing json.RawMessage) ([]map[string]any, error) {
	if len(listing) == 0 {
		return nil, fmt.Errorf("%w: %s listing is empty", ErrMalformedListing, descriptor.Family)
	}

	raw := listing
	if descriptor.ListingKey != "" {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(listing, &envelope); err != nil {
			return nil, errors.Join(ErrMalformedListing, err)
		}

		member, ok := envelope[descriptor.ListingKey]
		if !ok {
			return nil, fmt.Errorf("%w: %s listing has no %q", ErrMalformedListing, descriptor.Family, descriptor.ListingKey)
		}
		raw = member
	}

	var elements []map[string]any
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, errors.Join(ErrMalformedListing, err)
	}

	return elements, nil
}
