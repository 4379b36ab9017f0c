package module

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

var (
	ErrCoerceArg = errors.New("invalid argument type")
)

// booleans are the extra spellings Ansible accepts for bool arguments.
var booleans = map[string]bool{
	"yes": true,
	"on":  true,
	"y":   true,
	"no":  false,
	"off": false,
	"n":   false,
}

// Coerce converts every known argument to the kind of its parameter. Unknown
// arguments and nil values are left untouched.
func Coerce(fields map[string]any, params []resource.Field) error {
	for _, p := range params {
		v, ok := fields[p.Name]
		if !ok || v == nil {
			continue
		}

		converted, err := coerce(v, p.Kind)
		if err != nil {
			return errors.Join(ErrCoerceArg, fmt.Errorf("%s: want %s: %w", p.Name, p.Kind, err))
		}
		fields[p.Name] = converted
	}

	return nil
}

func coerce(v any, kind resource.Kind) (any, error) {
	switch kind {
	case resource.KindInt:
		return cast.ToIntE(v)
	case resource.KindBool:
		if s, ok := v.(string); ok {
			if b, ok := booleans[strings.ToLower(strings.TrimSpace(s))]; ok {
				return b, nil
			}
			return cast.ToBoolE(strings.TrimSpace(s))
		}
		return cast.ToBoolE(v)
	case resource.KindList:
		// a string is a JSON array or a comma separated list
		if s, ok := v.(string); ok {
			if trimmed := strings.TrimSpace(s); strings.HasPrefix(trimmed, "[") {
				var items []any
				if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
					return nil, err
				}
				return items, nil
			}

			items := []any{}
			for _, item := range strings.Split(s, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			return items, nil
		}
		return cast.ToSliceE(v)
	case resource.KindObject:
		return cast.ToStringMapE(v)
	default:
		return cast.ToStringE(v)
	}
}
