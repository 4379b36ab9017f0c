package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/ctrl"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

var (
	ErrInvalidFlag = errors.New("invalid flag value")
)

// FlagName is the command line spelling of a resource field.
func FlagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func newResourceCmd(module *resource.Module) *cobra.Command {
	params := module.Parameters()

	cmd := &cobra.Command{
		Use:       module.Command + " [action]",
		Short:     module.Short,
		Long:      fmt.Sprintf("%s (module %s). Actions: %s, default %s.", module.Short, module.Name, strings.Join(module.ActionNames(), ", "), entity.DefaultAction),
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: module.ActionNames(),
	}

	addParameterFlags(cmd.Flags(), params)
	cmd.RunE = runResource(module, params)

	return cmd
}

func addParameterFlags(fs *pflag.FlagSet, params []resource.Field) {
	for _, p := range params {
		name := FlagName(p.Name)
		help := p.Help
		if help == "" {
			help = p.Name
		}

		switch p.Kind {
		case resource.KindInt:
			fs.Int(name, 0, help)
		case resource.KindBool:
			fs.Bool(name, false, help)
		case resource.KindList:
			fs.StringArray(name, nil, help+" (repeatable, JSON or plain string)")
		case resource.KindObject:
			fs.String(name, "", help+" (JSON object)")
		default:
			fs.String(name, "", help)
		}
	}
}

// CollectFields returns the values of the parameter flags set on the command
// line. Flags left untouched are not supplied.
func CollectFields(fs *pflag.FlagSet, params []resource.Field) (entity.Fields, error) {
	fields := entity.Fields{}

	for _, p := range params {
		name := FlagName(p.Name)
		if !fs.Changed(name) {
			continue
		}

		value, err := flagValue(fs, name, p.Kind)
		if err != nil {
			return nil, errors.Join(ErrInvalidFlag, fmt.Errorf("--%s: %w", name, err))
		}
		fields[p.Name] = value
	}

	return fields, nil
}

func flagValue(fs *pflag.FlagSet, name string, kind resource.Kind) (any, error) {
	switch kind {
	case resource.KindInt:
		return fs.GetInt(name)
	case resource.KindBool:
		return fs.GetBool(name)
	case resource.KindList:
		raw, err := fs.GetStringArray(name)
		if err != nil {
			return nil, err
		}

		items := make([]any, 0, len(raw))
		for _, item := range raw {
			var v any
			if err := json.Unmarshal([]byte(item), &v); err != nil {
				v = item
			}
			items = append(items, v)
		}
		return items, nil
	case resource.KindObject:
		raw, err := fs.GetString(name)
		if err != nil {
			return nil, err
		}

		var v map[string]any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return fs.GetString(name)
	}
}

func runResource(module *resource.Module, params []resource.Field) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var action entity.Action
		if len(args) > 0 {
			action = entity.Action(args[0])
		}

		fields, err := CollectFields(cmd.Flags(), params)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		serializer, err := NewSerializer(cfg.Output)
		if err != nil {
			return err
		}

		controller, err := setupAction(cfg)
		if err != nil {
			return err
		}

		resp, err := controller.Execute(cmd.Context(), &ctrl.ActionRequest{
			Module: module.Name,
			Action: action,
			Fields: fields,
		})
		if err != nil {
			return err
		}

		return serializer.Serialize(cmd.OutOrStdout(), resp.Result)
	}
}
