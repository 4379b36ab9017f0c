package pluginapi

import "encoding/json"

// Module Protocol

// AnsiblePrefix marks the internal arguments Ansible adds to every module
// invocation.
const AnsiblePrefix = "_ansible_"

// ModuleArgs is the argument document read in module mode. Arguments that
// are not connection settings are resource fields.
type ModuleArgs struct {
	Endpoint      string         `mapstructure:"endpoint"`
	User          string         `mapstructure:"graylog_user"`
	Password      string         `mapstructure:"graylog_password"`
	ValidateCerts *bool          `mapstructure:"validate_certs"`
	Action        string         `mapstructure:"action"`
	Fields        map[string]any `mapstructure:",remain"`
}

// ModuleResult is the JSON document written to stdout in module mode.
type ModuleResult struct {
	Changed bool            `json:"changed"`
	Failed  bool            `json:"failed,omitempty"`
	Msg     string          `json:"msg"`
	JSON    json.RawMessage `json:"json,omitempty"`
	Status  int             `json:"status,omitempty"`
	URL     string          `json:"url,omitempty"`
	Body    string          `json:"body,omitempty"`
}
