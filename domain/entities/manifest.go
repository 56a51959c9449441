package entities

import "encoding/json"

// Manifest describes a plugin and the channels it registers.
type Manifest struct {
	Channels     map[string]ChannelManifest `json:"channels"`
	ConfigSchema json.RawMessage            `json:"config_schema,omitempty"`
	Name         string                     `json:"name"`
	Version      string                     `json:"version"`
	Description  string                     `json:"description,omitempty"`
	SDKVersion   string                     `json:"sdk_version"`
}

// ChannelManifest describes a single registered channel.
type ChannelManifest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Methods     []MethodManifest `json:"methods"`

	// AnyMethod is true when the channel answers every method name identically.
	AnyMethod bool `json:"any_method"`
}

// MethodManifest describes a method known to a channel.
type MethodManifest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
