// Package plugin builds the plugin definition that the manifest is derived from.
package plugin

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/supereasy-dev/super-easy-in-app-purchase/application/schema"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
)

// SDKVersion is the version of the channel runtime reported in manifests.
const SDKVersion = "0.4.0"

// PluginDef defines plugin identity and configuration.
type PluginDef struct {
	Name        string
	Version     string
	Description string
	Config      any // Struct for schema generation
}

// PluginDefinition holds the plugin definition and its registered channels.
type PluginDefinition struct {
	def          PluginDef
	configSchema json.RawMessage
	channels     map[string]*channelEntry
	mu           sync.RWMutex
}

// channelEntry holds a registered channel.
type channelEntry struct {
	name        string
	description string
	anyMethod   bool
	methods     map[string]string // name -> description
}

// DefinePlugin creates a new plugin definition. The config schema is
// generated from def.Config when set.
func DefinePlugin(def PluginDef) (*PluginDefinition, error) {
	configSchema := []byte("{}")
	if def.Config != nil {
		var err error
		configSchema, err = schema.GenerateSchema(def.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to generate config schema: %w", err)
		}
	}

	return &PluginDefinition{
		def:          def,
		configSchema: configSchema,
		channels:     make(map[string]*channelEntry),
	}, nil
}

// RegisterChannel records a channel. anyMethod marks channels that answer
// every method name identically.
func (p *PluginDefinition) RegisterChannel(name, description string, anyMethod bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, ok := p.channels[name]
	if !ok {
		ch = &channelEntry{name: name, methods: make(map[string]string)}
		p.channels[name] = ch
	}
	ch.description = description
	ch.anyMethod = anyMethod
}

// RegisterMethod records a method known to channel, registering the channel if needed.
func (p *PluginDefinition) RegisterMethod(channel, method, description string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, ok := p.channels[channel]
	if !ok {
		ch = &channelEntry{name: channel, methods: make(map[string]string)}
		p.channels[channel] = ch
	}
	ch.methods[method] = description
}

// Manifest returns the complete plugin manifest.
func (p *PluginDefinition) Manifest() *entities.Manifest {
	p.mu.RLock()
	defer p.mu.RUnlock()

	channels := make(map[string]entities.ChannelManifest, len(p.channels))
	for name, ch := range p.channels {
		methods := make([]entities.MethodManifest, 0, len(ch.methods))
		for method, desc := range ch.methods {
			methods = append(methods, entities.MethodManifest{
				Name:        method,
				Description: desc,
			})
		}
		sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })

		channels[name] = entities.ChannelManifest{
			Name:        ch.name,
			Description: ch.description,
			Methods:     methods,
			AnyMethod:   ch.anyMethod,
		}
	}

	return &entities.Manifest{
		Name:         p.def.Name,
		Version:      p.def.Version,
		Description:  p.def.Description,
		SDKVersion:   SDKVersion,
		ConfigSchema: p.configSchema,
		Channels:     channels,
	}
}

// Has reports whether a channel is registered.
func (p *PluginDefinition) Has(channel string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.channels[channel]
	return ok
}
