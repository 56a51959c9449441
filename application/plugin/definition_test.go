package plugin

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Channel string `json:"channel" validate:"required"`
	Strict  bool   `json:"strict_dispatch,omitempty"`
}

func TestDefinePlugin(t *testing.T) {
	def, err := DefinePlugin(PluginDef{
		Name:        "super_easy_in_app_purchase",
		Version:     "1.0.0",
		Description: "Reports the OS version",
		Config:      testConfig{},
	})
	require.NoError(t, err)

	m := def.Manifest()
	assert.Equal(t, "super_easy_in_app_purchase", m.Name)
	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, SDKVersion, m.SDKVersion)
	assert.Empty(t, m.Channels)

	var schemaDoc map[string]any
	require.NoError(t, json.Unmarshal(m.ConfigSchema, &schemaDoc))
	assert.Contains(t, string(m.ConfigSchema), "strict_dispatch")
}

func TestDefinePlugin_NoConfig(t *testing.T) {
	def, err := DefinePlugin(PluginDef{Name: "bare"})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(def.Manifest().ConfigSchema))
}

func TestPluginDefinition_Channels(t *testing.T) {
	def, err := DefinePlugin(PluginDef{Name: "p"})
	require.NoError(t, err)

	def.RegisterChannel("super_easy_in_app_purchase", "platform version", true)
	def.RegisterMethod("super_easy_in_app_purchase", "getPlatformVersion", "returns label and version")
	def.RegisterMethod("super_easy_in_app_purchase", "details", "")
	def.RegisterMethod("implicit", "ping", "")

	assert.True(t, def.Has("super_easy_in_app_purchase"))
	assert.True(t, def.Has("implicit"))
	assert.False(t, def.Has("missing"))

	m := def.Manifest()
	require.Len(t, m.Channels, 2)

	ch := m.Channels["super_easy_in_app_purchase"]
	assert.True(t, ch.AnyMethod)
	assert.Equal(t, "platform version", ch.Description)
	require.Len(t, ch.Methods, 2)
	assert.Equal(t, "details", ch.Methods[0].Name)
	assert.Equal(t, "getPlatformVersion", ch.Methods[1].Name)

	assert.False(t, m.Channels["implicit"].AnyMethod)
}

func TestPluginDefinition_ConcurrentRegistration(t *testing.T) {
	def, err := DefinePlugin(PluginDef{Name: "p"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			def.RegisterMethod("chan", string(rune('a'+i)), "")
			_ = def.Manifest()
		}(i)
	}
	wg.Wait()

	assert.Len(t, def.Manifest().Channels["chan"].Methods, 20)
}
