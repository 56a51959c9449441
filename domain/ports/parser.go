package ports

// ConfigParser parses raw configuration bytes into a generic map.
// The map is then validated into a typed config struct.
type ConfigParser interface {
	Parse(data []byte) (map[string]any, error)
}
