package config

// Merge merges two files, with the second one taking precedence. Providers
// are matched by name; an overriding provider replaces the base entry
// wholesale. Provider order follows base, with new providers appended.
func Merge(base, override *File) *File {
	result := *base
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Default != "" {
		result.Default = override.Default
	}

	result.Providers = make([]Provider, 0, len(base.Providers)+len(override.Providers))
	index := make(map[string]int, len(base.Providers))
	for _, p := range base.Providers {
		index[p.key()] = len(result.Providers)
		result.Providers = append(result.Providers, p)
	}
	for _, p := range override.Providers {
		if i, ok := index[p.key()]; ok {
			result.Providers[i] = p
			continue
		}
		index[p.key()] = len(result.Providers)
		result.Providers = append(result.Providers, p)
	}
	return &result
}
