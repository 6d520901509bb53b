package bind_group_provider

// BindGroupProviderOption configures a provider at construction time.
type BindGroupProviderOption func(*bindGroupProvider)

// WithGroup sets the @group index the provider is bound at. Defaults to 0.
func WithGroup(group int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}
