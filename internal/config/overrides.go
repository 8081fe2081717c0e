package config

// Overrides carries the CLI flags that take precedence over file values.
// Zero values mean "not supplied".
type Overrides struct {
	Strict  *bool
	Output  string
	Content string
	Theme   string
	Assets  string
}

// Apply merges CLI overrides into the configuration.
func (c *Config) Apply(o Overrides) {
	if o.Strict != nil {
		c.Site.Strict = *o.Strict
	}
	if o.Output != "" {
		c.Site.OutDir = o.Output
	}
	if o.Content != "" {
		c.Site.Content = o.Content
	}
	if o.Theme != "" {
		c.Site.Theme = o.Theme
	}
	if o.Assets != "" {
		c.Site.Assets = o.Assets
	}
}
