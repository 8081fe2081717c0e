package config

// Default returns the example-site configuration used when scaffolding a new
// project. It doesn't describe anything useful besides a working starting
// point.
func Default() *Config {
	return &Config{
		Site: Site{
			BaseURL: "example.com",
			OutDir:  "./html",
			Content: "./content",
			Theme:   "./theme",
			Assets:  "./assets",
			Strict:  false,
		},
		Params: map[string]any{
			"title": "My Sitebuilder Site",
			"desc":  "This is an example sitebuilder site.",
			"links": []map[string]any{
				{"name": "My Blog", "value": "https://blog.example.com"},
				{"name": "My Git", "value": "https://git.example.com"},
			},
			"made_with": map[string]any{
				"name": "sitebuilder",
				"link": "https://git.home.luguber.info/inful/sitebuilder",
			},
		},
	}
}
