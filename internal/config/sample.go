package config

// SampleConfig returns a documented configuration file with every option
func SampleConfig() string {
	return `# snapgrid configuration
version: "1.0"

api:
  # Unsplash access key. UNSPLASH_ACCESS_KEY is used when this is empty.
  access_key: ""
  base_url: "https://api.unsplash.com"
  timeout: 15s
  # Demo applications are limited to 50 requests per hour; 0 disables the client-side limit
  requests_per_hour: 50

search:
  # Searched on startup and whenever the search box is cleared
  default_query: "africans"
  # Photos per search; 0 uses the layout default (grid 8, masonry 20)
  per_page: 0
  debounce: 500ms
  # Placeholders stay visible this long after a search settles
  loading_delay: 1s

ui:
  layout: "grid"        # grid|masonry
  theme: "default"      # default|high-contrast|minimal
  skeletons: 8

download:
  dir: "."
  filename: "downloaded-image.jpg"
  # When false an existing file gets a " (n)" suffix
  overwrite: false

output:
  default_format: "text" # text|json|markdown|csv
  color_mode: "auto"     # auto|always|never

logging:
  # The browser UI owns the terminal, so logs go to this file
  file: "~/.cache/snapgrid/snapgrid.log"
  verbose: false
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
api:
  access_key: ""
ui:
  layout: "grid"
`
}
