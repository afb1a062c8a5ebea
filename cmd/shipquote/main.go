// Shipquote serves shipping price quotes over HTTP.
//
// Prices, package alerts and delivery estimates are derived from a rules
// document (JSON or YAML) loaded once at startup.
//
// Usage:
//
//	# Start the API with defaults (rules.json in the working directory)
//	shipquote serve
//
//	# Start with a configuration file
//	shipquote serve --config /path/to/config.yaml
//
//	# Quote a package from the command line
//	shipquote quote --length 30 --width 20 --height 15 --weight 10
//
//	# Check a rules file, and keep checking it on every save
//	shipquote validate --rules rules.yaml --watch
//
//	# Show version information
//	shipquote version
package main

func main() {
	Execute()
}
