// Package sources builds source adapters from configuration.
//
// Each configured source has a name (the value used in objective tables)
// and a kind selecting the adapter:
//
//	[sources.web]
//	kind = "websearch"
//	api_key = "..."
//	engine_id = "..."
//	rps = 1.0
//
// Built-in kinds are fixture (YAML file), github (repository search),
// notion (workspace documents) and websearch (Programmable Search).
// Supported kinds are registered with a Factory. Any source may set rps and
// burst to be wrapped in a token-bucket limiter.
package sources
