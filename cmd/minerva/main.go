// Minerva is a typed entity graph store and constraint engine for
// governing autonomous-agent actions.
//
// It keeps an in-memory ontology of business domains and entities,
// evaluates declarative constraints against prospective actions, and
// records every verdict in an append-only audit trail.
//
// Usage:
//
//	# Render a domain schema as markdown
//	minerva domain describe --file examples/itsm/domain.yaml
//
//	# Validate domain schemas
//	minerva domain validate --dir schemas/
//
//	# List registered constraints
//	minerva constraint list --file constraints.yaml --domain itsm
//
//	# Lint constraint files
//	minerva constraint lint --dir constraints/ --strict
//
//	# Dry-run an action against a rule pack
//	minerva evaluate --context request.yaml --constraints constraints.yaml
//
//	# Run as a long-lived process with hot-reload and metrics
//	minerva watch --config minerva.yaml
//
//	# Show version information
//	minerva version
//
// For complete documentation, see: https://github.com/mercator-hq/minerva
package main

func main() {
	Execute()
}
