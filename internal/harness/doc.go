// Package harness runs curve-construction conformance scenarios.
//
// A scenario points at a directory of curve definitions, builds every curve
// through the default registry into a fresh in-memory store, and checks the
// recorded outcomes against its expectations.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: basic
//	description: "What this scenario validates"
//	specs: ../specs/basic        # relative to the scenario file
//	run_id: run-basic            # optional, defaults to test-run-default
//	expect:
//	  - curve: usd_annual
//	    status: ok
//	    pillars: 2
//	    values:
//	      - at: 18M
//	        value: 0.7155417528
//	        tolerance: 1e-9
//	  - curve: eur_cds
//	    status: error
//	    code: UNKNOWN_CURVE_TYPE
//
// Unknown fields are rejected so typos fail loudly.
//
// # Determinism
//
// Each run uses a fresh store, a logical clock starting at zero and a fixed
// run id, so build ids, seq values and rendered output are identical across
// runs. RunWithGolden compares the rendering against
// testdata/golden/<name>.golden; regenerate with:
//
//	go test ./internal/harness -update
package harness
