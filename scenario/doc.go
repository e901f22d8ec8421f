// Package scenario replays recorded add/remove/query scripts against an
// mtree and cross-checks every answer with a linear scan.
//
// A fixture is a YAML document listing actions. Each action adds or removes
// one integer point and then runs a range query and a limit query:
//
//	name: f01
//	dimensions: 2
//	actions:
//	  - {cmd: A, data: [4, 44], query: [10, 20], radius: 30, limit: 3}
//	  - {cmd: R, data: [4, 44], query: [0, 0], radius: 5, limit: 1}
//
// Generate produces random fixtures of the same shape.
package scenario
