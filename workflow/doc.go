// Package workflow composes registered agents into named execution patterns.
//
// Five patterns are provided: Chain (strictly sequential), Parallel
// (fan-out/fan-in with a join barrier), Router (classifier-based delegation),
// Planner (iterative plan/execute/review) and Evaluator (generate/evaluate/
// refine against an ordinal rating scale). Each pattern is a Spec: an
// immutable description validated eagerly against the agent registry when
// added to the workflow Registry, and executable against an input text.
package workflow
