// Package synth is the numerical core of the toolbox: it converts one
// cell-to-cell transition of a discrete plan into a concrete,
// dynamically-feasible input sequence for a discrete-time linear plant.
//
// The pipeline for one call is: resolve the start-side containment
// polytope, then for every convex piece of the target region build the
// constraint tube (open-loop, or tightened backward through an external
// one-step-reachability predicate in closed-loop mode), stack it into a
// linear inequality system over the input sequence, assemble the quadratic
// cost through the lifted dynamics, and hand the program to an external QP
// solver. The cheapest feasible piece wins; infeasible pieces are skipped,
// not fatal.
//
// The heavy geometry (vertex enumeration, convex hulls, Chebyshev balls)
// and the solvers are consumed through interfaces; the package owns only
// the assembly and the selection logic.
package synth
