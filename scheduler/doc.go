// Package scheduler drives many optimizer.Optimizer workers over a tiered
// pool of dedup.Table instances, exploring reductions of the same network
// under different fan-in orderings and promoting distinct, non-worsening
// results into a final, non-evicting pool.
package scheduler
