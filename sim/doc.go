// Package sim provides the colony simulation kernel: gene-driven ant agents
// on a voxel grid, and the generational engine that evolves their genes.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - agent.go: agent state, lifecycle (spawned → initialized → dead) and health clamping
//   - policy.go: the per-agent priority pipeline (donate, approach, eat, dig, explore)
//   - queen.go: the queen's periodic nest production
//   - evolution.go: the generation cycle (spawn, run, score, breed, respawn)
//
// # Architecture
//
// The sim package defines the collaborator interfaces; implementations live
// in sub-packages or in cmd/:
//   - sim/world/: in-memory voxel grid and terrain generation
//   - sim/trace/: decision and generation trace recording
//
// # Key Interfaces
//
//   - WorldGrid: block lookup and mutation
//   - Colony: read-only population view (CurrentQueen, Agents) handed to the policy
//   - Spawner: agent instantiation and destruction
//   - RandSource: the random draws behind digging, exploration and breeding
//
// Everything runs on one goroutine. Agents are stepped one at a time in
// registry order and never observe each other mid-update; grid writes are
// last-writer-wins.
package sim
