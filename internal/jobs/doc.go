// Package jobs is the control entry point around the scanner: enqueue a
// scan for an owner, poll its status by job id.
//
// The queue itself is a collaborator, not part of the core. Queue is the
// contract; MemoryQueue runs scans in-process (tests, single-node CLI),
// RedisQueue hands them to redis so scans survive the process and can fan
// out across workers. Delivery guarantees, retries, and timeouts belong
// to the queue backend, never to this package.
package jobs
