package ecs

// Capacity limits are fixed at build time. They bound every array and hash
// table in the world, which is what keeps the per-operation cost O(1):
// exceeding a limit is a hard failure, never a resize.
const (
	// MaxEntities is the maximum number of entities alive at the same time.
	// Must fit in the index bits of an Entity.
	MaxEntities = 8192

	// MaxComponentTypes is the maximum number of distinct component types
	// that can be registered with a single World.
	MaxComponentTypes = 64

	// entityIndexBits controls how an Entity's 32 bits are split between
	// slot index (low bits) and version (high bits).
	entityIndexBits = 16
	entityIndexMask = 1<<entityIndexBits - 1

	maskWords = (MaxComponentTypes + 63) / 64
)
