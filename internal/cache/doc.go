// Package cache provides a small capacity-bounded LRU used by accelerator
// backends to cache compiled kernel plans.
//
// Unlike a general-purpose cache, eviction here must release device
// resources (shader modules), so every insertion carries an eviction
// callback and the cache can be resized or cleared while callbacks fire for
// each dropped entry.
package cache
