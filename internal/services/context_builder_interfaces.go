package services

import "time"

// StaticStore is the persistent tier behind the in-memory static LRU
type StaticStore interface {
	Put(key string, v interface{}, ttl time.Duration) error
	GetIfFresh(key string, out interface{}) (bool, error)
}
