package cache

import "container/list"

func (c *EvictionCache[K, V]) evictOldest() {
	elem := c.lru.Back()
	if elem != nil {
		c.removeElement(elem)
		c.stats.Evictions++
	}
}

func (c *EvictionCache[K, V]) removeElement(e *list.Element) {
	c.lru.Remove(e)
	delete(c.items, e.Value.(*entry[K, V]).key)
}
