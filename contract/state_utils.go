package contract

// stateSetIfChanged avoids unnecessary writes so we dont thrash storage fees.
func (c *Context) stateSetIfChanged(key string, value []byte) {
	v := string(value)
	if existing := c.Host.Get(key); existing != nil && *existing == v {
		return
	}
	c.Host.Set(key, v)
}

// stateGetBytes returns nil for missing keys and for keys holding an empty value.
func (c *Context) stateGetBytes(key string) []byte {
	ptr := c.Host.Get(key)
	if ptr == nil || *ptr == "" {
		return nil
	}
	return []byte(*ptr)
}
