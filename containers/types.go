package containers

// ContainerMeta holds the descriptive attributes of one container as
// reported by the runtime. The full set of fields is the identity of a
// published observation: if any field changes, the container counts as a
// new observation and the old one must disappear on the next refresh.
type ContainerMeta struct {
	FullID  string `json:"full_id"`
	ShortID string `json:"short_id"` // first 12 characters of FullID
	Name    string `json:"name"`     // leading slash stripped
	Image   string `json:"image"`    // primary tag, or image ID when untagged
	Service string `json:"service"`  // compose service label, or Name as fallback
	State   string `json:"state"`    // lifecycle status (running, exited, created, ...)
}

// ContainerMetaCollection represents a collection of container metadata entries
type ContainerMetaCollection struct {
	Containers []ContainerMeta `json:"containers"`
}
