package directory

// Engine keeps one session's query state next to the episode collection it
// queries. It is not safe for concurrent mutation; give each session its own.
type Engine struct {
	episodes []Episode
	topics   []string
	query    Query
}

// NewEngine creates an engine over episodes with the default query.
func NewEngine(episodes []Episode) *Engine {
	e := &Engine{query: DefaultQuery()}
	e.SetEpisodes(episodes)
	return e
}

// SetEpisodes replaces the collection and recomputes the topic set.
func (e *Engine) SetEpisodes(episodes []Episode) {
	e.episodes = episodes
	e.topics = ComputeTopics(episodes)
}

// SetSearchText replaces the free-text search.
func (e *Engine) SetSearchText(text string) {
	e.query.SearchText = text
}

// SetSelectedTopic replaces the topic filter. Use AllTopics to clear it.
func (e *Engine) SetSelectedTopic(topic string) {
	e.query.SelectedTopic = topic
}

// SetSortOrder replaces the ordering.
func (e *Engine) SetSortOrder(order SortOrder) {
	e.query.SortOrder = order
}

// Reset clears the search text and topic filter. The sort order is kept.
func (e *Engine) Reset() {
	e.query.SearchText = ""
	e.query.SelectedTopic = AllTopics
}

// Query returns a snapshot of the current query.
func (e *Engine) Query() Query {
	return e.query
}

// Topics returns the sorted topic set of the current collection.
func (e *Engine) Topics() []string {
	return e.topics
}

// Total returns the size of the unfiltered collection.
func (e *Engine) Total() int {
	return len(e.episodes)
}

// Results evaluates the current query against the collection.
func (e *Engine) Results() []Episode {
	return FilterAndSort(e.episodes, e.query)
}
