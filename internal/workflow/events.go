package workflow

import "docuquery/internal/retrieval"

// Event is one pipeline transition payload. The set of events is closed;
// pipelines dispatch on the concrete type, so an event a pipeline does not
// recognize is a programming error surfaced by the driver.
type Event interface {
	isEvent()
}

// StartEvent begins a pipeline run.
type StartEvent struct{}

// FiltersProposedEvent carries the raw filter candidates proposed by the
// completion service.
type FiltersProposedEvent struct {
	Proposed *retrieval.ProposedFilters
}

// FiltersResolvedEvent carries the filter set after canonical resolution.
type FiltersResolvedEvent struct {
	Filters retrieval.FilterSet
}

// MetadataRetrievedEvent carries above-threshold chunk metadata records.
type MetadataRetrievedEvent struct {
	Records []retrieval.ChunkMetadata
}

// StopEvent terminates a pipeline run with its single result payload.
type StopEvent struct {
	Result string
}

func (StartEvent) isEvent()             {}
func (FiltersProposedEvent) isEvent()   {}
func (FiltersResolvedEvent) isEvent()   {}
func (MetadataRetrievedEvent) isEvent() {}
func (StopEvent) isEvent()              {}
