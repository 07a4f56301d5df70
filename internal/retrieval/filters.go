package retrieval

import (
	"sort"

	"docuquery/internal/vectorstore"
)

// Metadata field keys as stored on vector points.
const (
	fieldFileName         = "file_name"
	fieldChapterTitle     = "chapter_title"
	fieldClassification   = "classification"
	fieldCreationDate     = "creation_date"
	fieldLastModifiedDate = "last_modified_date"
)

// ProposedFilters is the raw filter set proposed by the completion service.
// Fields may contain free-text fragments not yet known to match canonical
// values. Classification is never proposed by the completion service; it only
// enters a filter set from an explicit caller-supplied scope.
type ProposedFilters struct {
	FileName         []string `json:"file_name,omitempty"`
	ChapterTitle     []string `json:"chapter_title,omitempty"`
	CreationDate     []string `json:"creation_date,omitempty"`
	LastModifiedDate []string `json:"last_modified_date,omitempty"`
}

// FilterSet is a resolved metadata filter set. For every field, nil means
// "not specified" while a non-nil empty slice is the empty-match marker:
// candidates were given but zero canonical values matched, so a search under
// this set must return nothing.
type FilterSet struct {
	FileName         []string
	ChapterTitle     []string
	CreationDate     []string
	LastModifiedDate []string
	Classification   []string
}

// fields returns every field with its metadata key, in predicate order.
func (f FilterSet) fields() []struct {
	key    string
	values []string
} {
	return []struct {
		key    string
		values []string
	}{
		{fieldChapterTitle, f.ChapterTitle},
		{fieldCreationDate, f.CreationDate},
		{fieldClassification, f.Classification},
		{fieldFileName, f.FileName},
		{fieldLastModifiedDate, f.LastModifiedDate},
	}
}

// HasEmptyMatch reports whether any field carries the empty-match marker.
func (f FilterSet) HasEmptyMatch() bool {
	for _, field := range f.fields() {
		if field.values != nil && len(field.values) == 0 {
			return true
		}
	}
	return false
}

// Predicate assembles the conjunctive vector-store predicate: every non-empty
// field contributes one set-membership clause; fields are ANDed together.
// Callers must check HasEmptyMatch first; empty-match fields contribute no
// clause here.
func (f FilterSet) Predicate() vectorstore.Predicate {
	var pred vectorstore.Predicate
	for _, field := range f.fields() {
		if len(field.values) > 0 {
			pred = pred.And(field.key, field.values)
		}
	}
	return pred
}

// ChunkMetadata is the metadata record attached to one retrieved chunk.
type ChunkMetadata struct {
	FileName         string `json:"file_name"`
	ChapterTitle     string `json:"chapter_title"`
	Classification   string `json:"classification"`
	CreationDate     string `json:"creation_date"`
	LastModifiedDate string `json:"last_modified_date"`
}

// metadataFromMap extracts a ChunkMetadata from a vector point payload.
func metadataFromMap(meta map[string]any) ChunkMetadata {
	str := func(key string) string {
		if v, ok := meta[key].(string); ok {
			return v
		}
		return ""
	}
	return ChunkMetadata{
		FileName:         str(fieldFileName),
		ChapterTitle:     str(fieldChapterTitle),
		Classification:   str(fieldClassification),
		CreationDate:     str(fieldCreationDate),
		LastModifiedDate: str(fieldLastModifiedDate),
	}
}

// MetadataGroups holds the per-field deduplicated value sets aggregated from
// retrieved chunk metadata.
type MetadataGroups struct {
	FileNames         []string `json:"file_name"`
	ChapterTitles     []string `json:"chapter_title"`
	Classifications   []string `json:"classification"`
	CreationDates     []string `json:"creation_date"`
	LastModifiedDates []string `json:"last_modified_date"`
}

// GroupMetadata deduplicates the retrieved records into five sorted value
// sets, one per metadata field.
func GroupMetadata(records []ChunkMetadata) MetadataGroups {
	fileNames := make(map[string]struct{})
	chapterTitles := make(map[string]struct{})
	classifications := make(map[string]struct{})
	creationDates := make(map[string]struct{})
	lastModifiedDates := make(map[string]struct{})

	for _, record := range records {
		fileNames[record.FileName] = struct{}{}
		chapterTitles[record.ChapterTitle] = struct{}{}
		classifications[record.Classification] = struct{}{}
		creationDates[record.CreationDate] = struct{}{}
		lastModifiedDates[record.LastModifiedDate] = struct{}{}
	}

	return MetadataGroups{
		FileNames:         sortedKeys(fileNames),
		ChapterTitles:     sortedKeys(chapterTitles),
		Classifications:   sortedKeys(classifications),
		CreationDates:     sortedKeys(creationDates),
		LastModifiedDates: sortedKeys(lastModifiedDates),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
