package models

type SearchPostRequest struct {
	// Query text passed to the search index.
	Query string `json:"query"`
}

// SearchResult is a normalized search hit, shaped for the web front end.
type SearchResult struct {
	Content             string  `json:"content" yaml:"content"`
	Context             string  `json:"context" yaml:"context"`
	Relevance           float64 `json:"relevance" yaml:"relevance"`
	Summary             string  `json:"summary" yaml:"summary"`
	Filename            string  `json:"filename" yaml:"filename"`
	FilePath            string  `json:"filepath" yaml:"filepath"`
	MetadataStoragePath string  `json:"metadata_storage_path" yaml:"metadata_storage_path"`
	MetadataStorageName string  `json:"metadata_storage_name" yaml:"metadata_storage_name"`
	URL                 string  `json:"url" yaml:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
