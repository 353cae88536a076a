package models

// PageResult records the outcome of splitting one source page.
type PageResult struct {
	PageNumber     int    `json:"page_number"`
	Identifier     string `json:"identifier"`
	OutputFileName string `json:"output_file"`
}

// Manifest is the ordered list of page results for one run.
type Manifest []PageResult

type PdfData []byte

// SourceInfo contains information about where the PDF came from
type SourceInfo struct {
	Path     string `json:"path,omitempty"`
	ZoteroID string `json:"zotero_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

// SplitResult is what a shell hands back to its caller after a run
type SplitResult struct {
	Manifest    Manifest `json:"manifest"`
	ArchivePath string   `json:"archive_path"`
	PageCount   int      `json:"page_count"`
	Pattern     string   `json:"pattern"`
}
