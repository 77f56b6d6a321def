package schema

// IndexReport tells what happened to each analytical index.
type IndexReport struct {
	// Created are indexes built by the call.
	Created []string
	// Skipped are indexes that already existed.
	Skipped []string
	// Failed are indexes that could not be built for another reason.
	Failed []string
}

// TableInfo describes storage used by a table.
type TableInfo struct {
	TableName   string  `json:"table_name"    db:"table_name"`
	SizeMB      float64 `json:"size_mb"       db:"size_mb"`
	DataSizeMB  float64 `json:"data_size_mb"  db:"data_size_mb"`
	IndexSizeMB float64 `json:"index_size_mb" db:"index_size_mb"`
	RowCount    int64   `json:"row_count"     db:"row_count"`
}
