package advisor

// TableStat is the storage and access statistics of a table.
type TableStat struct {
	TableName   string  `json:"table_name"    db:"table_name"`
	RowCount    int64   `json:"row_count"     db:"row_count"`
	SeqScans    int64   `json:"seq_scans"     db:"seq_scans"`
	IndexScans  int64   `json:"index_scans"   db:"index_scans"`
	DataSizeMB  float64 `json:"data_size_mb"  db:"data_size_mb"`
	IndexSizeMB float64 `json:"index_size_mb" db:"index_size_mb"`
}

// IndexStat is the usage statistics of an index.
type IndexStat struct {
	TableName     string `json:"table_name"     db:"table_name"`
	IndexName     string `json:"index_name"     db:"index_name"`
	Definition    string `json:"definition"     db:"definition"`
	Unique        bool   `json:"unique"         db:"is_unique"`
	Scans         int64  `json:"scans"          db:"scans"`
	TuplesRead    int64  `json:"tuples_read"    db:"tuples_read"`
	TuplesFetched int64  `json:"tuples_fetched" db:"tuples_fetched"`
}

// Report is the analysis of the analytical workload.
type Report struct {
	Queries         []Analysis  `json:"query_analyses"`
	TableStatistics []TableStat `json:"table_statistics"`
	IndexStatistics []IndexStat `json:"index_statistics"`
}
