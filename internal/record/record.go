package record

// LevelContent marks a row that carries body text rather than a heading.
const LevelContent = -1

// Row is one flattened unit of the source document, either a heading
// marker (Level >= 0) or body content (Level == LevelContent).
type Row struct {
	Level   int    `json:"level"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Seq     int    `json:"seq"`
}

// IsHeading reports whether the row opens a section in the outline.
func (r Row) IsHeading() bool {
	return r.Level >= 0
}

// PathRecord is a Row annotated with the titles of its outline ancestors,
// root-child first, immediate parent last. The synthetic root is excluded.
type PathRecord struct {
	Row
	SemanticPath []string `json:"semantic_path"`
}

// Chunk is the terminal artifact: a token-bounded fragment of one source
// record's content. Chunks are immutable once emitted. Concatenating the
// Content of chunks 0..ChunkCount-1 in ChunkIndex order reproduces the
// source content exactly.
type Chunk struct {
	SemanticPath []string `json:"semantic_path"`
	ChunkIndex   int      `json:"chunk_index"`
	ChunkCount   int      `json:"chunk_count"`
	Content      string   `json:"content"`
	TokenCount   int      `json:"token_count"`
	Seq          int      `json:"seq"`
}
