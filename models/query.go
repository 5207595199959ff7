package models

// AttributeType enum for different attribute types
type AttributeType int

const (
	StringType AttributeType = iota
	NumberType
	BinaryType
)

// QueryConfig holds all the configuration for a single-item lookup
type QueryConfig struct {
	TableName string
	IndexName string // empty for primary key lookups
	KeyName   string
	KeyValue  string
	KeyType   AttributeType
}

// TableDefinition describes a table/collection and its secondary indexes
type TableDefinition struct {
	TableName string            `json:"TableName"`
	HashKey   string            `json:"HashKey"`
	Indexes   []IndexDefinition `json:"Indexes,omitempty"`
}

// IndexDefinition describes one secondary index
type IndexDefinition struct {
	IndexName string `json:"IndexName"`
	KeyName   string `json:"KeyName"`
	Unique    bool   `json:"Unique,omitempty"`
}
