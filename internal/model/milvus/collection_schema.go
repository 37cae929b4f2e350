package milvus

import (
	"github.com/milvus-io/milvus/client/v2/entity"
)

// CollectionSchema represents the standard schema for chunk collections in Milvus.
// Every chunk carries a doc_type column so exact-match filtering is always
// well-defined, plus a JSON metadata payload with the sanitized loader metadata.
type CollectionSchema struct {
	// Id is the unique identifier for each chunk (primary key)
	Id string `milvus:"id,varchar,256,primary_key"`

	// Text is the content of the document chunk
	Text string `milvus:"text,varchar,65535"`

	// Vector is the embedding vector of the chunk
	Vector []float32 `milvus:"vector,float_vector"`

	// DocType is the caller-assigned classification tag of the source document
	DocType string `milvus:"doc_type,varchar,256"`

	// Metadata stores the sanitized chunk metadata as JSON
	Metadata string `milvus:"metadata,json"`
}

// GetFields returns the Milvus field definitions for chunk collections
func (CollectionSchema) GetFields(dim string) []*entity.Field {
	return []*entity.Field{
		{
			Name:        "id",
			DataType:    entity.FieldTypeVarChar,
			TypeParams:  map[string]string{"max_length": "256"},
			PrimaryKey:  true,
			AutoID:      false,
			Description: "Chunk unique ID (primary key)",
		},
		{
			Name:        "text",
			DataType:    entity.FieldTypeVarChar,
			TypeParams:  map[string]string{"max_length": "65535"},
			Description: "Document chunk content",
		},
		{
			Name:        "vector",
			DataType:    entity.FieldTypeFloatVector,
			TypeParams:  map[string]string{"dim": dim},
			Description: "Document chunk embedding vector",
		},
		{
			Name:        "doc_type",
			DataType:    entity.FieldTypeVarChar,
			TypeParams:  map[string]string{"max_length": "256"},
			Description: "Document classification tag (exact-match filter)",
		},
		{
			Name:        "metadata",
			DataType:    entity.FieldTypeJSON,
			Description: "Sanitized chunk metadata (JSON)",
		},
	}
}

// GetStandardCollectionFields is a helper function to get standard chunk collection fields
func GetStandardCollectionFields(dim string) []*entity.Field {
	return CollectionSchema{}.GetFields(dim)
}
