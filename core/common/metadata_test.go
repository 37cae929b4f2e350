package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMetadata(t *testing.T) {
	t.Run("标量原样保留", func(t *testing.T) {
		meta := map[string]any{
			"page_label": 3,
			"score":      0.92,
			"published":  true,
			"note":       nil,
			"title":      "hello",
		}
		result := SanitizeMetadata(meta, "manual")

		assert.Equal(t, 3, result["page_label"])
		assert.Equal(t, 0.92, result["score"])
		assert.Equal(t, true, result["published"])
		assert.Nil(t, result["note"])
		assert.Equal(t, "hello", result["title"])
	})

	t.Run("非标量转为字符串", func(t *testing.T) {
		meta := map[string]any{
			"tags":   []string{"a", "b"},
			"nested": map[string]any{"k": "v"},
		}
		result := SanitizeMetadata(meta, "manual")

		assert.Equal(t, "[a b]", result["tags"])
		assert.Equal(t, "map[k:v]", result["nested"])
	})

	t.Run("file_path补充file_name", func(t *testing.T) {
		meta := map[string]any{
			"file_path": "/data/docs/report.pdf",
		}
		result := SanitizeMetadata(meta, "report")

		assert.Equal(t, "report.pdf", result[MetaFileName])
	})

	t.Run("doc_type覆盖旧值", func(t *testing.T) {
		meta := map[string]any{
			"doc_type": "old_type",
		}
		result := SanitizeMetadata(meta, "new_type")

		assert.Equal(t, "new_type", result[MetaDocType])
	})

	t.Run("幂等性", func(t *testing.T) {
		meta := map[string]any{
			"file_path": "/data/a.pdf",
			"tags":      []int{1, 2},
			"page":      5,
		}
		once := SanitizeMetadata(meta, "manual")
		twice := SanitizeMetadata(once, "manual")

		assert.Equal(t, once, twice)
	})
}

func TestMetadataRecord(t *testing.T) {
	t.Run("UUID键记录为doc_id", func(t *testing.T) {
		record := MetadataRecord("550e8400-e29b-41d4-a716-446655440000", map[string]any{"file_name": "a.pdf"}, nil)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", record[MetaDocId])
		assert.Equal(t, "a.pdf", record["file_name"])
	})

	t.Run("非UUID键doc_id为nil", func(t *testing.T) {
		record := MetadataRecord("node-1", map[string]any{"file_name": "b.pdf"}, nil)
		assert.Nil(t, record[MetaDocId])
	})

	t.Run("指定docType时先规整", func(t *testing.T) {
		docType := "manual"
		record := MetadataRecord("node-1", map[string]any{"tags": []string{"x"}}, &docType)
		assert.Equal(t, "manual", record[MetaDocType])
		assert.Equal(t, "[x]", record["tags"])
	})
}

func TestTransformMetadata(t *testing.T) {
	t.Run("UUID键记录为doc_id", func(t *testing.T) {
		raw := map[string]any{
			"550e8400-e29b-41d4-a716-446655440000": map[string]any{
				"file_name": "a.pdf",
			},
		}
		records := TransformMetadata(raw, nil)

		assert.Len(t, records, 1)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", records[0][MetaDocId])
		assert.Equal(t, "a.pdf", records[0]["file_name"])
	})

	t.Run("非UUID键doc_id为nil", func(t *testing.T) {
		raw := map[string]any{
			"node-1": map[string]any{"file_name": "b.pdf"},
		}
		records := TransformMetadata(raw, nil)

		assert.Len(t, records, 1)
		assert.Nil(t, records[0][MetaDocId])
	})

	t.Run("非映射条目被跳过", func(t *testing.T) {
		raw := map[string]any{
			"valid":   map[string]any{"k": "v"},
			"invalid": "just a string",
			"number":  42,
		}
		records := TransformMetadata(raw, nil)

		assert.Len(t, records, 1)
		assert.Equal(t, "v", records[0]["k"])
	})

	t.Run("指定docType时逐条规整", func(t *testing.T) {
		docType := "manual"
		raw := map[string]any{
			"node-1": map[string]any{
				"tags": []string{"x"},
			},
		}
		records := TransformMetadata(raw, &docType)

		assert.Len(t, records, 1)
		assert.Equal(t, "manual", records[0][MetaDocType])
		assert.Equal(t, "[x]", records[0]["tags"])
	})

	t.Run("输出顺序按键排序确定", func(t *testing.T) {
		raw := map[string]any{
			"b-node": map[string]any{"name": "second"},
			"a-node": map[string]any{"name": "first"},
		}
		records := TransformMetadata(raw, nil)

		assert.Len(t, records, 2)
		assert.Equal(t, "first", records[0]["name"])
		assert.Equal(t, "second", records[1]["name"])
	})

	t.Run("空输入返回空列表", func(t *testing.T) {
		records := TransformMetadata(map[string]any{}, nil)
		assert.Empty(t, records)
	})
}
