package loader

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Strategy
		wantErr  bool
	}{
		{
			name:     "结构化策略",
			input:    "pymupdf",
			expected: StrategyStructural,
		},
		{
			name:     "语义策略",
			input:    "smart",
			expected: StrategySemantic,
		},
		{
			name:     "空值默认结构化",
			input:    "",
			expected: StrategyStructural,
		},
		{
			name:    "未知策略拒绝",
			input:   "magic",
			wantErr: true,
		},
		{
			name:    "大小写敏感",
			input:   "PyMuPDF",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := ParseStrategy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				appErr := errors.GetAppError(err)
				assert.NotNil(t, appErr)
				assert.Equal(t, errors.ErrInvalidParameter, appErr.Code)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, strategy)
		})
	}
}

// stubFileLoader 返回预置片段的加载器桩
type stubFileLoader struct {
	docs []*schema.Document
}

func (s *stubFileLoader) Load(ctx context.Context, src document.Source, opts ...document.LoaderOption) ([]*schema.Document, error) {
	return s.docs, nil
}

func TestStructuralLoaderRejectsNonPDF(t *testing.T) {
	ldr := &StructuralLoader{}

	// 扩展名校验在任何文件读取前完成
	_, err := ldr.Load(context.Background(), "/tmp/report.txt")
	assert.Error(t, err)

	appErr := errors.GetAppError(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnsupportedFileKind, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatusCode())
}

func TestStructuralLoaderEmptyDocument(t *testing.T) {
	t.Run("纯空白页报空文档错误", func(t *testing.T) {
		ldr := &StructuralLoader{
			fileLoader: &stubFileLoader{docs: []*schema.Document{
				{Content: "   "},
				{Content: "\n\t\n"},
			}},
		}

		_, err := ldr.Load(context.Background(), "/tmp/blank.pdf")
		assert.Error(t, err)

		appErr := errors.GetAppError(err)
		assert.NotNil(t, appErr)
		assert.Equal(t, errors.ErrEmptyDocument, appErr.Code)
	})

	t.Run("空白页被过滤有效页保留", func(t *testing.T) {
		ldr := &StructuralLoader{
			fileLoader: &stubFileLoader{docs: []*schema.Document{
				{Content: "first page text"},
				{Content: "  "},
				{Content: "third page text"},
			}},
		}

		fragments, err := ldr.Load(context.Background(), "/tmp/doc.pdf")
		assert.NoError(t, err)
		assert.Len(t, fragments, 2)
		assert.Equal(t, "/tmp/doc.pdf", fragments[0].MetaData["file_path"])
		assert.Equal(t, 1, fragments[0].MetaData[MetaPageLabel])
		assert.Equal(t, string(StrategyStructural), fragments[0].MetaData[MetaLoader])
	})
}

func TestParseChunkResponse(t *testing.T) {
	t.Run("裸JSON数组", func(t *testing.T) {
		chunks, err := parseChunkResponse(`[{"text":"hello","section":"intro"}]`)
		assert.NoError(t, err)
		assert.Len(t, chunks, 1)
		assert.Equal(t, "hello", chunks[0].Text)
		assert.Equal(t, "intro", chunks[0].Section)
	})

	t.Run("markdown围栏包裹", func(t *testing.T) {
		chunks, err := parseChunkResponse("```json\n[{\"text\":\"a\",\"section\":\"s\"}]\n```")
		assert.NoError(t, err)
		assert.Len(t, chunks, 1)
		assert.Equal(t, "a", chunks[0].Text)
	})

	t.Run("非JSON输出报错", func(t *testing.T) {
		_, err := parseChunkResponse("I cannot split this document.")
		assert.Error(t, err)
	})
}
