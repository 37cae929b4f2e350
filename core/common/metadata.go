package common

import (
	"fmt"
	"path/filepath"
	"sort"
)

// 元数据固定字段
const (
	MetaDocType  = "doc_type"
	MetaFilePath = "file_path"
	MetaFileName = "file_name"
	MetaDocId    = "doc_id"
)

// SanitizeMetadata 将任意 loader 元数据规整为扁平的标量映射
// 规则：
//  1. 标量（string/数值/bool/nil）原样保留，其余类型一律转为字符串，绝不丢弃
//  2. file_path 为字符串时，补充 file_name 为其 basename
//  3. doc_type 始终写入为传入值，覆盖同名旧值
//
// 纯函数，无 I/O，幂等：对已规整结果重复调用输出不变
func SanitizeMetadata(metadata map[string]any, docType string) map[string]any {
	sanitized := make(map[string]any, len(metadata)+2)
	for key, value := range metadata {
		switch v := value.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			sanitized[key] = v
		default:
			sanitized[key] = fmt.Sprintf("%v", v)
		}
	}
	if fp, ok := sanitized[MetaFilePath].(string); ok {
		sanitized[MetaFileName] = filepath.Base(fp)
	}
	sanitized[MetaDocType] = docType
	return sanitized
}

// MetadataRecord 将单个节点的元数据构造为一条来源记录
// key 符合标准 UUID（8-4-4-4-12）时记录 doc_id 为该 key，否则为 nil；
// docType 为 nil 时元数据原样透传，否则先经过 SanitizeMetadata
func MetadataRecord(key string, nodeMeta map[string]any, docType *string) map[string]any {
	entry := make(map[string]any, len(nodeMeta)+1)
	if IsCanonicalUUID(key) {
		entry[MetaDocId] = key
	} else {
		entry[MetaDocId] = nil
	}

	if docType != nil {
		for k, v := range SanitizeMetadata(nodeMeta, *docType) {
			entry[k] = v
		}
	} else {
		for k, v := range nodeMeta {
			entry[k] = v
		}
	}
	return entry
}

// TransformMetadata 将检索响应中按节点ID组织的元数据重整为记录列表
// 值不是映射的条目直接跳过，输出按键排序保证确定性
func TransformMetadata(rawMetadata map[string]any, docType *string) []map[string]any {
	keys := make([]string, 0, len(rawMetadata))
	for key := range rawMetadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	results := make([]map[string]any, 0, len(rawMetadata))
	for _, key := range keys {
		nodeMeta, ok := rawMetadata[key].(map[string]any)
		if !ok {
			continue
		}
		results = append(results, MetadataRecord(key, nodeMeta, docType))
	}
	return results
}
