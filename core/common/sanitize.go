package common

import (
	"regexp"
	"strings"
)

var (
	canonicalUUIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
	compactUUIDPattern   = regexp.MustCompile(`^[a-f0-9]{32}$`)
	collectionPattern    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// SanitizeMilvusString 转义 Milvus 表达式中的特殊字符
// 防止通过特殊字符进行表达式注入
func SanitizeMilvusString(s string) string {
	// 转义反斜杠（必须先转义）
	s = strings.ReplaceAll(s, `\`, `\\`)
	// 转义双引号
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// IsCanonicalUUID 验证标准 UUID 格式（8-4-4-4-12，带连字符）
// 检索元数据里只有这种形式的 key 会被当作 doc_id
func IsCanonicalUUID(s string) bool {
	return canonicalUUIDPattern.MatchString(strings.ToLower(s))
}

// ValidateUUID 验证 UUID 格式（支持有连字符和无连字符两种格式）
// 返回 true 表示格式合法
func ValidateUUID(uuid string) bool {
	lowerUUID := strings.ToLower(uuid)
	return canonicalUUIDPattern.MatchString(lowerUUID) || compactUUIDPattern.MatchString(lowerUUID)
}

// ValidateCollectionName 验证集合名称（只允许字母、数字、下划线）
// Milvus 集合名称规范: 1-255 字符，字母开头，只能包含字母、数字、下划线
func ValidateCollectionName(name string) bool {
	if len(name) == 0 || len(name) > 255 {
		return false
	}
	return collectionPattern.MatchString(name)
}
