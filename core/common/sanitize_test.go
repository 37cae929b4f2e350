package common

import (
	"testing"
)

func TestSanitizeMilvusString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "正常字符串",
			input:    "normal-string-123",
			expected: "normal-string-123",
		},
		{
			name:     "包含双引号",
			input:    `test"value`,
			expected: `test\"value`,
		},
		{
			name:     "包含反斜杠",
			input:    `test\value`,
			expected: `test\\value`,
		},
		{
			name:     "注入尝试 - 双引号",
			input:    `test" OR 1==1 OR "`,
			expected: `test\" OR 1==1 OR \"`,
		},
		{
			name:     "空字符串",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeMilvusString(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeMilvusString(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "有效的UUID - 带连字符",
			input:    "550e8400-e29b-41d4-a716-446655440000",
			expected: true,
		},
		{
			name:     "有效的UUID - 带连字符（大写）",
			input:    "550E8400-E29B-41D4-A716-446655440000",
			expected: true,
		},
		{
			name:     "有效的UUID - 无连字符",
			input:    "550e8400e29b41d4a716446655440000",
			expected: true,
		},
		{
			name:     "无效 - 长度不足",
			input:    "550e8400-e29b-41d4",
			expected: false,
		},
		{
			name:     "无效 - 非十六进制字符",
			input:    "550e8400-e29b-41d4-a716-44665544zzzz",
			expected: false,
		},
		{
			name:     "无效 - 空字符串",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateUUID(tt.input)
			if result != tt.expected {
				t.Errorf("ValidateUUID(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsCanonicalUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "标准格式",
			input:    "550e8400-e29b-41d4-a716-446655440000",
			expected: true,
		},
		{
			name:     "紧凑格式不算标准",
			input:    "550e8400e29b41d4a716446655440000",
			expected: false,
		},
		{
			name:     "普通字符串",
			input:    "not-a-uuid",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsCanonicalUUID(tt.input)
			if result != tt.expected {
				t.Errorf("IsCanonicalUUID(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateCollectionName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "有效集合名",
			input:    "my_collection_01",
			expected: true,
		},
		{
			name:     "单字母",
			input:    "a",
			expected: true,
		},
		{
			name:     "数字开头",
			input:    "1collection",
			expected: false,
		},
		{
			name:     "下划线开头",
			input:    "_collection",
			expected: false,
		},
		{
			name:     "包含连字符",
			input:    "my-collection",
			expected: false,
		},
		{
			name:     "空字符串",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCollectionName(tt.input)
			if result != tt.expected {
				t.Errorf("ValidateCollectionName(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
