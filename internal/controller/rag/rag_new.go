package rag

// ControllerV1 RAG 接口控制器
type ControllerV1 struct{}

// NewV1 创建 RAG 接口控制器
func NewV1() *ControllerV1 {
	return &ControllerV1{}
}
