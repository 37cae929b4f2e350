package translate

// ControllerV1 翻译接口控制器
type ControllerV1 struct{}

// NewV1 创建翻译接口控制器
func NewV1() *ControllerV1 {
	return &ControllerV1{}
}
