package errors

// ErrCode 业务错误码类型
type ErrCode int

const (
	// 通用错误 1000-1999
	ErrInvalidParameter ErrCode = 1001 // 参数错误
	ErrUnauthorized     ErrCode = 1002 // 未授权
	ErrInternalError    ErrCode = 1003 // 内部错误
	ErrNotFound         ErrCode = 1004 // 资源未找到
	ErrOperationFailed  ErrCode = 1005 // 操作失败

	// 文档加载相关 2000-2999
	ErrUnsupportedFileKind ErrCode = 2001 // 不支持的文件类型
	ErrLoaderFailed        ErrCode = 2002 // 文档加载失败
	ErrEmptyDocument       ErrCode = 2003 // 文档内容为空
	ErrFileUploadFailed    ErrCode = 2004 // 文件上传失败

	// 索引入库相关 3000-3999
	ErrIngestionFailed ErrCode = 3001 // 文档入库失败
	ErrEmbeddingFailed ErrCode = 3002 // Embedding失败
	ErrUploadTimeout   ErrCode = 3003 // 入库超时

	// 检索问答相关 4000-4999
	ErrQueryFailed         ErrCode = 4001 // 查询失败
	ErrInvalidResponseMode ErrCode = 4002 // 未知的响应模式
	ErrRetrievalFailed     ErrCode = 4003 // 检索失败
	ErrLLMCallFailed       ErrCode = 4004 // LLM调用失败

	// 翻译相关 5000-5999
	ErrTranslationFailed ErrCode = 5001 // 翻译失败

	// 向量数据库 6000-6999
	ErrVectorStoreInit    ErrCode = 6001 // 向量库初始化失败
	ErrVectorSearch       ErrCode = 6002 // 向量搜索失败
	ErrVectorInsert       ErrCode = 6003 // 向量插入失败
	ErrCollectionNotFound ErrCode = 6004 // 集合不存在

	// 数据库相关 7000-7999
	ErrDatabaseQuery  ErrCode = 7001 // 数据库查询失败
	ErrDatabaseInsert ErrCode = 7002 // 数据库插入失败
	ErrDatabaseInit   ErrCode = 7003 // 数据库初始化失败
)

// HTTPStatusCode 返回错误码对应的HTTP状态码
func (e ErrCode) HTTPStatusCode() int {
	switch e {
	case ErrInvalidParameter, ErrUnsupportedFileKind, ErrInvalidResponseMode:
		return 400
	case ErrUnauthorized:
		return 401
	case ErrNotFound, ErrCollectionNotFound:
		return 404
	default:
		return 500
	}
}
