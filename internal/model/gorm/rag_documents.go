package gorm

import (
	"time"
)

// 文档登记状态
const (
	DocStatusIngesting int8 = 0
	DocStatusReady     int8 = 1
	DocStatusFailed    int8 = 2
)

// RagDocuments 已入库文档登记表
type RagDocuments struct {
	ID             string     `gorm:"primaryKey;column:id;type:varchar(255)"`
	CollectionName string     `gorm:"column:collection_name;type:varchar(255);not null;index"`
	DocType        string     `gorm:"column:doc_type;type:varchar(255)"`
	FileName       string     `gorm:"column:file_name;type:varchar(255)"`
	Loader         string     `gorm:"column:loader;type:varchar(64)"`
	ChunkCount     int        `gorm:"column:chunk_count;type:int;not null;default:0"`
	RustfsBucket   string     `gorm:"column:rustfs_bucket;type:varchar(255)"`
	RustfsLocation string     `gorm:"column:rustfs_location;type:varchar(255)"`
	LocalFilePath  string     `gorm:"column:local_file_path;type:varchar(512)"`
	Status         int8       `gorm:"column:status;type:tinyint;not null;default:0"`
	CreateTime     *time.Time `gorm:"column:create_time;type:timestamp;autoCreateTime"`
	UpdateTime     *time.Time `gorm:"column:update_time;type:timestamp;autoUpdateTime"`
}

// TableName 设置表名
func (RagDocuments) TableName() string {
	return "rag_documents"
}
