package common

import "strings"

// IsURL 判断资源地址是否为网络地址
func IsURL(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}
