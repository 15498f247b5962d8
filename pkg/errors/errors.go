package errors

import "errors"

// ErrInvalidDate 日期参数无效：缺失或不是 YYYY-MM-DD 格式
var ErrInvalidDate = errors.New("日期无效，应为 YYYY-MM-DD 格式")
