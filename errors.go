package ecg

import "errors"

// 错误分类，对应分析接口的标准返回码。
// 调用方用 errors.Is 判断类别，不需要解析错误文本。
var (
	// ErrNull 必需的指针/引用参数缺失 (nil)
	ErrNull = errors.New("ecg: nil argument")

	// ErrParam 参数超出合法范围 (采样数为 0 或超上限、lead 索引越界、配置缺失)
	ErrParam = errors.New("ecg: invalid parameter")

	// ErrAlloc 上下文创建时缓冲区分配失败
	ErrAlloc = errors.New("ecg: allocation failed")

	// ErrClosed 上下文已经 Close，禁止继续使用
	ErrClosed = errors.New("ecg: context closed")
)
