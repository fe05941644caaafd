package internal

// 操作模式
type OperationMode string

const (
	ModeFlat    OperationMode = "move-flat"
	ModeGrouped OperationMode = "move-grouped"
	ModeDelete  OperationMode = "delete"
)

// IsMove 是否为移动模式
func (m OperationMode) IsMove() bool {
	return m == ModeFlat || m == ModeGrouped
}

// Valid 是否为已知模式
func (m OperationMode) Valid() bool {
	return m.IsMove() || m == ModeDelete
}
