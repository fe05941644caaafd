package menu

// State 菜单循环的状态
type State int

const (
	StateAwaitingConfig State = iota
	StateReady
	StateAbout
	StateMoving
	StateDeleting
	StateEditing
	StateViewingHistory
	StateClearingHistory
	StateExited
)

var stateNames = map[State]string{
	StateAwaitingConfig:  "awaiting-config",
	StateReady:           "ready",
	StateAbout:           "about",
	StateMoving:          "moving",
	StateDeleting:        "deleting",
	StateEditing:         "editing",
	StateViewingHistory:  "viewing-history",
	StateClearingHistory: "clearing-history",
	StateExited:          "exited",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
