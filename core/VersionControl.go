package core

type VersionControl interface {
	CurrentBranch() (string, error)
	// CreateBranch creates the branch from HEAD and switches to it.
	CreateBranch(name string) error
	SwitchBranch(name string) error
	Add(path string) error
	Commit(message string) error
}
