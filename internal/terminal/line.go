package terminal

// Role distinguishes echoed input from command output.
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

// Line is one transcript entry. Visible is always a prefix of Full; the two
// are equal once the line has been fully revealed.
type Line struct {
	Role    Role
	Full    string
	Visible string
}

// Complete reports whether the whole line is visible.
func (l Line) Complete() bool { return len(l.Visible) == len(l.Full) }
