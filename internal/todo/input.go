package todo

import "strings"

// GroupDelimiter marks a line of input as a group name rather than an item.
const GroupDelimiter = "/"

// CommandKind tags the result of ParseInput.
type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandCreateItem
	CommandCreateGroup
)

func (k CommandKind) String() string {
	switch k {
	case CommandCreateItem:
		return "create-item"
	case CommandCreateGroup:
		return "create-group"
	}
	return "empty"
}

// Command is what a single line of user input asks for.
// Value is the item text or the group name.
type Command struct {
	Kind  CommandKind
	Value string
}

// ParseInput interprets the overloaded input field: "Groceries/" creates the
// group Groceries, anything else non-blank creates an item. A lone "/" is empty.
func ParseInput(raw string) Command {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(s, GroupDelimiter) {
		name := strings.TrimSpace(strings.TrimSuffix(s, GroupDelimiter))
		if name == "" {
			return Command{Kind: CommandEmpty}
		}
		return Command{Kind: CommandCreateGroup, Value: name}
	}
	if s == "" {
		return Command{Kind: CommandEmpty}
	}
	return Command{Kind: CommandCreateItem, Value: s}
}
