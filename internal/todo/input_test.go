package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Command
	}{
		{"empty", "", Command{Kind: CommandEmpty}},
		{"spaces", "   ", Command{Kind: CommandEmpty}},
		{"item", "Buy milk", Command{Kind: CommandCreateItem, Value: "Buy milk"}},
		{"item trimmed", "  Buy milk  ", Command{Kind: CommandCreateItem, Value: "Buy milk"}},
		{"group", "Groceries/", Command{Kind: CommandCreateGroup, Value: "Groceries"}},
		{"group with spaces", "  Side projects /  ", Command{Kind: CommandCreateGroup, Value: "Side projects"}},
		{"lone delimiter", "/", Command{Kind: CommandEmpty}},
		{"padded delimiter", "  /  ", Command{Kind: CommandEmpty}},
		{"delimiter inside", "read a/b testing", Command{Kind: CommandCreateItem, Value: "read a/b testing"}},
		{"leading delimiter", "/home", Command{Kind: CommandCreateItem, Value: "/home"}},
		{"double delimiter", "a//", Command{Kind: CommandCreateGroup, Value: "a/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInput(tt.in))
		})
	}
}

func TestCommandKindString(t *testing.T) {
	assert.Equal(t, "create-group", CommandCreateGroup.String())
	assert.Equal(t, "create-item", CommandCreateItem.String())
	assert.Equal(t, "empty", CommandEmpty.String())
}
