package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		cmd   string
		param string
	}{
		{"directive with parameter", "/feel anxious", CmdFeel, "anxious"},
		{"directive without parameter", "/start", CmdStart, ""},
		{"directive preserves parameter case", "/feel Anxious About Work", CmdFeel, "Anxious About Work"},
		{"directive name is lowercased", "/FEEL anxious", CmdFeel, "anxious"},
		{"free text is implicit ask", "I had a rough day", CmdAsk, "I had a rough day"},
		{"empty input", "", CmdAsk, ""},
		{"whitespace only", "   ", CmdAsk, ""},
		{"bare slash", "/", CmdAsk, ""},
		{"surrounding whitespace", "  /exit  ", CmdExit, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, param := ParseCommand(tc.raw)
			assert.Equal(t, tc.cmd, cmd)
			assert.Equal(t, tc.param, param)
		})
	}
}

func TestNormalizeCommand(t *testing.T) {
	assert.Equal(t, "feel", NormalizeCommand("/FEEL"))
	assert.Equal(t, "sos", NormalizeCommand(" sos "))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryEmergency, CategoryOf("/sos"))
	assert.Equal(t, CategorySelfHelp, CategoryOf("breathe"))
	assert.Equal(t, CategoryTracking, CategoryOf("moodlog"))
	assert.Equal(t, CategoryUnknown, CategoryOf("dance"))
}

func TestIsKnownCommand(t *testing.T) {
	for _, cmd := range Commands() {
		assert.True(t, IsKnownCommand(cmd), cmd)
	}
	assert.False(t, IsKnownCommand("dance"))
}
