package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType CommandType
		wantArgs []string
		wantRaw  string
		wantNil  bool
		wantErr  bool
	}{
		{
			name:    "ignores messages without the prefix",
			content: "hello world",
			wantNil: true,
		},
		{
			name:    "ignores a partial prefix",
			content: "checking in now",
			wantNil: true,
		},
		{
			name:     "parses a bare command",
			content:  "c.t",
			wantType: CmdToday,
			wantArgs: []string{},
			wantRaw:  "",
		},
		{
			name:     "parses a check-in with body text",
			content:  "c.c did my workout today",
			wantType: CmdCheckIn,
			wantArgs: []string{"did", "my", "workout", "today"},
			wantRaw:  "did my workout today",
		},
		{
			name:     "is case-insensitive on prefix and command word",
			content:  "C.WL",
			wantType: CmdCheckinBoard,
			wantArgs: []string{},
			wantRaw:  "",
		},
		{
			name:     "keeps raw text for name mappings",
			content:  "c.n 123:Alice Smith, 456:Bob",
			wantType: CmdNames,
			wantArgs: []string{"123:Alice", "Smith,", "456:Bob"},
			wantRaw:  "123:Alice Smith, 456:Bob",
		},
		{
			name:    "rejects a bare prefix",
			content: "c.",
			wantErr: true,
		},
		{
			name:    "rejects an unknown command",
			content: "c.xyz stuff",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.content, "c.")
			if tt.wantNil {
				assert.Nil(t, cmd)
				assert.NoError(t, err)
				return
			}
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cmd)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.wantType, cmd.Type)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, tt.wantRaw, cmd.Raw)
		})
	}
}

func TestParseUserRef(t *testing.T) {
	tests := []struct {
		input  string
		wantID string
		wantOK bool
	}{
		{input: "<@123456789>", wantID: "123456789", wantOK: true},
		{input: "<@!123456789>", wantID: "123456789", wantOK: true},
		{input: "123456789", wantID: "123456789", wantOK: true},
		{input: "<@>", wantOK: false},
		{input: "somename", wantOK: false},
		{input: "12a34", wantOK: false},
		{input: "", wantOK: false},
	}
	for _, tt := range tests {
		id, ok := parseUserRef(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		if tt.wantOK {
			assert.Equal(t, tt.wantID, id, "input %q", tt.input)
		}
	}
}

func TestParseUserRefs(t *testing.T) {
	ids, ok := parseUserRefs([]string{"<@1>", "2", "<@!1>"})
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, ids, "duplicates collapse, order preserved")

	_, ok = parseUserRefs([]string{"<@1>", "nope"})
	assert.False(t, ok, "one bad reference rejects the whole batch")
}

func TestContainsLink(t *testing.T) {
	assert.True(t, containsLink("proof: https://example.com/run.png"))
	assert.True(t, containsLink("see http://example.com"))
	assert.False(t, containsLink("no links here"))
}
