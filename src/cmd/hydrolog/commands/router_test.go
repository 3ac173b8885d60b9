// FILE: hydrolog/src/cmd/hydrolog/commands/router_test.go
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRouter_Route(t *testing.T) {
	testCases := []struct {
		name        string
		args        []string
		handled     bool
		expectUsage bool
		contains    string
	}{
		{name: "NoCommand", args: []string{"hydrolog"}, handled: false},
		{name: "Version", args: []string{"hydrolog", "version"}, handled: true, contains: "hydrolog "},
		{name: "VersionFlag", args: []string{"hydrolog", "--version"}, handled: true, contains: "commit:"},
		{name: "Help", args: []string{"hydrolog", "help"}, handled: true, contains: "Commands:"},
		{name: "HelpFlag", args: []string{"hydrolog", "-h"}, handled: true, contains: "inspect"},
		{name: "CommandHelp", args: []string{"hydrolog", "export", "--help"}, handled: true, contains: "Export Command"},
		{name: "HelpTopic", args: []string{"hydrolog", "help", "watch"}, handled: true, contains: "Watch Command"},
		{name: "UnknownCommand", args: []string{"hydrolog", "merge"}, expectUsage: true},
		{name: "UnknownHelpTopic", args: []string{"hydrolog", "help", "merge"}, handled: true, expectUsage: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, out, _ := newTestRouter(testBoot(nil))

			handled, err := router.Route(tc.args)
			assert.Equal(t, tc.handled, handled)
			if tc.expectUsage {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tc.contains)
		})
	}
}

func TestCommandRouter_Commands(t *testing.T) {
	router, _, errOut := newTestRouter(testBoot(nil))

	for _, name := range []string{"export", "inspect", "watch", "config", "version", "help"} {
		handler, ok := router.GetCommand(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, handler.Description())
		assert.NotEmpty(t, handler.Help())
	}

	router.ShowCommands()
	assert.Contains(t, errOut.String(), "export")
	assert.Contains(t, errOut.String(), "hydrolog <command> --help")
}
