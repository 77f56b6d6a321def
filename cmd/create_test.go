package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd verifies create command metadata.
func TestGetCreateCmd(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "create", cmd.Use)
	assert.Contains(t, cmd.Short, "schema")
	assert.Contains(t, cmd.Long, "PostgreSQL")
	assert.Contains(t, cmd.Long, "idempotent")
	assert.NotNil(t, cmd.RunE)
}

// TestGetDropCmd_ForceFlag verifies --force flag exists.
func TestGetDropCmd_ForceFlag(t *testing.T) {
	cmd := getDropCmd()
	assert.Equal(t, "drop", cmd.Use)

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
	assert.Contains(t, forceFlag.Usage, "confirmation")
}

// TestDrop_Declined verifies nothing happens when the user says no.
func TestDrop_Declined(t *testing.T) {
	cmd := getDropCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader("no\n"))
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(yes/no)")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in  string
		res bool
	}{
		{"yes\n", true},
		{"Y\n", true},
		{"  yes  \n", true},
		{"y", true},
		{"no\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, v := range tests {
		out := new(bytes.Buffer)
		res := confirm(strings.NewReader(v.in), out, "Continue?")
		assert.Equal(t, v.res, res, v.in)
		assert.Equal(t, "Continue? (yes/no): ", out.String())
	}
}

// TestGetImportCmd_Flags verifies import flags.
func TestGetImportCmd_Flags(t *testing.T) {
	cmd := getImportCmd()
	assert.Equal(t, "import", cmd.Use)

	for name, short := range map[string]string{
		"students": "s",
		"rooms":    "r",
		"format":   "F",
	} {
		fl := cmd.Flags().Lookup(name)
		require.NotNil(t, fl, name)
		assert.Equal(t, short, fl.Shorthand)
		assert.Empty(t, fl.DefValue)
	}
	assert.Contains(t, cmd.Long, "sqlite")
}

// TestGetStatusCmd verifies status command metadata.
func TestGetStatusCmd(t *testing.T) {
	cmd := getStatusCmd()
	assert.Equal(t, "status", cmd.Use)
	assert.Contains(t, cmd.Long, "pool")
}
