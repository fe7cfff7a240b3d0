package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"msgtools/internal/config"
)

var fixture = map[string]string{
	"go.mod": "module example.com/app\n\ngo 1.22\n",
	"msgs/base.go": `package msgs

//msg:bundle
type Base interface {
	//msg:message Hello
	Greet() string
}
`,
	"msgs/child.go": `package msgs

//msg:bundle
type Child interface {
	Base

	//msg:message Hi
	Greet() string
	//msg:message Bye
	Bye() string
}

//msg:enclosing Child
//msg:logger
type Inner interface {
	//msg:message inner
	Ping()
}

type Plain interface {
	Greet() string
}
`,
}

// setupWorkspace writes the fixture module, points the command at it and
// resets global flag state when the test ends.
func setupWorkspace(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixture {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	viper.Reset()
	viper.Set(config.KeyDir, dir)
	optionOverrides = nil
	for key, value := range overrides {
		optionOverrides = append(optionOverrides, key+"="+value)
	}
	t.Cleanup(func() {
		viper.Reset()
		optionOverrides = nil
		catalogOutput, catalogType = "table", ""
		checkType, checkFile, checkFail = "", "", false
	})
	return dir
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	return cmd, buf
}
