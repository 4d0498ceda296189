package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoji-life/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "life", cmd.Use)
	assert.Contains(t, cmd.Long, "LIFE_*")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "serve", "bench", "patterns"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	level := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, level)
	assert.Equal(t, "", level.DefValue)
}

func TestServeFlags(t *testing.T) {
	cmd := NewRootCommand()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	port := serve.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "2222", port.DefValue)
	assert.NotNil(t, serve.Flags().Lookup("host-key"))
	assert.NotNil(t, serve.Flags().Lookup("max-sessions"))
	assert.Equal(t, "p", serve.Flags().Lookup("pattern").Shorthand)
}

func TestPatternsListsBuiltins(t *testing.T) {
	out, err := execute(t, "patterns")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "glider"))
	assert.Contains(t, out, "pulsar")
}

func TestPatternsPreview(t *testing.T) {
	out, err := execute(t, "patterns", "--preview", "--theme", "ascii", "blinker")
	require.NoError(t, err)
	assert.Contains(t, out, "1x3")
	assert.Contains(t, out, "3 cells")
	assert.Contains(t, out, ".O.\n.O.\n.O.")
}

func TestPatternsFromFile(t *testing.T) {
	out, err := execute(t, "patterns", "--file", "../pattern/testdata/spaceships.yaml", "lwss")
	require.NoError(t, err)
	assert.Contains(t, out, "9 cells")
}

func TestPatternsErrors(t *testing.T) {
	_, err := execute(t, "patterns", "nope")
	require.Error(t, err)

	_, err = execute(t, "patterns", "--theme", "neon")
	require.Error(t, err)
}

func TestBenchJSON(t *testing.T) {
	out, err := execute(t, "bench", "--entities", "10", "--rounds", "2", "--generations", "0", "--json")
	require.NoError(t, err)

	var rep benchReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 60, rep.Ops)
	assert.Zero(t, rep.Leaked)
}

func TestBenchText(t *testing.T) {
	out, err := execute(t, "bench", "--entities", "5", "--rounds", "1", "--generations", "2", "--width", "8", "--height", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "churn  15 ops")
	assert.Contains(t, out, "life   2 generations")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.conf"), "patterns")
	require.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "patterns")
	require.Error(t, err)
}

func TestPrepareLoadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.conf")
	require.NoError(t, os.WriteFile(path, []byte("LIFE_WIDTH=64\nLIFE_THEME=mono\n"), 0o600))
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	opts := &RootOptions{ConfigPath: path}
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "debug"}))
	require.NoError(t, opts.prepare(cmd))

	assert.Equal(t, 64, opts.Config.Width)
	assert.Equal(t, "mono", opts.Config.Theme)
	assert.Equal(t, "debug", opts.Config.LogLevel)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestBoardFlagsOnlyOverrideWhatIsSet(t *testing.T) {
	var b boardFlags
	cmd := &cobra.Command{}
	b.bind(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--width", "50", "-p", "glider", "--wrap=false"}))

	cfg := config.Default()
	cfg.Height = 33
	cfg.Theme = "space"
	b.apply(cmd.Flags(), &cfg)

	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 33, cfg.Height)
	assert.Equal(t, "glider", cfg.Pattern)
	assert.False(t, cfg.Wrap)
	assert.Equal(t, "space", cfg.Theme)
}
