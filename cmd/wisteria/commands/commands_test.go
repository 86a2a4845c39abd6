package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khyonie/Wisteria/cmd/wisteria/commands"
	"github.com/Khyonie/Wisteria/internal/build"
)

// mockApp records the last invocation per operation.
type mockApp struct {
	createDir, createName string
	createMinimal         bool

	switchDir, switchConfiguration string
	refreshDir                     string
	updateDir, updateName          string
	buildDir, buildConfiguration   string

	buildTargets []string
	infoSummary  string
	err          error
}

func (m *mockApp) Create(dir, name string, minimal bool) (string, error) {
	m.createDir, m.createName, m.createMinimal = dir, name, minimal
	return dir + "/" + name, m.err
}

func (m *mockApp) Switch(_ context.Context, dir, configuration string) error {
	m.switchDir, m.switchConfiguration = dir, configuration
	return m.err
}

func (m *mockApp) Refresh(_ context.Context, dir string) error {
	m.refreshDir = dir
	return m.err
}

func (m *mockApp) Update(_ context.Context, dir, name string) error {
	m.updateDir, m.updateName = dir, name
	return m.err
}

func (m *mockApp) Build(_ context.Context, dir, configuration string) ([]string, error) {
	m.buildDir, m.buildConfiguration = dir, configuration
	return m.buildTargets, m.err
}

func (m *mockApp) Info(dir string) (string, error) {
	return m.infoSummary, m.err
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()

	cli := commands.New(mock, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Create(t *testing.T) {
	mock := &mockApp{}

	out, err := execute(t, mock, "create", "demo", "--minimal")
	require.NoError(t, err)
	assert.Equal(t, ".", mock.createDir)
	assert.Equal(t, "demo", mock.createName)
	assert.True(t, mock.createMinimal)
	assert.Contains(t, out, "demo")
}

func TestCommands_SwitchHonorsProjectFlag(t *testing.T) {
	mock := &mockApp{}

	_, err := execute(t, mock, "--project", "/tmp/elsewhere", "switch", "release")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", mock.switchDir)
	assert.Equal(t, "release", mock.switchConfiguration)
}

func TestCommands_Refresh(t *testing.T) {
	mock := &mockApp{}

	_, err := execute(t, mock, "refresh")
	require.NoError(t, err)
	assert.Equal(t, ".", mock.refreshDir)
}

func TestCommands_Update(t *testing.T) {
	t.Run("named dependency", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "update", "gson")
		require.NoError(t, err)
		assert.Equal(t, "gson", mock.updateName)
	})

	t.Run("no argument updates everything", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "update")
		require.NoError(t, err)
		assert.Empty(t, mock.updateName)
	})
}

func TestCommands_BuildPrintsTargets(t *testing.T) {
	mock := &mockApp{buildTargets: []string{"targets/main/demo-1.0.0.jar"}}

	out, err := execute(t, mock, "build", "main")
	require.NoError(t, err)
	assert.Equal(t, "main", mock.buildConfiguration)
	assert.Contains(t, out, "targets/main/demo-1.0.0.jar")
}

func TestCommands_BuildDefaultsConfiguration(t *testing.T) {
	mock := &mockApp{}

	_, err := execute(t, mock, "build")
	require.NoError(t, err)
	assert.Empty(t, mock.buildConfiguration)
}

func TestCommands_ErrorsPropagate(t *testing.T) {
	mock := &mockApp{err: errors.New("simulated failure")}

	_, err := execute(t, mock, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated failure")
}

func TestCommands_Info(t *testing.T) {
	mock := &mockApp{infoSummary: "demo 1.0.0\n"}

	out, err := execute(t, mock, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "demo 1.0.0")
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}

	out, err := execute(t, mock, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
