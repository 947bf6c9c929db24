package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/config"
	"github.com/terraincognita07/fitnutri/internal/models"
)

const workoutReply = `{"workoutPlan":{"name":"Full Body Basics","goal":"strength","level":"beginner","frequency":"3","duration":"45",
"schedule":{"monday":{"focus":"Full body","exercises":[{"name":"Goblet Squat","sets":3,"reps":"10","rest":90}]}}}}`

type stubClient struct {
	mu    sync.Mutex
	name  string
	reply string
	calls int
}

func (stub *stubClient) Name() string {
	return stub.name
}

func (stub *stubClient) Generate(context.Context, string) (string, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.calls++
	return stub.reply, nil
}

type stubProviders struct {
	gemini *stubClient
	openai *stubClient
}

func newStubProviders(reply string) *stubProviders {
	return &stubProviders{
		gemini: &stubClient{name: models.ProviderGemini, reply: reply},
		openai: &stubClient{name: models.ProviderOpenAI, reply: reply},
	}
}

func (providers *stubProviders) factory(context.Context, config.Config) ([]ai.Client, error) {
	return []ai.Client{providers.gemini, providers.openai}, nil
}

type commandResult struct {
	stdout string
	stderr string
	env    *commandEnv
}

// runCommand executes the root command in an isolated working directory so
// no local .env or fitnutri.yaml leaks into the test.
func runCommand(t *testing.T, providers *stubProviders, stdin string, args ...string) (commandResult, error) {
	t.Helper()

	env := &commandEnv{viper: config.New(), clients: providers.factory, logOutput: io.Discard}
	root := newRootCommand(env)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return commandResult{stdout: stdout.String(), stderr: stderr.String(), env: env}, err
}

func testDatabasePath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return filepath.Join(dir, "fitnutri.db")
}
