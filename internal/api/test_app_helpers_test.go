package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/catalog"
	"github.com/terraincognita07/fitnutri/internal/i18n"
	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/persistence"
	"github.com/terraincognita07/fitnutri/internal/services"
	"github.com/terraincognita07/fitnutri/internal/store"
)

const workoutReply = "Sure! ```json\n" + `{"workoutPlan":{"name":"Push Pull Legs","goal":"strength","level":"intermediate","frequency":"3","duration":"45",
"schedule":{"monday":{"focus":"Push","exercises":[{"name":"Bench Press","sets":4,"reps":"6-8","rest":120}]}}}}` + "\n```"

const nutritionReply = `{"nutritionPlan":{"name":"Lean Bulk","dailyCalories":2800,"macros":{"protein":180,"carbs":320,"fats":80},
"meals":[{"name":"Lunch","calories":900,"items":[{"food":"Rice","amount":"150g","calories":500}]}]}}`

const recipeReply = `{"recipe":{"name":"Egg Fried Rice","calories":480,"servings":1,
"ingredients":[{"name":"egg","amount":"2"}],"instructions":["Fry the rice."]}}`

type stubClient struct {
	mu      sync.Mutex
	name    string
	reply   string
	err     error
	prompts []string
}

func (stub *stubClient) Name() string {
	return stub.name
}

func (stub *stubClient) Generate(_ context.Context, prompt string) (string, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.prompts = append(stub.prompts, prompt)
	return stub.reply, stub.err
}

func (stub *stubClient) calls() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return len(stub.prompts)
}

type testAPI struct {
	app     *fiber.App
	store   *store.Store
	backend *persistence.MemoryBackend
	router  *ai.Router
	gemini  *stubClient
	openai  *stubClient
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	library, err := catalog.NewEmbeddedLibrary()
	if err != nil {
		t.Fatalf("NewEmbeddedLibrary() unexpected error: %v", err)
	}
	backend := persistence.NewMemoryBackend()
	gateway := persistence.NewGateway(backend, nil)
	appStore := store.New(store.Options{
		Middleware: []store.Middleware{store.Persist(gateway, nil)},
		Exercises:  library,
	})

	gemini := &stubClient{name: models.ProviderGemini, reply: workoutReply}
	openai := &stubClient{name: models.ProviderOpenAI, reply: workoutReply}
	prompts, err := ai.NewPromptBuilder()
	if err != nil {
		t.Fatalf("NewPromptBuilder() unexpected error: %v", err)
	}
	router, err := ai.NewRouter(prompts, models.ProviderGemini, nil, gemini, openai)
	if err != nil {
		t.Fatalf("NewRouter() unexpected error: %v", err)
	}
	manager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("NewEmbeddedManager() unexpected error: %v", err)
	}

	handler, err := NewHandler(Dependencies{
		Store:      appStore,
		Generation: services.NewGenerationService(router, nil, nil),
		Transfer:   services.NewTransferService(appStore, gateway, nil),
		Providers:  router,
		Exercises:  library,
		I18n:       manager,
	})
	if err != nil {
		t.Fatalf("NewHandler() unexpected error: %v", err)
	}

	return &testAPI{
		app:     NewApp(handler, AppOptions{}),
		store:   appStore,
		backend: backend,
		router:  router,
		gemini:  gemini,
		openai:  openai,
	}
}

func (testApp *testAPI) do(t *testing.T, method string, path string, body string, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := testApp.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(bytes), err)
	}
}

type apiErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Plan    string `json:"plan"`
	Reason  string `json:"reason"`
	RawText string `json:"rawText"`
}

func readAPIError(t *testing.T, response *http.Response) apiErrorBody {
	t.Helper()
	var payload apiErrorBody
	decodeResponse(t, response, &payload)
	return payload
}

func assertStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		bytes, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(bytes))
	}
}
