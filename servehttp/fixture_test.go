package servehttp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"lemonworks/adapter"
	"lemonworks/client/api"
	"lemonworks/event/sse"
	"lemonworks/inventory"
	"lemonworks/machinery"
	"lemonworks/production"
	"lemonworks/servehttp"
	"lemonworks/shell"
	"lemonworks/suppliers"
	"lemonworks/testinfra"
	"lemonworks/workers"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

const ordersJSON = `[
	{"id": 1, "client": "Acme", "quantity": 2, "dueDate": "2024-06-01", "priority": "high", "status": "pending"},
	{"id": 2, "client": "Globex", "quantity": 50, "dueDate": "2024-06-03", "priority": "low", "status": "in_progress"},
	{"id": 3, "client": "Initech", "quantity": 5, "dueDate": "2024-05-20", "priority": "medium", "status": "completed"}
]`

type fixture struct {
	backend *testinfra.FakeBackend
	router  *gin.Engine
	view    *production.View
	hub     *sse.Hub
	shell   *shell.Shell
}

// newFixture wires every feature against a fake remote backend. Routes must be scripted on
// backend before mount is called.
func newFixture(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)
	backend := testinfra.NewFakeBackend()
	t.Cleanup(backend.Close)

	backend.Reply(http.MethodGet, adapter.PathOrders, http.StatusOK, ordersJSON)
	backend.Reply(http.MethodGet, adapter.PathCurrentProduction, http.StatusOK,
		`{"inventory": 40, "currentOrder": null, "isProducing": false, "producedAmount": 0,
		  "metrics": {"dailyProduction": 0, "efficiency": 0, "averageTime": 0}}`)
	backend.Reply(http.MethodGet, adapter.PathMetrics, http.StatusOK, `{"dailyProduction": 120, "efficiency": 93.5, "averageTime": 2.4}`)

	client := api.New(backend.URL(), api.WithTimeout(2*time.Second))
	productionAPI := adapter.NewProductionAdapter(client)
	view := production.NewView(production.NewStore(productionAPI), productionAPI,
		production.ViewOptions{TickInterval: time.Millisecond})
	t.Cleanup(view.Unmount)

	f := &fixture{backend: backend, router: servehttp.NewEngine(), view: view, hub: sse.NewHub(), shell: shell.New()}
	servehttp.RegisterProductionHandler(f.router, view, f.hub)
	servehttp.RegisterInventoryHandler(f.router, inventory.NewManager(adapter.NewInventoryAdapter(client), time.Minute))
	servehttp.RegisterSuppliersHandler(f.router, suppliers.NewManager(adapter.NewSuppliersAdapter(client), time.Minute))
	servehttp.RegisterWorkersHandler(f.router, workers.NewManager(adapter.NewWorkersAdapter(client)))
	servehttp.RegisterMachineryHandler(f.router, machinery.NewManager(adapter.NewMachineryAdapter(client), time.Minute))
	servehttp.RegisterShellHandler(f.router, f.shell)
	return f
}

func (f *fixture) mount() {
	Expect(f.view.Mount(context.Background())).To(Succeed())
}

func decodeView(body string) production.ViewModel {
	vm := production.ViewModel{}
	Expect(json.Unmarshal([]byte(body), &vm)).To(Succeed())
	return vm
}
