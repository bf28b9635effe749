package adapter_test

import (
	"context"
	"net/http"
	"testing"

	"lemonworks/adapter"
	"lemonworks/client/api"
	"lemonworks/domain"
	"lemonworks/testinfra"

	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestProductionAdapter(t *testing.T) {
	RegisterTestingT(t)

	backend := testinfra.NewFakeBackend()
	defer backend.Close()
	a := adapter.NewProductionAdapter(api.New(backend.URL()))
	ctx := context.Background()

	t.Run("should list orders from an array or an envelope", func(t *testing.T) {
		backend.Reply(http.MethodGet, adapter.PathOrders, http.StatusOK,
			`[{"id":"o1","client":"Kiosk","quantity":3,"dueDate":"2026-10-20","priority":"high","status":"pending"}]`)
		orders, err := a.Orders(ctx)
		Expect(err).To(BeNil())
		Expect(orders).To(Equal([]domain.Order{{ID: "o1", Client: "Kiosk", Quantity: 3, DueDate: "2026-10-20",
			Priority: domain.PriorityHigh, Status: domain.OrderPending}}))

		backend.Reply(http.MethodGet, adapter.PathOrders, http.StatusOK, `{"orders":[{"id":7,"quantity":1}]}`)
		orders, err = a.Orders(ctx)
		Expect(err).To(BeNil())
		Expect(orders).To(Equal([]domain.Order{{ID: "7", Quantity: 1}}))

		backend.Reply(http.MethodGet, adapter.PathOrders, http.StatusOK, `null`)
		orders, err = a.Orders(ctx)
		Expect(err).To(BeNil())
		Expect(orders).To(BeEmpty())
	})

	t.Run("should fetch the current production state", func(t *testing.T) {
		backend.Reply(http.MethodGet, adapter.PathCurrentProduction, http.StatusOK, `{"inventory":12,
			"currentOrder":{"id":"o1","quantity":3},"isProducing":true,"producedAmount":1,
			"metrics":{"dailyProduction":40,"efficiency":92.5,"averageTime":1.5}}`)
		s, err := a.CurrentProduction(ctx)
		Expect(err).To(BeNil())
		Expect(*s).To(Equal(domain.ProductionState{Inventory: 12, CurrentOrder: &domain.Order{ID: "o1", Quantity: 3},
			IsProducing: true, ProducedAmount: 1,
			Metrics: domain.ProductionMetrics{DailyProduction: 40, Efficiency: 92.5, AverageTime: 1.5}}))
	})

	t.Run("should post start and stop", func(t *testing.T) {
		backend.Reply(http.MethodPost, adapter.PathStartProduction, http.StatusOK, `{}`)
		backend.Reply(http.MethodPost, adapter.PathStopProduction, http.StatusOK, ``)
		Expect(a.StartProduction(ctx, "o1")).To(Succeed())
		Expect(a.StopProduction(ctx)).To(Succeed())

		var startBody string
		for _, r := range backend.Requests() {
			if r.Path == adapter.PathStartProduction {
				startBody = r.Body
			}
		}
		Expect(startBody).To(MatchJSON(`{"orderId":"o1"}`))
	})

	t.Run("should read the authoritative inventory in any supported shape", func(t *testing.T) {
		for body, want := range map[string]int{`15`: 15, `{"inventory":16}`: 16, `{"amount":17}`: 17} {
			backend.Reply(http.MethodPost, adapter.PathInventoryUpdate, http.StatusOK, body)
			n, err := a.UpdateInventory(ctx, 99)
			Expect(err).To(BeNil())
			Expect(n).To(Equal(want))
		}

		backend.Reply(http.MethodPost, adapter.PathInventoryUpdate, http.StatusOK, `{"ok":true}`)
		_, err := a.UpdateInventory(ctx, 99)
		Expect(api.IsKind(err, api.KindServer)).To(BeTrue())
	})

	t.Run("should fetch metrics", func(t *testing.T) {
		backend.Reply(http.MethodGet, adapter.PathMetrics, http.StatusOK, `{"dailyProduction":5,"efficiency":80,"averageTime":2}`)
		m, err := a.Metrics(ctx)
		Expect(err).To(BeNil())
		Expect(*m).To(Equal(domain.ProductionMetrics{DailyProduction: 5, Efficiency: 80, AverageTime: 2}))
	})
}

func TestInventoryAdapter(t *testing.T) {
	RegisterTestingT(t)

	backend := testinfra.NewFakeBackend()
	defer backend.Close()
	a := adapter.NewInventoryAdapter(api.New(backend.URL()))
	ctx := context.Background()

	backend.Reply(http.MethodGet, adapter.PathProducts, http.StatusOK, `{"products":[{"id":1,"name":"Limonada","available_units":40}]}`)
	backend.Reply(http.MethodGet, adapter.PathIngredients, http.StatusOK, `{"ingredients":[{"id":2,"name":"Limón"}]}`)
	backend.Reply(http.MethodPut, adapter.PathIngredients+"/2", http.StatusOK, `{}`)
	backend.Reply(http.MethodPost, adapter.PathIngredientPurchase, http.StatusCreated, `{}`)
	backend.Reply(http.MethodPost, adapter.PathProductBatch, http.StatusOK, `{}`)

	products, err := a.Products(ctx)
	Expect(err).To(BeNil())
	Expect(products).To(HaveLen(1))
	Expect(*products[0].AvailableUnits).To(Equal(40))

	ingredients, err := a.Ingredients(ctx)
	Expect(err).To(BeNil())
	Expect(ingredients[0].ID).To(Equal(domain.ID("2")))
	Expect(ingredients[0].AvailableUnits).To(BeNil())

	Expect(a.UpdateIngredient(ctx, "2", domain.IngredientUpdate{Name: "Limón", Code: "2", AvailableUnits: 12, MaxCapacity: 22})).To(Succeed())
	Expect(a.RegisterPurchase(ctx, domain.PurchaseRegistration{Reference: "r1", IngredientID: "2", Lots: 2,
		UnitPrice: decimal.NewFromInt(100), TotalCost: decimal.NewFromInt(200)})).To(Succeed())
	Expect(a.RequestProductBatch(ctx, 1, 30)).To(Succeed())

	reqs := backend.Requests()
	Expect(reqs[2].Body).To(MatchJSON(`{"name":"Limón","code":"2","available_units":12,"max_capacity":22,"type":""}`))
	Expect(reqs[3].Body).To(MatchJSON(`{"reference":"r1","ingredient_id":"2","name":"","quantity":2,"unit_price":"100","total_cost":"200"}`))
	Expect(reqs[4].RawQuery).To(Equal("product_id=1&quantity=30"))
}

func TestWorkersAdapter(t *testing.T) {
	RegisterTestingT(t)

	backend := testinfra.NewFakeBackend()
	defer backend.Close()
	a := adapter.NewWorkersAdapter(api.New(backend.URL()))
	ctx := context.Background()

	backend.Reply(http.MethodGet, adapter.PathWorkers, http.StatusOK, `[{"id":"w1","name":"Ana","position":"operator","isActive":true}]`)
	backend.Reply(http.MethodGet, adapter.PathWorkers+"/w1", http.StatusOK, `{"id":"w1","name":"Ana","position":"operator","isActive":true}`)
	backend.Reply(http.MethodPost, adapter.PathWorkers, http.StatusCreated, `{"id":"w2","name":"Luis","position":"driver","isActive":false}`)
	backend.Reply(http.MethodPut, adapter.PathWorkers+"/w2", http.StatusOK, `{"id":"w2","name":"Luis","position":"driver","isActive":true}`)
	backend.Reply(http.MethodDelete, adapter.PathWorkers+"/w2", http.StatusNoContent, ``)

	workers, err := a.Workers(ctx)
	Expect(err).To(BeNil())
	Expect(workers).To(Equal([]domain.Worker{{ID: "w1", Name: "Ana", Position: "operator", IsActive: true}}))

	w, err := a.Worker(ctx, "w1")
	Expect(err).To(BeNil())
	Expect(w.Name).To(Equal("Ana"))

	w, err = a.CreateWorker(ctx, domain.WorkerCreation{Name: "Luis", Position: "driver"})
	Expect(err).To(BeNil())
	Expect(w.ID).To(Equal(domain.ID("w2")))

	active := true
	w, err = a.UpdateWorker(ctx, "w2", domain.WorkerPatch{IsActive: &active})
	Expect(err).To(BeNil())
	Expect(w.IsActive).To(BeTrue())

	Expect(a.DeleteWorker(ctx, "w2")).To(Succeed())

	backend.Reply(http.MethodGet, adapter.PathWorkers+"/w9", http.StatusNotFound, `{"message":"worker w9 not found"}`)
	_, err = a.Worker(ctx, "w9")
	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("worker w9 not found"))
}

func TestSuppliersAndMachineryAdapters(t *testing.T) {
	RegisterTestingT(t)

	backend := testinfra.NewFakeBackend()
	defer backend.Close()
	client := api.New(backend.URL())
	ctx := context.Background()

	backend.Reply(http.MethodGet, adapter.PathSuppliers, http.StatusOK,
		`[{"id":1,"name":"Citrus SA","contact":"ventas@citrus","ingredients":[{"ingredient_id":3,"ingredient_name":"Limón","quantity":100,"price":0.5}]}]`)
	backend.Reply(http.MethodGet, adapter.PathProductionLines, http.StatusOK,
		`[{"id":1,"liquid_capacity":800,"solid_capacity":200,"production_factor":1.2,"workers":[{"id":4,"name":"Ana","uid":"A-4","fk_production_line":1}]}]`)
	backend.Reply(http.MethodGet, adapter.PathMachines+"/1/workers", http.StatusOK, `[{"id":4,"name":"Ana","uid":"A-4","fk_production_line":1}]`)

	suppliers, err := adapter.NewSuppliersAdapter(client).Suppliers(ctx)
	Expect(err).To(BeNil())
	Expect(suppliers[0].Ingredients[0].Price.String()).To(Equal("0.5"))

	m := adapter.NewMachineryAdapter(client)
	lines, err := m.ProductionLines(ctx)
	Expect(err).To(BeNil())
	Expect(lines[0].Workers[0].UID).To(Equal("A-4"))

	workers, err := m.WorkersByMachine(ctx, 1)
	Expect(err).To(BeNil())
	Expect(workers).To(HaveLen(1))
}
