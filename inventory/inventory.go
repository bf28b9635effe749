package inventory

import (
	"context"
	"time"

	"lemonworks/client/api"
	"lemonworks/common"
	"lemonworks/domain"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

const (
	DefaultQuantity = 500
	DefaultUnit     = "unidades"
	DefaultMin      = 10
	UnknownSupplier = "Proveedor Desconocido"

	// spare room added on top of the new stock when a purchase raises the capacity
	CapacityMargin = 10

	itemsKey = "items"
)

var PricePerLot = decimal.NewFromInt(100)

type Backend interface {
	Products(ctx context.Context) ([]domain.RemoteItem, error)
	Ingredients(ctx context.Context) ([]domain.RemoteItem, error)
	UpdateIngredient(ctx context.Context, id domain.ID, update domain.IngredientUpdate) error
	RegisterPurchase(ctx context.Context, purchase domain.PurchaseRegistration) error
	RequestProductBatch(ctx context.Context, productID, quantity int) error
}

// Listing is an inventory item as rendered, with its stock level.
type Listing struct {
	domain.InventoryItem
	Status domain.StockStatus `json:"status"`
}

type PurchaseOrderRequest struct {
	ItemID domain.ID `json:"itemId" binding:"required" validate:"required"`
	Lots   int       `json:"lots" validate:"gt=0"`
}

type PurchaseOrder struct {
	Reference      string          `json:"reference"`
	ItemID         domain.ID       `json:"itemId"`
	Name           string          `json:"name"`
	Lots           int             `json:"lots"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	Supplier       string          `json:"supplier"`
	AvailableUnits int             `json:"availableUnits"`
	MaxCapacity    int             `json:"maxCapacity"`
}

type BatchRequest struct {
	ProductID int `json:"productId" validate:"gt=0"`
	Quantity  int `json:"quantity" validate:"gt=0"`
}

type Manager struct {
	backend   Backend
	cache     *cache.Cache
	validator *validator.Validate
	idWorker  *sonyflake.Sonyflake
}

func NewManager(backend Backend, ttl time.Duration) *Manager {
	return &Manager{
		backend:   backend,
		cache:     cache.New(ttl, 2*ttl),
		validator: validator.New(),
		idWorker:  common.NewIdWorker(1),
	}
}

// Load lists products followed by ingredients. The combined list is cached until a purchase
// changes it or the TTL expires.
func (m *Manager) Load(ctx context.Context) ([]domain.InventoryItem, error) {
	if cached, found := m.cache.Get(itemsKey); found {
		return cached.([]domain.InventoryItem), nil
	}

	products, err := m.backend.Products(ctx)
	if err != nil {
		logrus.WithError(err).Error("error loading products")
		return nil, err
	}
	ingredients, err := m.backend.Ingredients(ctx)
	if err != nil {
		logrus.WithError(err).Error("error loading ingredients")
		return nil, err
	}

	items := make([]domain.InventoryItem, 0, len(products)+len(ingredients))
	for _, p := range products {
		items = append(items, mapItem(p, domain.ItemProduct))
	}
	for _, i := range ingredients {
		items = append(items, mapItem(i, domain.ItemRaw))
	}
	m.cache.SetDefault(itemsKey, items)
	return items, nil
}

// Items lists the items of one type, all of them when itemType is empty.
func (m *Manager) Items(ctx context.Context, itemType string) ([]Listing, error) {
	var want domain.ItemType
	if itemType != "" {
		t, ok := domain.ParseItemType(itemType)
		if !ok {
			return nil, api.Invalid(domain.ErrUnknownItemType)
		}
		want = t
	}

	items, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	listings := []Listing{}
	for i := range items {
		if want != "" && items[i].Type != want {
			continue
		}
		listings = append(listings, Listing{InventoryItem: items[i], Status: items[i].StockStatus()})
	}
	return listings, nil
}

func (m *Manager) Invalidate() {
	m.cache.Delete(itemsKey)
}

// CreatePurchaseOrder buys lots of an item: the purchase is registered, then the ingredient is
// updated with the new stock and a capacity just above it.
func (m *Manager) CreatePurchaseOrder(ctx context.Context, req PurchaseOrderRequest) (*PurchaseOrder, error) {
	if err := m.validator.Struct(req); err != nil {
		logrus.WithError(err).Debug("purchase order rejected")
		if req.Lots <= 0 {
			return nil, api.Invalid(domain.ErrInvalidQuantity)
		}
		return nil, api.Invalid(err)
	}

	item, err := m.find(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	order := &PurchaseOrder{
		Reference:      "PO-" + common.NextId(m.idWorker).String(),
		ItemID:         item.ID,
		Name:           item.Name,
		Lots:           req.Lots,
		UnitPrice:      PricePerLot,
		TotalCost:      PricePerLot.Mul(decimal.NewFromInt(int64(req.Lots))),
		Supplier:       item.Supplier,
		AvailableUnits: item.Quantity + req.Lots,
		MaxCapacity:    item.Quantity + req.Lots + CapacityMargin,
	}

	err = m.backend.RegisterPurchase(ctx, domain.PurchaseRegistration{
		Reference:    order.Reference,
		IngredientID: order.ItemID,
		Name:         order.Name,
		Lots:         order.Lots,
		UnitPrice:    order.UnitPrice,
		TotalCost:    order.TotalCost,
		Supplier:     order.Supplier,
	})
	if err != nil {
		logrus.WithError(err).WithField("reference", order.Reference).Error("error registering purchase")
		return nil, err
	}

	kind := item.Kind
	if kind == "" {
		kind = string(item.Type)
	}
	err = m.backend.UpdateIngredient(ctx, item.ID, domain.IngredientUpdate{
		Name:           item.Name,
		Code:           item.ID.String(),
		AvailableUnits: order.AvailableUnits,
		MaxCapacity:    order.MaxCapacity,
		Type:           kind,
	})
	if err != nil {
		logrus.WithError(err).WithField("reference", order.Reference).Error("error updating ingredient stock")
		return nil, err
	}

	m.Invalidate()
	logrus.WithField("reference", order.Reference).WithField("total", order.TotalCost.String()).Info("purchase order created")
	return order, nil
}

// RequestBatch asks the server to produce quantity units of a product.
func (m *Manager) RequestBatch(ctx context.Context, req BatchRequest) error {
	if err := m.validator.Struct(req); err != nil {
		logrus.WithError(err).Debug("batch request rejected")
		return api.Invalid(domain.ErrInvalidQuantity)
	}
	if err := m.backend.RequestProductBatch(ctx, req.ProductID, req.Quantity); err != nil {
		logrus.WithError(err).Error("error requesting product batch")
		return err
	}
	m.Invalidate()
	return nil
}

func (m *Manager) find(ctx context.Context, id domain.ID) (*domain.InventoryItem, error) {
	items, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, api.Invalid(domain.ErrNotFound)
}

func mapItem(remote domain.RemoteItem, itemType domain.ItemType) domain.InventoryItem {
	quantity := DefaultQuantity
	if remote.AvailableUnits != nil && *remote.AvailableUnits != 0 {
		quantity = *remote.AvailableUnits
	}
	return domain.InventoryItem{
		ID:             remote.ID,
		Name:           remote.Name,
		Quantity:       quantity,
		Unit:           DefaultUnit,
		Min:            DefaultMin,
		Supplier:       UnknownSupplier,
		Type:           itemType,
		Kind:           remote.Type,
		AvailableUnits: remote.AvailableUnits,
	}
}
