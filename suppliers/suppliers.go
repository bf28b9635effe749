package suppliers

import (
	"context"
	"sort"
	"time"

	"lemonworks/domain"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const listKey = "suppliers"

type Backend interface {
	Suppliers(ctx context.Context) ([]domain.Supplier, error)
}

// Listing is a supplier card: the supplier with its catalogue size and value.
type Listing struct {
	domain.Supplier
	IngredientCount int             `json:"ingredientCount"`
	CatalogueValue  decimal.Decimal `json:"catalogueValue"`
}

type Manager struct {
	backend Backend
	cache   *cache.Cache
}

func NewManager(backend Backend, ttl time.Duration) *Manager {
	return &Manager{backend: backend, cache: cache.New(ttl, 2*ttl)}
}

func (m *Manager) List(ctx context.Context) ([]Listing, error) {
	if cached, found := m.cache.Get(listKey); found {
		return cached.([]Listing), nil
	}
	suppliers, err := m.backend.Suppliers(ctx)
	if err != nil {
		logrus.WithError(err).Error("error loading suppliers")
		return nil, err
	}
	listings := make([]Listing, 0, len(suppliers))
	for i := range suppliers {
		s := suppliers[i]
		if s.Ingredients == nil {
			s.Ingredients = []domain.SupplierIngredient{}
		}
		listings = append(listings, Listing{Supplier: s, IngredientCount: len(s.Ingredients), CatalogueValue: s.CatalogueValue()})
	}
	m.cache.SetDefault(listKey, listings)
	return listings, nil
}

// Offers lists the suppliers selling the given ingredient, cheapest first.
func (m *Manager) Offers(ctx context.Context, ingredientID int) ([]Offer, error) {
	listings, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	offers := []Offer{}
	for _, l := range listings {
		for _, ing := range l.Ingredients {
			if ing.IngredientID == ingredientID {
				offers = append(offers, Offer{SupplierID: l.ID, SupplierName: l.Name, Contact: l.Contact,
					Quantity: ing.Quantity, Price: ing.Price})
			}
		}
	}
	sortOffers(offers)
	return offers, nil
}

func (m *Manager) Invalidate() {
	m.cache.Delete(listKey)
}

type Offer struct {
	SupplierID   int             `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	Contact      string          `json:"contact"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

func sortOffers(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price.LessThan(offers[j].Price)
	})
}
