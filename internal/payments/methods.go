package payments

import (
	"errors"
	"fmt"
)

type Category string

const (
	CategoryQRIS           Category = "qris"
	CategoryVirtualAccount Category = "virtual_account"
	CategoryPayPal         Category = "paypal"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryQRIS, CategoryVirtualAccount, CategoryPayPal:
		return true
	}
	return false
}

type Method struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Category Category `json:"category"`
}

// DefaultMethods is the channel list offered by the storefront, in display order.
var DefaultMethods = []Method{
	{ID: "qris", Name: "QRIS", Icon: "qrcode", Category: CategoryQRIS},
	{ID: "bni_va", Name: "BNI Virtual Account", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "bri_va", Name: "BRI Virtual Account", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "cimb_niaga_va", Name: "CIMB Niaga VA", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "permata_va", Name: "Permata VA", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "maybank_va", Name: "Maybank VA", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "atm_bersama_va", Name: "ATM Bersama VA", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "artha_graha_va", Name: "Artha Graha VA", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "bnc_va", Name: "BNC VA", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "sampoerna_va", Name: "Sampoerna VA", Icon: "building-columns", Category: CategoryVirtualAccount},
	{ID: "paypal", Name: "PayPal", Icon: "paypal", Category: CategoryPayPal},
}

var ErrUnknownMethod = errors.New("unknown payment method")

// Catalog is an immutable, ordered set of payment methods keyed by id.
type Catalog struct {
	methods []Method
	byID    map[string]Method
}

func NewCatalog(methods []Method) (*Catalog, error) {
	if len(methods) == 0 {
		return nil, errors.New("catalog needs at least one method")
	}

	c := &Catalog{
		methods: make([]Method, 0, len(methods)),
		byID:    make(map[string]Method, len(methods)),
	}
	for _, m := range methods {
		if m.ID == "" {
			return nil, errors.New("method id is empty")
		}
		if !m.Category.Valid() {
			return nil, fmt.Errorf("method %s: invalid category %q", m.ID, m.Category)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("method %s: duplicate id", m.ID)
		}
		c.byID[m.ID] = m
		c.methods = append(c.methods, m)
	}
	return c, nil
}

// DefaultCatalog builds the catalog from DefaultMethods.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultMethods)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(id string) (Method, error) {
	m, ok := c.byID[id]
	if !ok {
		return Method{}, fmt.Errorf("%w: %s", ErrUnknownMethod, id)
	}
	return m, nil
}

// Methods returns a copy of the methods in display order.
func (c *Catalog) Methods() []Method {
	out := make([]Method, len(c.methods))
	copy(out, c.methods)
	return out
}

// Default is the first QRIS method, or the first method when there is none.
func (c *Catalog) Default() Method {
	for _, m := range c.methods {
		if m.Category == CategoryQRIS {
			return m
		}
	}
	return c.methods[0]
}
