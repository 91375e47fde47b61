package checkout

import (
	"sync"
	"time"

	"loja-rosa/internal/model"

	"github.com/google/uuid"
)

// Catalog holds the already-loaded address, delivery method and payment
// method lists a checkout session chooses from. The core performs no I/O to
// obtain them; callers load them however they like.
type Catalog struct {
	mu              sync.RWMutex
	addresses       []model.Address
	deliveryMethods []model.DeliveryMethod
	paymentMethods  []model.PaymentMethod
}

// NewCatalog creates a catalog from pre-loaded lists.
func NewCatalog(addresses []model.Address, deliveryMethods []model.DeliveryMethod, paymentMethods []model.PaymentMethod) *Catalog {
	return &Catalog{
		addresses:       append([]model.Address(nil), addresses...),
		deliveryMethods: append([]model.DeliveryMethod(nil), deliveryMethods...),
		paymentMethods:  append([]model.PaymentMethod(nil), paymentMethods...),
	}
}

// DefaultDeliveryMethods returns the fixed three-entry delivery catalogue.
func DefaultDeliveryMethods() []model.DeliveryMethod {
	return []model.DeliveryMethod{
		{ID: "standard", Name: "Entrega Standard", Description: "3-5 dias úteis", EstimatedDays: "3-5 dias", Cost: 2.00},
		{ID: "express", Name: "Entrega Expressa", Description: "1-2 dias úteis", EstimatedDays: "1-2 dias", Cost: 5.99},
		{ID: "pickup", Name: "Levantamento em Loja", Description: "Grátis", EstimatedDays: "2-3 dias", Cost: 0},
	}
}

// DefaultPaymentMethods returns the fixed payment method catalogue.
func DefaultPaymentMethods() []model.PaymentMethod {
	return []model.PaymentMethod{
		{ID: "card", Name: "Cartão de Crédito", Description: "Visa, Mastercard, Amex"},
		{ID: "bank", Name: "Transferência Bancária", Description: "Transferência direta"},
		{ID: "paypal", Name: "PayPal", Description: "Pagamento seguro via PayPal"},
	}
}

// Addresses returns a copy of the address list.
func (c *Catalog) Addresses() []model.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Address(nil), c.addresses...)
}

// DeliveryMethods returns a copy of the delivery method list.
func (c *Catalog) DeliveryMethods() []model.DeliveryMethod {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.DeliveryMethod(nil), c.deliveryMethods...)
}

// PaymentMethods returns a copy of the payment method list.
func (c *Catalog) PaymentMethods() []model.PaymentMethod {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.PaymentMethod(nil), c.paymentMethods...)
}

// AddressByID returns the address with the given id.
func (c *Catalog) AddressByID(id string) (model.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.addresses {
		if a.ID == id {
			return a, true
		}
	}
	return model.Address{}, false
}

// DeliveryMethodByID returns the delivery method with the given id.
func (c *Catalog) DeliveryMethodByID(id string) (model.DeliveryMethod, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.deliveryMethods {
		if m.ID == id {
			return m, true
		}
	}
	return model.DeliveryMethod{}, false
}

// PaymentMethodByID returns the payment method with the given id.
func (c *Catalog) PaymentMethodByID(id string) (model.PaymentMethod, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return model.PaymentMethod{}, false
}

// DefaultAddress returns the address marked as default, or the first address
// when none is marked.
func (c *Catalog) DefaultAddress() (model.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.addresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(c.addresses) > 0 {
		return c.addresses[0], true
	}
	return model.Address{}, false
}

// AddAddress appends a new address, assigning it an id and creation time.
// When the new address is marked default, the previous default is cleared so
// at most one address is default at a time.
func (c *Catalog) AddAddress(address model.Address) model.Address {
	c.mu.Lock()
	defer c.mu.Unlock()

	address.ID = uuid.NewString()
	address.CreatedAt = time.Now()

	if address.IsDefault {
		for i := range c.addresses {
			c.addresses[i].IsDefault = false
		}
	}
	c.addresses = append(c.addresses, address)

	return address
}

// RemoveAddress deletes the address with the given id.
func (c *Catalog) RemoveAddress(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.addresses {
		if a.ID == id {
			c.addresses = append(c.addresses[:i], c.addresses[i+1:]...)
			return true
		}
	}
	return false
}

// SetDefaultAddress marks the address with the given id as default and clears
// the flag on every other address.
func (c *Catalog) SetDefaultAddress(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for _, a := range c.addresses {
		if a.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for i := range c.addresses {
		c.addresses[i].IsDefault = c.addresses[i].ID == id
	}
	return true
}
