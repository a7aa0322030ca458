// Package checkout drives the address → payment → submission flow and the
// post-redirect payment verification.
package checkout

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
	"github.com/Rotimanchase/byc-storefront/internal/store"
)

// DeliveryFee is the fixed per-order fee in currency units. It is a
// client-side constant today; whether it should be server-authoritative is
// an open stakeholder question.
const DeliveryFee = 2800

type State string

const (
	StateCollectingAddress State = "collecting_address"
	StateAddressSelected   State = "address_selected"
	StatePaymentChosen     State = "payment_chosen"
	StateSubmitting        State = "submitting"
	StateRedirected        State = "redirected"
	StateConfirmed         State = "confirmed"
	StateFailed            State = "failed"
)

var (
	ErrSubmitInFlight    = errors.New("order submission already in progress")
	ErrNoPaymentMethod   = errors.New("please select a payment method")
	ErrEmptyCart         = errors.New("no items in cart")
	ErrIncompleteAddress = errors.New("please provide a complete shipping address")
)

// AddressError lists the required fields still missing from the form.
type AddressError struct {
	Missing []string
}

func (e *AddressError) Error() string {
	return "please fill in all required fields: " + strings.Join(e.Missing, ", ")
}

// Result is the outcome of a submission. Exactly one of Order (bank
// transfer) or RedirectURL (online payment) is set on success.
type Result struct {
	Order       *models.Order
	RedirectURL string
}

type Checkout struct {
	mu sync.Mutex

	api      *api.API
	store    *store.Store
	kv       storage.Store
	log      *logrus.Logger
	validate *validator.Validate

	state      State
	addresses  []models.Address
	selectedID string
	form       models.Address
	payment    models.PaymentType
	submitting bool
}

func New(a *api.API, st *store.Store, kv storage.Store, log *logrus.Logger) *Checkout {
	return &Checkout{
		api:      a,
		store:    st,
		kv:       kv,
		log:      log,
		validate: validator.New(),
		state:    StateCollectingAddress,
	}
}

func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checkout) Addresses() []models.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Address, len(c.addresses))
	copy(out, c.addresses)
	return out
}

// FetchAddresses refreshes the saved-address list for the signed-in user.
func (c *Checkout) FetchAddresses(ctx context.Context) ([]models.Address, error) {
	user := c.store.User()
	if user == nil {
		return nil, store.ErrNotLoggedIn
	}
	addresses, err := c.api.ListAddresses(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.addresses = addresses
	c.mu.Unlock()
	return addresses, nil
}

// SaveAddress validates the form, persists it, refreshes the saved list and
// selects the new address. Submission stays blocked until every required
// field is present.
func (c *Checkout) SaveAddress(ctx context.Context, form models.Address) (*models.Address, error) {
	user := c.store.User()
	if user == nil {
		return nil, store.ErrNotLoggedIn
	}

	if missing := missingFields(c.validate, form); len(missing) > 0 {
		return nil, &AddressError{Missing: missing}
	}

	form.UserID = user.ID
	saved, err := c.api.CreateAddress(ctx, form)
	if err != nil {
		return nil, err
	}

	if _, err := c.FetchAddresses(ctx); err != nil {
		c.log.WithError(err).Warn("failed to refresh addresses after save")
	}

	c.mu.Lock()
	c.selectedID = saved.ID
	c.form = models.Address{}
	if c.state == StateCollectingAddress {
		c.state = StateAddressSelected
	}
	c.mu.Unlock()
	return saved, nil
}

// SelectAddress picks a previously saved address by id.
func (c *Checkout) SelectAddress(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, addr := range c.addresses {
		if addr.ID == id {
			c.selectedID = id
			if c.state == StateCollectingAddress {
				c.state = StateAddressSelected
			}
			return nil
		}
	}
	return errors.New("no saved address with that id")
}

// SetForm keeps an unsaved form as the fallback address source, mirroring
// the original's "submit with the filled form" path.
func (c *Checkout) SetForm(form models.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

// ChoosePayment accepts exactly the two supported methods.
func (c *Checkout) ChoosePayment(method models.PaymentType) error {
	if method != models.PaymentBankTransfer && method != models.PaymentOnline {
		return ErrNoPaymentMethod
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payment = method
	if c.state == StateAddressSelected || c.state == StateCollectingAddress {
		c.state = StatePaymentChosen
	}
	return nil
}

// Subtotal sums price×quantity over cart lines with valid numeric price and
// quantity. Invalid lines are skipped and logged, never counted as zero.
func (c *Checkout) Subtotal(items []models.CartItem) float64 {
	var sum float64
	for _, item := range items {
		if !item.Product.Price.Valid || !item.Quantity.Valid {
			c.log.WithFields(logrus.Fields{
				"product_id": item.Product.ID,
				"price_ok":   item.Product.Price.Valid,
				"qty_ok":     item.Quantity.Valid,
			}).Warn("skipping cart line with invalid price or quantity")
			continue
		}
		sum += item.Product.Price.Float * item.Quantity.Float
	}
	return sum
}

// Total is subtotal plus the fixed delivery fee.
func (c *Checkout) Total(items []models.CartItem) float64 {
	return c.Subtotal(items) + DeliveryFee
}

// Submit places the order. At most one submission can be in flight; bank
// transfers clear the cart on success, online payments return the redirect
// URL and leave the cart untouched until verification.
func (c *Checkout) Submit(ctx context.Context) (*Result, error) {
	user := c.store.User()
	if user == nil {
		return nil, store.ErrNotLoggedIn
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if c.payment == "" {
		c.mu.Unlock()
		return nil, ErrNoPaymentMethod
	}
	address, ok := c.selectedAddressLocked()
	if !ok {
		c.mu.Unlock()
		return nil, ErrIncompleteAddress
	}
	payment := c.payment
	c.submitting = true
	c.state = StateSubmitting
	c.mu.Unlock()

	result, err := c.submit(ctx, user.ID, address, payment)

	c.mu.Lock()
	c.submitting = false
	switch {
	case err != nil:
		// Form state stays intact for retry.
		c.state = StateFailed
	case result.RedirectURL != "":
		c.state = StateRedirected
	default:
		c.state = StateConfirmed
		c.selectedID = ""
		c.payment = ""
		c.form = models.Address{}
	}
	c.mu.Unlock()

	return result, err
}

func (c *Checkout) submit(ctx context.Context, userID string, address models.Address, payment models.PaymentType) (*Result, error) {
	items := c.store.Cart()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := c.Subtotal(items)
	order := models.Order{
		UserID:      userID,
		Items:       orderItems(items),
		Address:     address,
		PaymentType: payment,
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee,
		Total:       subtotal + DeliveryFee,
	}

	if payment == models.PaymentBankTransfer {
		created, err := c.api.CreateOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		// Cart is cleared only after the create call reported success.
		if err := c.api.ClearCart(ctx); err != nil {
			c.log.WithError(err).Warn("failed to clear server cart after order")
		}
		c.store.ClearCartLocal()
		c.store.FetchCart(ctx)
		return &Result{Order: created}, nil
	}

	session, err := c.api.CreateStripeSession(ctx, order)
	if err != nil {
		return nil, err
	}
	// Payment is unconfirmed: keep the cart, remember the order for the
	// verification step.
	c.kv.Set(storage.KeyPendingOrderID, session.OrderID)
	c.kv.Set(storage.KeyOrderTotal, formatAmount(order.Total))
	return &Result{RedirectURL: session.URL}, nil
}

func (c *Checkout) selectedAddressLocked() (models.Address, bool) {
	address := c.form
	if c.selectedID != "" {
		for _, addr := range c.addresses {
			if addr.ID == c.selectedID {
				address = addr
				break
			}
		}
	}
	if address.Fullname == "" || address.City == "" || address.Country == "" {
		return models.Address{}, false
	}
	return address, true
}

func orderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			Product:  item.Product.ID,
			Name:     item.Product.Name,
			Variant:  item.Product.Code,
			Price:    item.Product.Price.Float,
			Quantity: item.Quantity.Int(),
			Size:     item.Size,
			Color:    item.Color,
		})
	}
	return out
}

// missingFields maps validator failures back to the wire field names so the
// error message names exactly what the user must fill in.
func missingFields(v *validator.Validate, form models.Address) []string {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"address"}
	}
	names := map[string]string{
		"Fullname": "fullname",
		"Country":  "country",
		"City":     "city",
		"State":    "state",
		"Phone":    "phone",
		"Email":    "email",
	}
	var missing []string
	for _, fe := range verrs {
		if name, ok := names[fe.Field()]; ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
