// cmd/storefront/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/catalog"
	"github.com/Rotimanchase/byc-storefront/internal/checkout"
	"github.com/Rotimanchase/byc-storefront/internal/config"
	"github.com/Rotimanchase/byc-storefront/internal/engagement"
	"github.com/Rotimanchase/byc-storefront/internal/httpclient"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
	"github.com/Rotimanchase/byc-storefront/internal/store"
)

const usage = `usage: storefront <command> [args]

commands:
  login <email> <password>      sign in and load cart, wishlist and history
  logout                        drop the local session
  whoami                        show the signed-in user
  products [--sort mode] [--search q] [--category c] [--page n]
  product <id>                  show one product and record the view
  cart                          show the cart with subtotal and total
  cart-add <id> <qty> [size] [color]
  cart-remove <id> [size] [color]
  checkout --payment method [--address-id id | address flags]
  verify <session-id> [order-id]
  orders                        list the signed-in user's orders
  blogs                         list blog posts
  blog <id>                     read a blog post (counts one view per device)
  blog-like <id>                like a blog post (once per device)
  recent                        show recently viewed products
`

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.IsProduction() {
		log.SetLevel(logrus.WarnLevel)
	} else {
		log.SetLevel(logrus.DebugLevel)
	}

	kv, err := storage.OpenFile(cfg.Storage.Path)
	if err != nil {
		log.Fatal("failed to open storage: ", err)
	}

	client := httpclient.New(cfg, kv, log)
	backend := api.New(client)
	st := store.New(backend, kv, log)

	// Cancel in-flight requests on interrupt.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	app := &app{
		cfg:      cfg,
		log:      log,
		kv:       kv,
		api:      backend,
		store:    st,
		checkout: checkout.New(backend, st, kv, log),
		blogs:    engagement.NewBlogEngagement(backend, kv, log),
	}

	if err := app.run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	kv       storage.Store
	api      *api.API
	store    *store.Store
	checkout *checkout.Checkout
	blogs    *engagement.BlogEngagement
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	// Logout must not touch the network, so it skips rehydration entirely.
	if command == "logout" {
		a.store.Logout()
		fmt.Println("signed out")
		return nil
	}

	a.store.Rehydrate(ctx)

	switch command {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		user, err := a.store.LoginWithPassword(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s <%s>\n", user.Name, user.Email)
		return nil

	case "whoami":
		user := a.store.User()
		if user == nil {
			return store.ErrNotLoggedIn
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		return nil

	case "products":
		return a.listProducts(ctx, args)

	case "product":
		if len(args) != 1 {
			return fmt.Errorf("usage: product <id>")
		}
		return a.showProduct(ctx, args[0])

	case "cart":
		return a.showCart(ctx)

	case "cart-add":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart-add <id> <qty> [size] [color]")
		}
		qty := atoiOr(args[1], 1)
		size, color := arg(args, 2), arg(args, 3)
		if err := a.store.AddToCart(ctx, args[0], qty, size, color); err != nil {
			return err
		}
		return a.showCart(ctx)

	case "cart-remove":
		if len(args) < 1 {
			return fmt.Errorf("usage: cart-remove <id> [size] [color]")
		}
		size, color := arg(args, 1), arg(args, 2)
		if err := a.store.RemoveFromCart(ctx, args[0], size, color); err != nil {
			return err
		}
		return a.showCart(ctx)

	case "checkout":
		return a.runCheckout(ctx, args)

	case "verify":
		if len(args) < 1 {
			return fmt.Errorf("usage: verify <session-id> [order-id]")
		}
		verifier := checkout.NewVerifier(a.api, a.store, a.kv, a.log)
		order, err := verifier.Verify(ctx, args[0], arg(args, 1))
		if err != nil {
			return err
		}
		fmt.Printf("payment confirmed for order %s (%s%.2f)\n", order.ID, a.cfg.Currency, order.Total)
		return nil

	case "orders":
		orders, err := a.api.ListMyOrders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%s  %-14s %-9s %s%.2f\n", o.ID, o.PaymentType, o.Status, a.cfg.Currency, o.Total)
		}
		return nil

	case "blogs":
		blogs, err := a.api.ListBlogs(ctx)
		if err != nil {
			return err
		}
		for _, b := range blogs {
			fmt.Printf("%s  %s (%d views, %d likes)\n", b.ID, b.Title, b.Views, b.Likes)
		}
		return nil

	case "blog":
		if len(args) != 1 {
			return fmt.Errorf("usage: blog <id>")
		}
		blog, _, err := a.blogs.RecordView(ctx, args[0])
		if err != nil {
			return err
		}
		if blog == nil {
			// Already viewed on this device; fetch without counting.
			blog, err = a.api.GetBlog(ctx, args[0])
			if err != nil {
				return err
			}
		}
		fmt.Printf("%s\nby %s\n\n%s\n", blog.Title, blog.AuthorName, blog.Description)
		return nil

	case "blog-like":
		if len(args) != 1 {
			return fmt.Errorf("usage: blog-like <id>")
		}
		blog, err := a.blogs.Like(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s now has %d likes\n", blog.Title, blog.Likes)
		return nil

	case "recent":
		products, err := a.store.FetchRecentlyViewed(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%s  %s\n", p.ID, p.Name)
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	payment := fs.String("payment", "", `"Bank Transfer" or "Online Payment"`)
	addressID := fs.String("address-id", "", "use a previously saved address")
	fullname := fs.String("fullname", "", "")
	country := fs.String("country", "", "")
	city := fs.String("city", "", "")
	state := fs.String("state", "", "")
	phone := fs.String("phone", "", "")
	email := fs.String("email", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *addressID != "" {
		if _, err := a.checkout.FetchAddresses(ctx); err != nil {
			return err
		}
		if err := a.checkout.SelectAddress(*addressID); err != nil {
			return err
		}
	} else {
		form := models.Address{
			Fullname: *fullname,
			Country:  *country,
			City:     *city,
			State:    *state,
			Phone:    *phone,
			Email:    *email,
		}
		if _, err := a.checkout.SaveAddress(ctx, form); err != nil {
			return err
		}
	}

	if err := a.checkout.ChoosePayment(models.PaymentType(*payment)); err != nil {
		return err
	}

	result, err := a.checkout.Submit(ctx)
	if err != nil {
		return err
	}
	if result.RedirectURL != "" {
		fmt.Println("complete your payment at:", result.RedirectURL)
		fmt.Println("then run: storefront verify <session-id>")
		return nil
	}
	fmt.Printf("order %s placed, total %s%.2f\n", result.Order.ID, a.cfg.Currency, result.Order.Total)
	return nil
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	sortMode := fs.String("sort", "", "Most Sold | Newest | Oldest | Price: High to Low | Price: Low to High")
	search := fs.String("search", "", "name substring")
	category := fs.String("category", "", "Men | Women | Children")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.api.ListProducts(ctx)
	if err != nil {
		return err
	}

	filtered := catalog.Filter{Category: *category, Search: *search}.Apply(products)
	if *sortMode != "" {
		filtered = catalog.Sort(filtered, catalog.SortMode(*sortMode))
	}

	pager := catalog.NewPaginator(len(filtered), catalog.DefaultPageSize)
	pager.SetPage(*page)
	for _, p := range pager.Slice(filtered) {
		price := "n/a"
		if p.Price.Valid {
			price = fmt.Sprintf("%s%.2f", a.cfg.Currency, p.Price.Float)
		}
		fmt.Printf("%s  %-32s %10s  %s\n", p.ID, p.Name, price, p.Category)
	}
	fmt.Printf("page %d of %d (%d products)\n", pager.Page(), pager.TotalPages(), len(filtered))
	return nil
}

func (a *app) showProduct(ctx context.Context, id string) error {
	product, err := a.api.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := a.store.AddRecentlyViewed(ctx, id); err != nil {
		a.log.WithError(err).Debug("failed to record product view")
	}

	fmt.Printf("%s (%s)\n%s\n", product.Name, product.Code, product.Description)
	if product.Price.Valid {
		fmt.Printf("price: %s%.2f\n", a.cfg.Currency, product.Price.Float)
	}
	if len(product.Sizes) > 0 {
		fmt.Printf("sizes: %s\n", strings.Join(product.Sizes, ", "))
	}
	if len(product.Colors) > 0 {
		fmt.Printf("colors: %s\n", strings.Join(product.Colors, ", "))
	}
	return nil
}

func (a *app) showCart(ctx context.Context) error {
	items, err := a.store.FetchCart(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, item := range items {
		variant := ""
		if item.Size != "" || item.Color != "" {
			variant = fmt.Sprintf(" (%s/%s)", item.Size, item.Color)
		}
		fmt.Printf("%dx %s%s\n", item.Quantity.Int(), item.Product.Name, variant)
	}
	fmt.Printf("subtotal: %s%.2f\n", a.cfg.Currency, a.checkout.Subtotal(items))
	fmt.Printf("total:    %s%.2f (delivery %s%d)\n", a.cfg.Currency, a.checkout.Total(items), a.cfg.Currency, checkout.DeliveryFee)
	return nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func atoiOr(s string, fallback int) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 1 {
		return fallback
	}
	return n
}
